package history

import (
	"fmt"
	"strings"

	"github.com/handiism/vinyl-shuffle/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
//
// Both formats are plain text and accept URLs as entries, so the exported
// playlist opens the album pages in any player or browser that follows them.
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines for artist/title info.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS
)

// Extension returns the file extension for the format, including the dot.
func (pf PlaylistFormat) Extension() string {
	if pf == FormatPLS {
		return ".pls"
	}
	return ".m3u"
}

// PlaylistCreator generates playlists from the albums shown in a session.
//
// Each entry points to the album's streaming link, its album page or, as a
// last resort, its cover image. Albums without any link are skipped.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist(picker.Recent())
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Artist - Album
//	// https://music.apple.com/...
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines
}

// NewPlaylistCreator creates a new PlaylistCreator.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist generates playlist content for albums, in order.
func (p *PlaylistCreator) CreatePlaylist(albums []*model.Album) string {
	entries := make([]*model.Album, 0, len(albums))
	for _, album := range albums {
		if entryURL(album) != "" {
			entries = append(entries, album)
		}
	}

	switch p.format {
	case FormatPLS:
		return p.createPLS(entries)
	default:
		return p.createM3U(entries)
	}
}

// entryURL picks the most useful link of an album.
func entryURL(album *model.Album) string {
	switch {
	case album == nil:
		return ""
	case strings.TrimSpace(album.AppleMusicURL) != "":
		return strings.TrimSpace(album.AppleMusicURL)
	case album.Link() != "":
		return album.Link()
	default:
		return album.CoverImage
	}
}

// createM3U generates an M3U playlist.
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:-1,Artist - Album
//	https://...
func (p *PlaylistCreator) createM3U(albums []*model.Album) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, album := range albums {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s - %s\n", album.Artist, album.Title))
		}
		sb.WriteString(entryURL(album) + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=https://...
//	Title1=Artist - Album
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(albums []*model.Album) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, album := range albums {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, entryURL(album)))
		sb.WriteString(fmt.Sprintf("Title%d=%s - %s\n", idx, album.Artist, album.Title))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(albums)))
	sb.WriteString("Version=2\n")

	return sb.String()
}
