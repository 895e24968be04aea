package display

import (
	"net/url"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/handiism/vinyl-shuffle/internal/model"
)

// Card is an album ready to be drawn.
type Card struct {
	Album *model.Album

	// Cover is the rendered cover art, or a placeholder box when the image
	// could not be loaded.
	Cover string

	// CoverLoaded is false when Cover is the placeholder.
	CoverLoaded bool

	// CoverData holds the downloaded cover image so it can be saved
	// without fetching it again. Nil when CoverLoaded is false.
	CoverData []byte

	// ListenURL is the streaming link after platform normalization.
	ListenURL string
}

// Metadata returns the label/value rows shown under the title. Empty values
// are omitted.
func (c *Card) Metadata() [][2]string {
	var rows [][2]string
	if len(c.Album.Genres) > 0 {
		rows = append(rows, [2]string{"Genres", strings.Join(c.Album.Genres, ", ")})
	}
	if len(c.Album.Styles) > 0 {
		rows = append(rows, [2]string{"Styles", strings.Join(c.Album.Styles, ", ")})
	}
	if year := c.Album.Year(); year != "" {
		rows = append(rows, [2]string{"Released", year})
	}
	return rows
}

// Hyperlink wraps text in an OSC 8 hyperlink. Text is returned unchanged
// when target is empty.
func Hyperlink(text, target string) string {
	if target == "" {
		return text
	}
	return ansi.SetHyperlink(target) + text + ansi.ResetHyperlink()
}

// NormalizeAppleMusicURL rewrites legacy iTunes links to music.apple.com and
// forces https on music.apple.com links. Other URLs are returned unchanged.
func NormalizeAppleMusicURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	switch {
	case strings.Contains(raw, "music.apple.com"):
		if !strings.HasPrefix(raw, "https://") {
			rest := strings.TrimPrefix(strings.TrimPrefix(raw, "http://"), "https://")
			return "https://" + rest
		}
		return raw
	case strings.Contains(raw, "itunes.apple.com"):
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return strings.Replace(raw, "itunes.apple.com", "music.apple.com", 1)
		}
		u.Host = strings.Replace(u.Host, "itunes.apple.com", "music.apple.com", 1)
		return u.String()
	default:
		return raw
	}
}
