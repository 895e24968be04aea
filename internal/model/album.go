package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// placeholderDate is the zero date the catalog uses for albums with no known
// release date.
const placeholderDate = "0001-01-01"

// Album represents one record of the remote album catalog.
//
// Album contains everything needed to display an album card:
//   - Artist and Title for the headline
//   - CoverImage for the cover art
//   - AlbumURI/AlbumFullURI/ArtistURI for external links
//   - Genres, Styles and Date for the metadata block
//   - AppleMusicURL for the "listen" link
//
// Only CoverImage, Artist and Title are mandatory; see IsComplete.
//
// Example:
//
//	album := &Album{Artist: "Slowdive", Title: "Souvlaki", CoverImage: coverURL}
//	fmt.Println(album.Key()) // "Slowdive-Souvlaki"
type Album struct {
	// ID is the catalog identifier. Optional; Key falls back to artist and title.
	ID string

	// Artist is the album artist name.
	Artist string

	// Title is the album title.
	Title string

	// CoverImage is the URL of the cover art.
	CoverImage string

	// AlbumURI links to the album page. AlbumFullURI is used when it is empty.
	AlbumURI     string
	AlbumFullURI string

	// ArtistURI links to the artist page.
	ArtistURI string

	// Genres and Styles are free-form tags.
	Genres []string
	Styles []string

	// Date is the raw release date as published by the catalog.
	Date string

	// AppleMusicURL is an optional streaming link.
	AppleMusicURL string
}

// IsComplete reports whether the album carries the fields required for display.
func (a *Album) IsComplete() bool {
	return a != nil &&
		strings.TrimSpace(a.CoverImage) != "" &&
		strings.TrimSpace(a.Artist) != "" &&
		strings.TrimSpace(a.Title) != ""
}

// Key returns the identity used for anti-repeat history.
func (a *Album) Key() string {
	if a.ID != "" {
		return a.ID
	}
	return fmt.Sprintf("%s-%s", a.Artist, a.Title)
}

// Link returns the album page URL, or an empty string when none is known.
func (a *Album) Link() string {
	if a.AlbumURI != "" {
		return a.AlbumURI
	}
	return a.AlbumFullURI
}

// ReleaseDate parses Date. The boolean is false for missing, placeholder or
// unparseable dates.
//
// Accepted layouts are RFC 3339, "2006-01-02" and a bare "2006".
func (a *Album) ReleaseDate() (time.Time, bool) {
	raw := strings.TrimSpace(a.Date)
	if raw == "" || strings.HasPrefix(raw, placeholderDate) {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02", "2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Year returns the four digit release year, or an empty string.
func (a *Album) Year() string {
	t, ok := a.ReleaseDate()
	if !ok {
		return ""
	}
	return t.Format("2006")
}

// String implements fmt.Stringer.
func (a *Album) String() string {
	return fmt.Sprintf("%s - %s", a.Artist, a.Title)
}

// FileName returns a file name for the album built from a template.
//
// Supported placeholders:
//   - {artist} - Artist name
//   - {album} - Album title
//   - {year} - Release year (empty when unknown)
//
// Invalid filename characters are replaced with underscores.
func (a *Album) FileName(format string) string {
	name := format
	name = strings.ReplaceAll(name, "{year}", a.Year())
	name = strings.ReplaceAll(name, "{artist}", a.Artist)
	name = strings.ReplaceAll(name, "{album}", a.Title)
	return sanitizeFileName(name)
}

var (
	invalidChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots   = regexp.MustCompile(`\.+$`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
)

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
//
// Example:
//
//	sanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
func sanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpaces.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
