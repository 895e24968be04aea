package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/handiism/vinyl-shuffle/internal/model"
)

// FlexibleID accepts an identifier published either as a JSON string or a
// JSON number.
type FlexibleID string

// UnmarshalJSON parses "abc", 123 and null.
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("unable to parse id: %s", data)
	}
	if i, err := n.Int64(); err == nil {
		*id = FlexibleID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = FlexibleID(n.String())
	return nil
}

// Tags accepts either a list of strings or a single comma separated string.
type Tags []string

// UnmarshalJSON parses ["a", "b"], "a, b" and null.
func (t *Tags) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		var out Tags
		for part := range strings.SplitSeq(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		*t = out
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("unable to parse tags: %w", err)
	}
	*t = list
	return nil
}

// JSONIndex is the top level document of a catalog endpoint.
type JSONIndex struct {
	Documents []JSONAlbum `json:"documents"`
}

// JSONAlbum represents one album record of the catalog index.
//
// The index carries both a display title ("title") and the bare album
// name ("album"); the album name is what gets shown.
type JSONAlbum struct {
	ID            FlexibleID `json:"id"`
	Artist        string     `json:"artist"`
	Title         string     `json:"title"`
	Album         string     `json:"album"`
	CoverImage    string     `json:"coverImage"`
	AlbumURI      string     `json:"albumUri"`
	AlbumFullURI  string     `json:"albumFullUri"`
	ArtistURI     string     `json:"artistUri"`
	Genres        Tags       `json:"genres"`
	Styles        Tags       `json:"styles"`
	Date          string     `json:"date"`
	AppleMusicURL string     `json:"appleMusicUrl"`
}

// HasRequiredFields reports whether the record can be displayed.
func (ja *JSONAlbum) HasRequiredFields() bool {
	return strings.TrimSpace(ja.CoverImage) != "" &&
		strings.TrimSpace(ja.Artist) != "" &&
		strings.TrimSpace(ja.Title) != "" &&
		strings.TrimSpace(ja.Album) != ""
}

// ToAlbum converts JSONAlbum to a model.Album.
func (ja *JSONAlbum) ToAlbum() *model.Album {
	return &model.Album{
		ID:            strings.TrimSpace(string(ja.ID)),
		Artist:        strings.TrimSpace(ja.Artist),
		Title:         strings.TrimSpace(ja.Album),
		CoverImage:    strings.TrimSpace(ja.CoverImage),
		AlbumURI:      ja.AlbumURI,
		AlbumFullURI:  ja.AlbumFullURI,
		ArtistURI:     ja.ArtistURI,
		Genres:        []string(ja.Genres),
		Styles:        []string(ja.Styles),
		Date:          ja.Date,
		AppleMusicURL: strings.TrimSpace(ja.AppleMusicURL),
	}
}
