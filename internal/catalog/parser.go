package catalog

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/handiism/vinyl-shuffle/internal/catalog/dto"
	"github.com/handiism/vinyl-shuffle/internal/model"
)

// ErrNoAlbums is returned when a catalog yields no displayable album.
var ErrNoAlbums = errors.New("no albums found in catalog")

// ParseIndex decodes a catalog index and returns its displayable albums in
// document order.
//
// Returns an error if:
//   - The JSON is malformed
//   - No record carries the required fields (ErrNoAlbums)
//
// Example:
//
//	albums, err := ParseIndex(body)
//	if err != nil {
//	    return fmt.Errorf("failed to parse catalog: %w", err)
//	}
func ParseIndex(data []byte) ([]*model.Album, error) {
	var index dto.JSONIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	albums := make([]*model.Album, 0, len(index.Documents))
	for i := range index.Documents {
		doc := &index.Documents[i]
		if !doc.HasRequiredFields() {
			continue
		}
		albums = append(albums, doc.ToAlbum())
	}

	if len(albums) == 0 {
		return nil, ErrNoAlbums
	}
	return albums, nil
}

// dedupe keeps the first album of every Key.
func dedupe(albums []*model.Album) []*model.Album {
	seen := make(map[string]struct{}, len(albums))
	out := albums[:0:0]
	for _, a := range albums {
		key := a.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
