// Package model defines the core data structures used throughout
// the vinyl-shuffle application.
//
// # Album
//
// Album is one record of the remote catalog:
//
//	album := &model.Album{Artist: "Artist", Title: "Title", CoverImage: coverURL}
//	album.IsComplete() // true: cover, artist and title are set
//	album.Key()        // identity used for anti-repeat history
//	album.Year()       // "" when the date is missing or a placeholder
//
// # File names
//
// FileName builds sanitized file names from a template, used when cover
// art is saved to disk:
//
//	album.FileName("{artist} - {album}") // "Artist - Title"
//
// Available placeholders: {artist}, {album}, {year}
package model
