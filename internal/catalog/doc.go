// Package catalog fetches the remote album index and turns it into albums.
//
// A catalog endpoint serves a JSON document of the form
//
//	{"documents": [{"artist": "...", "album": "...", "coverImage": "...", ...}]}
//
// Records missing a cover image, artist, title or album name are dropped.
//
// # Basic Usage
//
//	src := catalog.NewSource(client, []string{"https://www.russ.fm/index.json"})
//	albums, err := src.Fetch(ctx)
//	if errors.Is(err, catalog.ErrNoAlbums) {
//	    // nothing to show
//	}
//
// Several URLs are fetched concurrently and merged in configuration order;
// duplicate albums (same Key) are kept once.
package catalog
