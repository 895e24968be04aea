// Package history implements the "show me something I haven't just seen"
// selection policy and exports what was shown.
//
// # Picker
//
// Picker returns random albums while excluding the last MaxHistory albums
// when the catalog is large enough:
//
//	picker := history.NewPicker(albums, history.DefaultConfig())
//	album, err := picker.Next()
//	if errors.Is(err, history.ErrEmpty) {
//	    // catalog not loaded yet
//	}
//
// # Playlists
//
// PlaylistCreator turns the session history into an M3U or PLS playlist
// of album links:
//
//	creator := history.NewPlaylistCreator(history.FormatM3U, true)
//	os.WriteFile(path, []byte(creator.CreatePlaylist(picker.Recent())), 0644)
package history
