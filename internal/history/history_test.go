package history

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/handiism/vinyl-shuffle/internal/model"
)

func makeAlbums(n int) []*model.Album {
	albums := make([]*model.Album, n)
	for i := range albums {
		albums[i] = &model.Album{
			Artist:     fmt.Sprintf("Artist %d", i),
			Title:      fmt.Sprintf("Album %d", i),
			CoverImage: fmt.Sprintf("https://example.com/%d.jpg", i),
		}
	}
	return albums
}

// first always picks the first candidate, which makes exclusion visible.
func first(int) int { return 0 }

func TestPicker_Empty(t *testing.T) {
	p := NewPicker(nil, DefaultConfig())
	if _, err := p.Next(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Next() error = %v, want ErrEmpty", err)
	}
}

func TestPicker_AvoidsRecentAlbums(t *testing.T) {
	albums := makeAlbums(20)
	p := NewPicker(albums, DefaultConfig(), WithRand(first))

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		album, err := p.Next()
		if err != nil {
			t.Fatal(err)
		}
		if seen[album.Key()] {
			t.Fatalf("album %s repeated within history window", album.Key())
		}
		seen[album.Key()] = true
	}

	if got := len(p.Recent()); got != 10 {
		t.Errorf("Recent() has %d albums, want 10", got)
	}
}

func TestPicker_HistoryIsBounded(t *testing.T) {
	p := NewPicker(makeAlbums(30), Config{MaxHistory: 3, FilterMin: 5}, WithRand(first))
	for i := 0; i < 10; i++ {
		p.Next()
	}
	recent := p.Recent()
	if len(recent) != 3 {
		t.Fatalf("Recent() has %d albums, want 3", len(recent))
	}
	if recent[0].Title == recent[1].Title {
		t.Error("history must not contain duplicates")
	}
}

func TestPicker_SmallCatalogNotFiltered(t *testing.T) {
	albums := makeAlbums(5)
	p := NewPicker(albums, DefaultConfig(), WithRand(first))

	a, _ := p.Next()
	b, _ := p.Next()
	if a != b {
		t.Error("catalogs of 5 or fewer albums should not exclude history")
	}
	if len(p.Recent()) != 1 {
		t.Errorf("repeated album should appear once in history, got %d", len(p.Recent()))
	}
}

func TestPicker_FallsBackWhenEverythingExcluded(t *testing.T) {
	albums := makeAlbums(6)
	p := NewPicker(albums, Config{MaxHistory: 10, FilterMin: 5}, WithRand(first))

	for i := 0; i < 7; i++ {
		if _, err := p.Next(); err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
	}
}

func TestPicker_SetAlbumsKeepsHistory(t *testing.T) {
	p := NewPicker(makeAlbums(10), DefaultConfig(), WithRand(first))
	p.Next()
	p.SetAlbums(makeAlbums(12))

	if p.Len() != 12 {
		t.Errorf("Len() = %d, want 12", p.Len())
	}
	if len(p.Recent()) != 1 {
		t.Error("history should survive a catalog refresh")
	}
	album, _ := p.Next()
	if album.Title == "Album 0" {
		t.Error("recently shown album picked again after refresh")
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	albums := []*model.Album{
		{Artist: "A", Title: "One", AppleMusicURL: "https://music.apple.com/1"},
		{Artist: "B", Title: "Two", AlbumURI: "https://albums/2"},
	}
	content := NewPlaylistCreator(FormatM3U, true).CreatePlaylist(albums)

	if !strings.HasPrefix(content, "#EXTM3U\n") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:-1,A - One\nhttps://music.apple.com/1\n") {
		t.Errorf("missing first entry:\n%s", content)
	}
	if !strings.Contains(content, "https://albums/2") {
		t.Error("album URI should be used when no streaming link exists")
	}
}

func TestPlaylistCreator_M3UPlain(t *testing.T) {
	albums := []*model.Album{{Artist: "A", Title: "One", CoverImage: "https://c/1.jpg"}}
	content := NewPlaylistCreator(FormatM3U, false).CreatePlaylist(albums)

	if content != "https://c/1.jpg\n" {
		t.Errorf("content = %q", content)
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	albums := []*model.Album{
		{Artist: "A", Title: "One", AlbumURI: "https://albums/1"},
		{Artist: "B", Title: "Skipped"},
	}
	content := NewPlaylistCreator(FormatPLS, false).CreatePlaylist(albums)

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File1=https://albums/1") {
		t.Error("PLS should contain File1=")
	}
	if !strings.Contains(content, "NumberOfEntries=1") {
		t.Error("albums without links should be skipped")
	}
}

func TestPlaylistFormat_Extension(t *testing.T) {
	if FormatM3U.Extension() != ".m3u" || FormatPLS.Extension() != ".pls" {
		t.Error("unexpected extensions")
	}
}
