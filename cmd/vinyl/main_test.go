package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"golang.org/x/text/language"

	"github.com/handiism/vinyl-shuffle/internal/model"
)

const testIndex = `{"documents": [
	{"id": "1", "artist": "Slowdive", "title": "t", "album": "Souvlaki", "coverImage": "COVER", "date": "1993-05-17"},
	{"id": "2", "artist": "Ólafur Arnalds", "title": "t", "album": "re:member", "coverImage": "COVER"},
	{"id": "3", "artist": "Low", "title": "t", "album": "Secret Name", "coverImage": "COVER", "genres": ["Rock"]},
	{"id": "4", "artist": "Oasis", "title": "t", "album": "Definitely Maybe", "coverImage": "COVER"}
]}`

type catalogServer struct {
	*httptest.Server
	coverHits atomic.Int32
}

func newCatalogServer(t *testing.T) *catalogServer {
	t.Helper()
	var cover bytes.Buffer
	if err := png.Encode(&cover, image.NewRGBA(image.Rect(0, 0, 16, 16))); err != nil {
		t.Fatal(err)
	}

	srv := &catalogServer{}
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/index.json":
			w.Write([]byte(strings.ReplaceAll(testIndex, "COVER", srv.URL+"/cover.png")))
		case "/cover.png":
			srv.coverHits.Add(1)
			w.Write(cover.Bytes())
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	configPath := filepath.Join(t.TempDir(), "missing.json")
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	srv := newCatalogServer(t)

	out, err := runCLI(t, "list", "--catalog", srv.URL+"/index.json")
	if err != nil {
		t.Fatalf("list: %v\n%s", err, out)
	}

	for _, want := range []string{"Slowdive", "Souvlaki", "1993", "4 album(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	low := strings.Index(out, "Low")
	oasis := strings.Index(out, "Oasis")
	olafur := strings.Index(out, "Ólafur")
	if !(low < oasis && oasis < olafur) {
		t.Errorf("albums not sorted by artist:\n%s", out)
	}
}

func TestListCommand_JSONFilterLimit(t *testing.T) {
	srv := newCatalogServer(t)

	out, err := runCLI(t, "list", "--catalog", srv.URL+"/index.json", "--json", "--filter", "o", "--limit", "2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var items []pickedAlbum
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(items) != 2 {
		t.Fatalf("got %d albums, want 2", len(items))
	}
	if items[0].Artist != "Low" {
		t.Errorf("first album = %q, want Low", items[0].Artist)
	}
}

func TestPickCommand_JSON(t *testing.T) {
	srv := newCatalogServer(t)

	out, err := runCLI(t, "pick", "--catalog", srv.URL+"/index.json", "--json")
	if err != nil {
		t.Fatalf("pick: %v\n%s", err, out)
	}

	var picked pickedAlbum
	if err := json.Unmarshal([]byte(out), &picked); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if picked.Artist == "" || picked.Album == "" || !strings.HasSuffix(picked.Cover, "/cover.png") {
		t.Errorf("picked = %+v", picked)
	}
}

func TestPickCommand_SaveCoverReusesPreload(t *testing.T) {
	srv := newCatalogServer(t)
	dir := t.TempDir()

	out, err := runCLI(t, "pick", "--catalog", srv.URL+"/index.json", "--json", "--save-cover", dir)
	if err != nil {
		t.Fatalf("pick: %v\n%s", err, out)
	}

	var picked pickedAlbum
	if err := json.Unmarshal([]byte(out), &picked); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if filepath.Dir(picked.SavedTo) != dir || filepath.Ext(picked.SavedTo) != ".jpg" {
		t.Errorf("saved_to = %q, want a .jpg in %s", picked.SavedTo, dir)
	}
	if _, err := os.Stat(picked.SavedTo); err != nil {
		t.Errorf("cover not written: %v", err)
	}
	if hits := srv.coverHits.Load(); hits != 1 {
		t.Errorf("cover fetched %d times, want 1", hits)
	}
}

func TestPickCommand_CatalogUnavailable(t *testing.T) {
	srv := newCatalogServer(t)

	if _, err := runCLI(t, "pick", "--catalog", srv.URL+"/missing.json"); err == nil {
		t.Fatal("expected error for unavailable catalog")
	}
}

func TestConfigInitAndShow(t *testing.T) {
	target := filepath.Join(t.TempDir(), "vinyl", "config.json")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote default configuration") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Error("second init without --overwrite should fail")
	}

	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--config", target, "--input", "touch", "config", "show"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(buf.String(), `"input_mode": "touch"`) {
		t.Errorf("flag override missing from effective config:\n%s", buf.String())
	}
}

func TestRootCommand_RequiresTerminal(t *testing.T) {
	_, err := runCLI(t)
	if err == nil || !strings.Contains(err.Error(), "terminal") {
		t.Errorf("error = %v, want terminal requirement", err)
	}
}

func TestRootCommand_InvalidInputMode(t *testing.T) {
	if _, err := runCLI(t, "config", "show", "--input", "pen"); err == nil {
		t.Error("expected validation error for unknown input mode")
	}
}

func TestSortAlbums(t *testing.T) {
	albums := []*model.Album{
		{Artist: "beach house", Title: "Bloom"},
		{Artist: "Ólafur Arnalds", Title: "b"},
		{Artist: "Beach House", Title: "Ashes"},
		{Artist: "Olafur Arnalds", Title: "a"},
	}
	sortAlbums(albums, language.English)

	got := make([]string, len(albums))
	for i, a := range albums {
		got[i] = a.Title
	}
	want := "Ashes,Bloom,a,b"
	if strings.Join(got, ",") != want {
		t.Errorf("order = %v, want %s", got, want)
	}
}
