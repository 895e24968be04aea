package history

import (
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/handiism/vinyl-shuffle/internal/model"
)

// ErrEmpty is returned when there is nothing to pick from.
var ErrEmpty = errors.New("no albums to pick from")

// Config holds anti-repeat settings.
type Config struct {
	// MaxHistory is how many recently shown albums are remembered.
	MaxHistory int
	// FilterMin is the catalog size above which recent albums are excluded.
	// Small catalogs are picked from freely.
	FilterMin int
}

// DefaultConfig remembers 10 albums and filters catalogs of more than 5.
func DefaultConfig() Config {
	return Config{MaxHistory: 10, FilterMin: 5}
}

// Picker chooses random albums, avoiding the ones shown recently.
//
// Picker is safe for concurrent use: navigations pick from a background
// goroutine while the UI reads Recent.
type Picker struct {
	cfg  Config
	rand func(n int) int

	mu     sync.Mutex
	albums []*model.Album
	recent []*model.Album // most recent first
}

// Option configures a Picker.
type Option func(*Picker)

// WithRand replaces the random source; intn must return a value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(p *Picker) { p.rand = intn }
}

// NewPicker creates a Picker over albums.
func NewPicker(albums []*model.Album, cfg Config, opts ...Option) *Picker {
	p := &Picker{
		cfg:    cfg,
		rand:   rand.IntN,
		albums: albums,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetAlbums replaces the catalog. History is kept.
func (p *Picker) SetAlbums(albums []*model.Album) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.albums = albums
}

// Len returns the catalog size.
func (p *Picker) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.albums)
}

// Next picks a random album and records it in the history.
//
// When the catalog is larger than FilterMin, albums in the history are
// excluded; if that excludes everything, the whole catalog is used.
func (p *Picker) Next() (*model.Album, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.albums) == 0 {
		return nil, ErrEmpty
	}

	available := p.albums
	if len(p.recent) > 0 && len(p.albums) > p.cfg.FilterMin {
		available = p.excludeRecent()
		if len(available) == 0 {
			available = p.albums
		}
	}

	album := available[p.rand(len(available))]
	p.remember(album)
	return album, nil
}

// Recent returns the history, most recent first.
func (p *Picker) Recent() []*model.Album {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*model.Album, len(p.recent))
	copy(out, p.recent)
	return out
}

func (p *Picker) excludeRecent() []*model.Album {
	seen := make(map[string]struct{}, len(p.recent))
	for _, album := range p.recent {
		seen[album.Key()] = struct{}{}
	}

	available := make([]*model.Album, 0, len(p.albums))
	for _, album := range p.albums {
		if _, ok := seen[album.Key()]; !ok {
			available = append(available, album)
		}
	}
	return available
}

// remember moves album to the front of the history and trims it.
func (p *Picker) remember(album *model.Album) {
	key := album.Key()
	kept := p.recent[:0]
	for _, recent := range p.recent {
		if recent.Key() != key {
			kept = append(kept, recent)
		}
	}
	p.recent = append([]*model.Album{album}, kept...)

	if p.cfg.MaxHistory >= 0 && len(p.recent) > p.cfg.MaxHistory {
		p.recent = p.recent[:p.cfg.MaxHistory]
	}
}
