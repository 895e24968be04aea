package collection

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/handiism/vinyl-shuffle/internal/catalog"
	"github.com/handiism/vinyl-shuffle/internal/config"
	"github.com/handiism/vinyl-shuffle/internal/display"
	"github.com/handiism/vinyl-shuffle/internal/history"
	"github.com/handiism/vinyl-shuffle/internal/http"
	ioutils "github.com/handiism/vinyl-shuffle/internal/io"
	"github.com/handiism/vinyl-shuffle/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Client is the network surface the Manager needs. *http.Client satisfies it.
type Client interface {
	catalog.Fetcher
	display.Downloader
}

// Manager coordinates catalog loading and album navigation.
type Manager struct {
	settings     *config.Settings
	client       Client
	picker       *history.Picker
	renderer     *display.Renderer
	playlist     *history.PlaylistCreator
	imageService *ioutils.ImageService
	logger       *slog.Logger

	touch      bool
	pickerOpts []history.Option
	sleep      func(ctx context.Context, d time.Duration) error

	onProgress func(ProgressEvent)

	mu   sync.RWMutex
	urls []string
}

// Option configures a Manager.
type Option func(*Manager)

// WithProgress sets the progress callback.
func WithProgress(fn func(ProgressEvent)) Option {
	return func(m *Manager) { m.onProgress = fn }
}

// WithClient replaces the HTTP client.
func WithClient(c Client) Option {
	return func(m *Manager) { m.client = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithTouch marks the session as running on a touch platform, which
// normalizes streaming links.
func WithTouch(on bool) Option {
	return func(m *Manager) { m.touch = on }
}

// WithPickerOptions forwards options to the history picker.
func WithPickerOptions(opts ...history.Option) Option {
	return func(m *Manager) { m.pickerOpts = append(m.pickerOpts, opts...) }
}

// NewManager creates a new Manager.
func NewManager(settings *config.Settings, opts ...Option) *Manager {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	m := &Manager{
		settings:     settings,
		playlist:     history.NewPlaylistCreator(settings.ToPlaylistFormat(), settings.M3UExtended),
		imageService: ioutils.NewImageService(),
		logger:       slog.New(slog.DiscardHandler),
		sleep:        sleepContext,
		urls:         settings.CatalogURLs,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.client == nil {
		m.client = http.NewClient(
			http.WithUserAgent(settings.UserAgent),
			http.WithTimeout(settings.HTTPTimeout),
		)
	}
	m.picker = history.NewPicker(nil, settings.ToHistoryConfig(), m.pickerOpts...)
	m.renderer = display.NewRenderer(m.client,
		display.WithCoverWidth(settings.CoverWidth),
		display.WithAppleMusicNormalization(m.touch),
		display.WithLogger(m.logger),
	)
	return m
}

// SetCatalogURLs replaces the catalog endpoints used by Initialize.
func (m *Manager) SetCatalogURLs(urls []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = urls
}

// CatalogURLs returns the catalog endpoints.
func (m *Manager) CatalogURLs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.urls
}

// Initialize fetches the catalog and hands it to the picker.
func (m *Manager) Initialize(ctx context.Context) error {
	urls := m.CatalogURLs()
	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching catalog from %d source(s)", len(urls)), Level: LevelVerbose})

	src := catalog.NewSource(m.client, urls,
		catalog.WithConcurrency(m.settings.MaxConcurrentFetches),
		catalog.WithLogger(m.logger),
	)
	albums, err := src.Fetch(ctx)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error loading catalog: %v", err), Level: LevelError})
		return fmt.Errorf("load catalog: %w", err)
	}

	m.picker.SetAlbums(albums)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Loaded %d albums", len(albums)), Level: LevelSuccess})
	return nil
}

// Next picks the next album, preloads its cover and waits for the
// transition delay before returning the card.
func (m *Manager) Next(ctx context.Context) (*display.Card, error) {
	album, err := m.picker.Next()
	if err != nil {
		return nil, err
	}
	m.logger.Debug("album picked", "album", album.String(), "key", album.Key())

	card, err := m.renderer.Prepare(ctx, album)
	if err != nil {
		return nil, err
	}

	if err := m.sleep(ctx, m.settings.TransitionDelay); err != nil {
		return nil, err
	}
	return card, nil
}

// Albums returns the number of albums in the catalog.
func (m *Manager) Albums() int {
	return m.picker.Len()
}

// Recent returns the albums shown this session, most recent first.
func (m *Manager) Recent() []*model.Album {
	return m.picker.Recent()
}

// ExportPlaylist writes the session history as a playlist and returns its
// path.
func (m *Manager) ExportPlaylist(ctx context.Context) (string, error) {
	recent := m.Recent()
	if len(recent) == 0 {
		return "", history.ErrEmpty
	}

	path := m.settings.PlaylistPath + m.settings.ToPlaylistFormat().Extension()
	content := m.playlist.CreatePlaylist(recent)
	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error writing playlist: %v", err), Level: LevelError})
		return "", fmt.Errorf("write playlist: %w", err)
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Playlist saved: %s", path), Level: LevelSuccess})
	return path, nil
}

// SaveCover writes the cover art of card into dir and returns the file path.
// The preloaded image is reused; it is only downloaded when the preload
// failed. The image is resized to CoverMaxSize and re-encoded as JPEG when
// configured.
func (m *Manager) SaveCover(ctx context.Context, card *display.Card, dir string) (string, error) {
	album := card.Album
	data := card.CoverData
	var err error
	if len(data) == 0 {
		if data, err = m.client.DownloadBytes(ctx, album.CoverImage); err != nil {
			return "", fmt.Errorf("download cover: %w", err)
		}
	}

	ext := coverExtension(album.CoverImage)
	switch {
	case m.settings.CoverMaxSize > 0:
		data, err = m.imageService.ResizeImage(ctx, data, m.settings.CoverMaxSize, m.settings.CoverMaxSize)
		ext = ".jpg"
	case m.settings.ConvertCoverArtToJPG:
		data, err = m.imageService.ConvertToJPEG(ctx, data)
		ext = ".jpg"
	}
	if err != nil {
		return "", fmt.Errorf("process cover: %w", err)
	}

	path := filepath.Join(dir, album.FileName(m.settings.CoverFileNameFormat)+ext)
	if err := ioutils.WriteFile(ctx, path, data); err != nil {
		return "", fmt.Errorf("write cover: %w", err)
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Cover saved: %s", path), Level: LevelSuccess})
	return path, nil
}

// ParseInputURLs extracts http(s) URLs from free-form input, one per line or
// separated by spaces or commas.
func ParseInputURLs(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == '\n' || r == ' ' || r == ',' || r == '\t'
	})
	var urls []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if strings.HasPrefix(f, "http://") || strings.HasPrefix(f, "https://") {
			urls = append(urls, f)
		}
	}
	return urls
}

func coverExtension(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	switch ext := strings.ToLower(filepath.Ext(url)); ext {
	case ".png", ".gif", ".webp", ".jpeg":
		return ext
	default:
		return ".jpg"
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
