package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/vinyl-shuffle/internal/model"
)

// Fetcher downloads a URL. *http.Client from internal/http satisfies it.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Source fetches albums from one or more catalog endpoints.
//
// Example usage:
//
//	src := NewSource(client, settings.CatalogURLs,
//	    WithConcurrency(settings.MaxConcurrentFetches),
//	    WithLogger(logger))
//	albums, err := src.Fetch(ctx)
type Source struct {
	fetcher Fetcher
	urls    []string
	limit   int
	logger  *slog.Logger
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithConcurrency bounds the number of endpoints fetched at once.
func WithConcurrency(n int) SourceOption {
	return func(s *Source) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) SourceOption {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSource creates a Source over the given endpoints.
func NewSource(fetcher Fetcher, urls []string, opts ...SourceOption) *Source {
	s := &Source{
		fetcher: fetcher,
		urls:    urls,
		limit:   4,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch downloads and parses every endpoint concurrently.
//
// An endpoint that fails is logged and skipped; Fetch only fails when no
// endpoint produced an album, returning the first endpoint error or
// ErrNoAlbums. Albums are merged in endpoint order and deduplicated by Key.
func (s *Source) Fetch(ctx context.Context) ([]*model.Album, error) {
	if len(s.urls) == 0 {
		return nil, ErrNoAlbums
	}

	results := make([][]*model.Album, len(s.urls))
	errs := make([]error, len(s.urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)

	for i, url := range s.urls {
		g.Go(func() error {
			albums, err := s.fetchOne(gctx, url)
			if err != nil {
				// Context cancellation aborts the whole fetch.
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn("catalog fetch failed", "url", url, "error", err)
				errs[i] = err
				return nil
			}
			s.logger.Debug("catalog fetched", "url", url, "albums", len(albums))
			results[i] = albums
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []*model.Album
	for _, albums := range results {
		merged = append(merged, albums...)
	}
	merged = dedupe(merged)

	if len(merged) == 0 {
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
		return nil, ErrNoAlbums
	}

	s.logger.Info("catalog loaded", "albums", len(merged), "sources", len(s.urls))
	return merged, nil
}

func (s *Source) fetchOne(ctx context.Context, url string) ([]*model.Album, error) {
	data, err := s.fetcher.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	albums, err := ParseIndex(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return albums, nil
}
