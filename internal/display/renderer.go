package display

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	ioutils "github.com/handiism/vinyl-shuffle/internal/io"
	"github.com/handiism/vinyl-shuffle/internal/model"
)

// DefaultCoverWidth is the cover width in terminal columns.
const DefaultCoverWidth = 24

// Downloader fetches cover art. *http.Client from internal/http satisfies it.
type Downloader interface {
	DownloadBytes(ctx context.Context, url string) ([]byte, error)
}

// Renderer prepares cards: it preloads cover art and normalizes links.
type Renderer struct {
	downloader Downloader
	images     *ioutils.ImageService
	width      int
	normalize  bool
	logger     *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCoverWidth sets the cover width in columns.
func WithCoverWidth(cols int) Option {
	return func(r *Renderer) {
		if cols > 0 {
			r.width = cols
		}
	}
}

// WithAppleMusicNormalization enables NormalizeAppleMusicURL on listen links.
// Touch platforms enable it.
func WithAppleMusicNormalization(on bool) Option {
	return func(r *Renderer) { r.normalize = on }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRenderer creates a Renderer. A nil downloader disables cover art.
func NewRenderer(d Downloader, opts ...Option) *Renderer {
	r := &Renderer{
		downloader: d,
		images:     ioutils.NewImageService(),
		width:      DefaultCoverWidth,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Prepare builds the card for album, downloading and rendering its cover.
//
// A cover that fails to load is logged and replaced by a placeholder; only
// context cancellation is returned as an error.
func (r *Renderer) Prepare(ctx context.Context, album *model.Album) (*Card, error) {
	if album == nil {
		return nil, fmt.Errorf("prepare card: nil album")
	}

	card := &Card{
		Album:     album,
		ListenURL: strings.TrimSpace(album.AppleMusicURL),
	}
	if r.normalize {
		card.ListenURL = NormalizeAppleMusicURL(card.ListenURL)
	}

	cover, data, err := r.loadCover(ctx, album.CoverImage)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.Warn("cover art preload failed", "album", album.String(), "url", album.CoverImage, "error", err)
		card.Cover = Placeholder(r.width)
		return card, nil
	}

	card.Cover = RenderHalfBlocks(r.images.Thumbnail(cover, r.width, r.width))
	card.CoverLoaded = true
	card.CoverData = data
	return card, nil
}

func (r *Renderer) loadCover(ctx context.Context, url string) (image.Image, []byte, error) {
	if r.downloader == nil || url == "" {
		return nil, nil, fmt.Errorf("no cover art source")
	}
	data, err := r.downloader.DownloadBytes(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	img, err := r.images.Decode(ctx, data)
	if err != nil {
		return nil, nil, err
	}
	return img, data, nil
}

// RenderHalfBlocks draws img with one "▀" per two vertical pixels: the
// foreground carries the upper pixel and the background the lower one.
func RenderHalfBlocks(img image.Image) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(img.At(x, y)))
			if y+1 < b.Max.Y {
				style = style.Background(hexColor(img.At(x, y+1)))
			}
			sb.WriteString(style.Render("▀"))
		}
	}
	return sb.String()
}

// Placeholder returns a square outline of the given width, used when no
// cover art is available.
func Placeholder(width int) string {
	width = max(width, 2)
	rows := width / 2
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	lines := make([]string, 0, rows)
	for i := range rows {
		switch i {
		case 0:
			lines = append(lines, "┌"+strings.Repeat("─", width-2)+"┐")
		case rows - 1:
			lines = append(lines, "└"+strings.Repeat("─", width-2)+"┘")
		case rows / 2:
			label := "no cover"
			if len(label) > width-2 {
				label = label[:width-2]
			}
			pad := width - 2 - len(label)
			lines = append(lines, "│"+strings.Repeat(" ", pad/2)+label+strings.Repeat(" ", pad-pad/2)+"│")
		default:
			lines = append(lines, "│"+strings.Repeat(" ", width-2)+"│")
		}
	}
	return style.Render(strings.Join(lines, "\n"))
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
