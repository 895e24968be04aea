package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/handiism/vinyl-shuffle/internal/gesture"
	"github.com/handiism/vinyl-shuffle/internal/history"
	"github.com/spf13/viper"
)

// DefaultCatalogURL is the album index fetched when nothing else is configured.
const DefaultCatalogURL = "https://www.russ.fm/index.json"

// EnvPrefix prefixes environment overrides, e.g. VINYL_LOG_LEVEL=debug.
const EnvPrefix = "VINYL"

// Settings holds all configuration options.
type Settings struct {
	// Catalog settings
	CatalogURLs          []string      `json:"catalog_urls" mapstructure:"catalog_urls"`
	MaxConcurrentFetches int           `json:"max_concurrent_fetches" mapstructure:"max_concurrent_fetches"`
	UserAgent            string        `json:"user_agent" mapstructure:"user_agent"`
	HTTPTimeout          time.Duration `json:"http_timeout" mapstructure:"http_timeout"`

	// History settings
	MaxHistory       int `json:"max_history" mapstructure:"max_history"`
	HistoryFilterMin int `json:"history_filter_min" mapstructure:"history_filter_min"`

	// Gesture settings
	SwipeThreshold    float64 `json:"swipe_threshold" mapstructure:"swipe_threshold"`
	Damping           float64 `json:"damping" mapstructure:"damping"`
	MouseLockDistance float64 `json:"mouse_lock_px" mapstructure:"mouse_lock_px"`
	InputMode         string  `json:"input_mode" mapstructure:"input_mode"` // auto, touch, mouse
	CellWidthPx       float64 `json:"cell_width_px" mapstructure:"cell_width_px"`
	CellHeightPx      float64 `json:"cell_height_px" mapstructure:"cell_height_px"`

	// Timing
	ReleaseDuration   time.Duration `json:"release_duration" mapstructure:"release_duration"`
	TransitionDelay   time.Duration `json:"transition_delay" mapstructure:"transition_delay"`
	NavigationTimeout time.Duration `json:"navigation_timeout" mapstructure:"navigation_timeout"` // 0 disables
	SwipeHintDuration time.Duration `json:"swipe_hint_duration" mapstructure:"swipe_hint_duration"`

	// Display settings
	CoverWidth int `json:"cover_width" mapstructure:"cover_width"`

	// Cover export
	CoverFileNameFormat  string `json:"cover_file_name_format" mapstructure:"cover_file_name_format"`
	CoverMaxSize         int    `json:"cover_max_size" mapstructure:"cover_max_size"`
	ConvertCoverArtToJPG bool   `json:"convert_cover_art_to_jpg" mapstructure:"convert_cover_art_to_jpg"`

	// Playlist settings
	PlaylistPath   string `json:"playlist_path" mapstructure:"playlist_path"`
	PlaylistFormat string `json:"playlist_format" mapstructure:"playlist_format"` // m3u, pls
	M3UExtended    bool   `json:"m3u_extended" mapstructure:"m3u_extended"`

	// Logging
	LogLevel  string `json:"log_level" mapstructure:"log_level"`
	LogFormat string `json:"log_format" mapstructure:"log_format"` // console, json
	LogPath   string `json:"log_path" mapstructure:"log_path"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		CatalogURLs:          []string{DefaultCatalogURL},
		MaxConcurrentFetches: 4,
		UserAgent:            "vinyl-shuffle",
		HTTPTimeout:          60 * time.Second,

		MaxHistory:       10,
		HistoryFilterMin: 5,

		SwipeThreshold:    gesture.DefaultThreshold,
		Damping:           gesture.DefaultDamping,
		MouseLockDistance: gesture.DefaultMouseLockDistance,
		InputMode:         "auto",
		CellWidthPx:       10,
		CellHeightPx:      20,

		ReleaseDuration:   300 * time.Millisecond,
		TransitionDelay:   200 * time.Millisecond,
		NavigationTimeout: 0,
		SwipeHintDuration: 3 * time.Second,

		CoverWidth: 24,

		CoverFileNameFormat:  "{artist} - {album}",
		CoverMaxSize:         1000,
		ConvertCoverArtToJPG: true,

		PlaylistPath:   filepath.Join(homeDir, "Music", "vinyl-shuffle", "session"),
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		LogLevel:  "info",
		LogFormat: "json",
		LogPath:   "",
	}
}

// DefaultConfigPath returns the per-user configuration file location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vinyl-shuffle", "config.json"), nil
}

// Load reads settings from a JSON or TOML file, falling back to defaults when
// the file doesn't exist. Environment variables prefixed with VINYL_ override
// both.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v, DefaultSettings())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// setDefaults registers every field of s as a viper default so that env
// overrides apply even when no config file is present.
func setDefaults(v *viper.Viper, s *Settings) {
	v.SetDefault("catalog_urls", s.CatalogURLs)
	v.SetDefault("max_concurrent_fetches", s.MaxConcurrentFetches)
	v.SetDefault("user_agent", s.UserAgent)
	v.SetDefault("http_timeout", s.HTTPTimeout)
	v.SetDefault("max_history", s.MaxHistory)
	v.SetDefault("history_filter_min", s.HistoryFilterMin)
	v.SetDefault("swipe_threshold", s.SwipeThreshold)
	v.SetDefault("damping", s.Damping)
	v.SetDefault("mouse_lock_px", s.MouseLockDistance)
	v.SetDefault("input_mode", s.InputMode)
	v.SetDefault("cell_width_px", s.CellWidthPx)
	v.SetDefault("cell_height_px", s.CellHeightPx)
	v.SetDefault("release_duration", s.ReleaseDuration)
	v.SetDefault("transition_delay", s.TransitionDelay)
	v.SetDefault("navigation_timeout", s.NavigationTimeout)
	v.SetDefault("swipe_hint_duration", s.SwipeHintDuration)
	v.SetDefault("cover_width", s.CoverWidth)
	v.SetDefault("cover_file_name_format", s.CoverFileNameFormat)
	v.SetDefault("cover_max_size", s.CoverMaxSize)
	v.SetDefault("convert_cover_art_to_jpg", s.ConvertCoverArtToJPG)
	v.SetDefault("playlist_path", s.PlaylistPath)
	v.SetDefault("playlist_format", s.PlaylistFormat)
	v.SetDefault("m3u_extended", s.M3UExtended)
	v.SetDefault("log_level", s.LogLevel)
	v.SetDefault("log_format", s.LogFormat)
	v.SetDefault("log_path", s.LogPath)
}

// Validate rejects settings the gesture and display code cannot work with.
func (s *Settings) Validate() error {
	switch {
	case s.Damping <= 0:
		return fmt.Errorf("damping must be positive, got %v", s.Damping)
	case s.SwipeThreshold < 0:
		return fmt.Errorf("swipe_threshold must not be negative, got %v", s.SwipeThreshold)
	case s.CellWidthPx <= 0 || s.CellHeightPx <= 0:
		return fmt.Errorf("cell size must be positive, got %vx%v", s.CellWidthPx, s.CellHeightPx)
	case s.ReleaseDuration < 0 || s.TransitionDelay < 0 || s.NavigationTimeout < 0:
		return errors.New("durations must not be negative")
	}

	switch strings.ToLower(s.InputMode) {
	case "", "auto", "touch", "mouse":
	default:
		return fmt.Errorf("input_mode: unsupported value %q", s.InputMode)
	}
	return nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ToGestureConfig converts settings to a gesture.Config.
func (s *Settings) ToGestureConfig() gesture.Config {
	return gesture.Config{
		Threshold:         s.SwipeThreshold,
		Damping:           s.Damping,
		MouseLockDistance: s.MouseLockDistance,
	}
}

// ToHistoryConfig converts settings to a history.Config.
func (s *Settings) ToHistoryConfig() history.Config {
	return history.Config{
		MaxHistory: s.MaxHistory,
		FilterMin:  s.HistoryFilterMin,
	}
}

// ToPlaylistFormat converts the configured playlist format name.
func (s *Settings) ToPlaylistFormat() history.PlaylistFormat {
	switch strings.ToLower(s.PlaylistFormat) {
	case "pls":
		return history.FormatPLS
	default:
		return history.FormatM3U
	}
}
