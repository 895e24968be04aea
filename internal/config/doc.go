// Package config provides configuration management for vinyl-shuffle.
//
// This package handles:
//   - Loading settings from JSON or TOML files via viper
//   - VINYL_* environment overrides
//   - Default configuration values
//   - Conversion to gesture and history configs for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Fetches https://www.russ.fm/index.json
//	// Swipe threshold 100px at 0.3 damping
//	// Anti-repeat history of 10 albums
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.toml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.InputMode = "touch"
//	err := settings.Save("/path/to/config.json")
package config
