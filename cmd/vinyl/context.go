package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/handiism/vinyl-shuffle/internal/config"
	"github.com/handiism/vinyl-shuffle/internal/logging"
)

type commandContext struct {
	configFlag    *string
	catalogFlags  *[]string
	inputModeFlag *string
	verboseFlag   *bool

	settingsOnce sync.Once
	settings     *config.Settings
	settingsErr  error
}

func newCommandContext(configFlag *string, catalogFlags *[]string, inputModeFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		catalogFlags:  catalogFlags,
		inputModeFlag: inputModeFlag,
		verboseFlag:   verboseFlag,
	}
}

// ensureSettings loads the configuration once and applies flag overrides.
func (c *commandContext) ensureSettings() (*config.Settings, error) {
	c.settingsOnce.Do(func() {
		path, err := c.configPath()
		if err != nil {
			c.settingsErr = err
			return
		}
		settings, err := config.Load(path)
		if err != nil {
			c.settingsErr = err
			return
		}

		if c.catalogFlags != nil && len(*c.catalogFlags) > 0 {
			settings.CatalogURLs = *c.catalogFlags
		}
		if c.inputModeFlag != nil && strings.TrimSpace(*c.inputModeFlag) != "" {
			settings.InputMode = strings.TrimSpace(*c.inputModeFlag)
		}
		if c.verbose() {
			settings.LogLevel = "debug"
		}
		if err := settings.Validate(); err != nil {
			c.settingsErr = err
			return
		}
		c.settings = settings
	})
	return c.settings, c.settingsErr
}

func (c *commandContext) configPath() (string, error) {
	if c.configFlag != nil {
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			return path, nil
		}
	}
	return config.DefaultConfigPath()
}

func (c *commandContext) verbose() bool {
	return c.verboseFlag != nil && *c.verboseFlag
}

// logger builds the logger for non-interactive commands: the configured log
// file, plus stderr in verbose mode.
func (c *commandContext) logger() (*slog.Logger, io.Closer, error) {
	settings, err := c.ensureSettings()
	if err != nil {
		return nil, nil, err
	}
	var fallback []string
	if c.verbose() {
		fallback = []string{"stderr"}
	}
	return logging.NewFromSettings(settings, fallback...)
}
