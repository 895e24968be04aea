package input

import (
	"fmt"
	"strings"
)

// narrowTerminalCols is the width under which an undetected terminal is
// assumed to be a phone or tablet.
const narrowTerminalCols = 60

// Platform is the input classification of the running terminal.
type Platform int

const (
	PlatformMouse Platform = iota
	PlatformTouch
)

// String implements fmt.Stringer.
func (p Platform) String() string {
	switch p {
	case PlatformMouse:
		return "mouse"
	case PlatformTouch:
		return "touch"
	default:
		return fmt.Sprintf("platform(%d)", int(p))
	}
}

// DetectPlatform resolves the configured input mode. For "auto" (or empty)
// the terminal is treated as touch-capable when it runs under Termux or is
// narrower than 60 columns.
func DetectPlatform(mode string, width int, lookupEnv func(string) (string, bool)) Platform {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "touch":
		return PlatformTouch
	case "mouse":
		return PlatformMouse
	}

	if lookupEnv != nil {
		if _, ok := lookupEnv("TERMUX_VERSION"); ok {
			return PlatformTouch
		}
	}
	if width > 0 && width < narrowTerminalCols {
		return PlatformTouch
	}
	return PlatformMouse
}
