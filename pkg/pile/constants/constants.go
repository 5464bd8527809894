// Package constants defines shared constants, commands and environment
// settings used by the pile hosts and demos.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variables read by the demos.
const (
	EnvironmentEnvVar  = "ENVIRONMENT"
	WindowWidthEnvVar  = "WINDOW_WIDTH"
	WindowHeightEnvVar = "WINDOW_HEIGHT"
	ConfigPathEnvVar   = "PILE_CONFIG"
	LanguageEnvVar     = "PILE_LANG"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// Command is an abstract stack operation, mapped from keys or buttons.
type Command int

const (
	CommandNone Command = iota
	CommandPush
	CommandPop
	CommandUpdate
	CommandReset
	CommandQuit
)

func (c Command) GetName() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandPush:
		return "Push"
	case CommandPop:
		return "Pop"
	case CommandUpdate:
		return "Update"
	case CommandReset:
		return "Reset"
	case CommandQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Default window and input timing.
const (
	DefaultWindowWidth  int32 = 1024
	DefaultWindowHeight int32 = 768

	DefaultInputDelay     = 20 * time.Millisecond  // Debounce delay between input events
	DefaultRepeatDelay    = 300 * time.Millisecond // Hold time before a command repeats
	DefaultRepeatInterval = 120 * time.Millisecond // Time between repeats while held
)
