package internal

import (
	"time"

	"github.com/BrandonKowalski/pile/pkg/pile/constants"
)

// RepeatInput tracks held stack commands and handles repeat timing.
// Holding push fires pushes faster than transitions finish, which is how
// the demos exercise overlapping animations.
type RepeatInput struct {
	held struct {
		push, pop bool
	}
	lastRepeatTime time.Time
	repeatDelay    time.Duration
	repeatInterval time.Duration
	hasRepeated    bool
}

// NewRepeatInput creates a RepeatInput with default timing.
func NewRepeatInput() RepeatInput {
	return NewRepeatInputWithTiming(constants.DefaultRepeatDelay, constants.DefaultRepeatInterval)
}

// NewRepeatInputWithTiming creates a RepeatInput with custom timing.
func NewRepeatInputWithTiming(delay, interval time.Duration) RepeatInput {
	return RepeatInput{
		repeatDelay:    delay,
		repeatInterval: interval,
		lastRepeatTime: time.Now(),
	}
}

// SetHeld updates the held state for a command.
// Returns true if the command is one that repeats.
func (r *RepeatInput) SetHeld(cmd constants.Command, held bool, now time.Time) bool {
	switch cmd {
	case constants.CommandPush:
		r.held.push = held
	case constants.CommandPop:
		r.held.pop = held
	default:
		return false
	}
	if held {
		r.lastRepeatTime = now
	}
	r.hasRepeated = false
	return true
}

// IsHeld returns true if any repeating command is held.
func (r *RepeatInput) IsHeld() bool {
	return r.held.push || r.held.pop
}

// HeldCommand returns the held command, preferring push.
func (r *RepeatInput) HeldCommand() constants.Command {
	if r.held.push {
		return constants.CommandPush
	}
	if r.held.pop {
		return constants.CommandPop
	}
	return constants.CommandNone
}

// Update checks if a repeat should fire at now. Call it every frame.
// The first repeat comes after the repeat delay, later ones after the
// repeat interval.
func (r *RepeatInput) Update(now time.Time) constants.Command {
	if !r.IsHeld() {
		r.lastRepeatTime = now
		r.hasRepeated = false
		return constants.CommandNone
	}

	threshold := r.repeatInterval
	if !r.hasRepeated {
		threshold = r.repeatDelay
	}

	if now.Sub(r.lastRepeatTime) >= threshold {
		r.lastRepeatTime = now
		r.hasRepeated = true
		return r.HeldCommand()
	}

	return constants.CommandNone
}

// Reset clears all held commands and timing state.
func (r *RepeatInput) Reset(now time.Time) {
	r.held.push = false
	r.held.pop = false
	r.hasRepeated = false
	r.lastRepeatTime = now
}
