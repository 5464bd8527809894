// Package input turns hardware keys into stack commands for the demos.
package input

import "github.com/BrandonKowalski/pile/pkg/pile/constants"

// Event is a command press or release.
type Event struct {
	Command constants.Command
	Pressed bool
}

// Source delivers events from a goroutine other than the render loop.
// The loop drains Events each frame so the pile is only touched from one
// goroutine.
type Source interface {
	Events() <-chan Event
	Dropped() int64
	Close() error
}
