//go:build linux

package input

import (
	"fmt"

	"github.com/holoplot/go-evdev"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/pile/pkg/pile/constants"
	"github.com/BrandonKowalski/pile/pkg/pile/internal"
)

const eventBuffer = 32

// Key event values reported by the kernel.
const (
	keyReleased int32 = 0
	keyPressed  int32 = 1
	keyRepeated int32 = 2
)

// keymap covers keyboards and the face buttons of handheld gamepads.
var keymap = map[evdev.EvCode]constants.Command{
	evdev.KEY_RIGHT:  constants.CommandPush,
	evdev.KEY_SPACE:  constants.CommandPush,
	evdev.BTN_SOUTH:  constants.CommandPush,
	evdev.KEY_LEFT:   constants.CommandPop,
	evdev.BTN_EAST:   constants.CommandPop,
	evdev.KEY_U:      constants.CommandUpdate,
	evdev.BTN_NORTH:  constants.CommandUpdate,
	evdev.KEY_R:      constants.CommandReset,
	evdev.BTN_START:  constants.CommandReset,
	evdev.KEY_Q:      constants.CommandQuit,
	evdev.KEY_ESC:    constants.CommandQuit,
	evdev.KEY_POWER:  constants.CommandQuit,
	evdev.BTN_SELECT: constants.CommandQuit,
}

// Translate maps a raw key event to a command event. Kernel autorepeat
// is ignored; the demos time their own repeats.
func Translate(typ evdev.EvType, code evdev.EvCode, value int32) (Event, bool) {
	if typ != evdev.EV_KEY || value == keyRepeated {
		return Event{}, false
	}
	cmd, ok := keymap[code]
	if !ok {
		return Event{}, false
	}
	return Event{Command: cmd, Pressed: value == keyPressed}, true
}

// EvdevReader reads an input device node such as /dev/input/event1.
type EvdevReader struct {
	dev     *evdev.InputDevice
	events  chan Event
	running *atomic.Bool
	dropped *atomic.Int64
}

// OpenEvdev opens the device at path and starts reading it.
func OpenEvdev(path string) (*EvdevReader, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: open %s: %w", path, err)
	}

	r := &EvdevReader{
		dev:     dev,
		events:  make(chan Event, eventBuffer),
		running: atomic.NewBool(true),
		dropped: atomic.NewInt64(0),
	}

	name, _ := dev.Name()
	internal.GetInternalLogger().Debug("Reading input device", "path", path, "name", name)

	go r.run()
	return r, nil
}

func (r *EvdevReader) run() {
	defer close(r.events)

	for r.running.Load() {
		ev, err := r.dev.ReadOne()
		if err != nil {
			if r.running.Load() {
				internal.GetInternalLogger().Error("Input device read failed", "error", err)
			}
			return
		}

		e, ok := Translate(ev.Type, ev.Code, ev.Value)
		if !ok {
			continue
		}

		select {
		case r.events <- e:
		default:
			r.dropped.Inc()
		}
	}
}

// Events returns the command events. The channel closes when reading stops.
func (r *EvdevReader) Events() <-chan Event {
	return r.events
}

// Dropped returns how many events were discarded because the render loop
// fell behind.
func (r *EvdevReader) Dropped() int64 {
	return r.dropped.Load()
}

// Close stops reading and releases the device.
func (r *EvdevReader) Close() error {
	if !r.running.CompareAndSwap(true, false) {
		return nil
	}
	return r.dev.Close()
}
