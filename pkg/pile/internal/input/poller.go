package input

import (
	"time"

	"github.com/BrandonKowalski/pile/pkg/pile/constants"
	"github.com/BrandonKowalski/pile/pkg/pile/internal"
)

// Poller drains a Source without blocking and adds timed repeats for
// held push and pop buttons. It belongs to the render loop.
type Poller struct {
	src    Source
	repeat internal.RepeatInput
	closed bool
}

// NewPoller wraps src with the default repeat timing.
func NewPoller(src Source) *Poller {
	return &Poller{src: src, repeat: internal.NewRepeatInput()}
}

// NewPollerWithTiming wraps src with custom repeat timing.
func NewPollerWithTiming(src Source, delay, interval time.Duration) *Poller {
	return &Poller{src: src, repeat: internal.NewRepeatInputWithTiming(delay, interval)}
}

// Poll returns the commands pressed since the last call followed by any
// repeat that came due at now.
func (p *Poller) Poll(now time.Time) []constants.Command {
	var cmds []constants.Command

	for !p.closed {
		select {
		case e, ok := <-p.src.Events():
			if !ok {
				p.closed = true
				p.repeat.Reset(now)
				internal.GetInternalLogger().Debug("Input source closed", "dropped", p.src.Dropped())
				continue
			}
			p.repeat.SetHeld(e.Command, e.Pressed, now)
			if e.Pressed {
				cmds = append(cmds, e.Command)
			}
			continue
		default:
		}
		break
	}

	if cmd := p.repeat.Update(now); cmd != constants.CommandNone {
		cmds = append(cmds, cmd)
	}
	return cmds
}

// Close closes the underlying source.
func (p *Poller) Close() error {
	return p.src.Close()
}
