// Package deck drives a router from stack commands. Both demo hosts use
// it to turn pushes, pops, updates and resets into card transitions.
package deck

import (
	"log/slog"

	"github.com/BrandonKowalski/pile/pkg/pile"
	"github.com/BrandonKowalski/pile/pkg/pile/constants"
	"github.com/BrandonKowalski/pile/pkg/pile/router"
)

// ScreenCard is the only screen a deck shows.
const ScreenCard router.Screen = iota

// Face is the input a card is built from.
type Face struct {
	Serial int
	Title  string
}

// Builder creates a host element for a face.
type Builder func(face Face) (pile.Element, error)

// Deck deals faces from a fixed list of titles in order, wrapping around.
type Deck struct {
	router *router.Router
	titles []string
	serial int
	logger *slog.Logger
}

// New creates a Deck dealing titles onto p.
func New(p *pile.Pile, titles []string, build Builder, logger *slog.Logger) *Deck {
	if len(titles) == 0 {
		titles = []string{"?"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := router.New(p).Register(ScreenCard, func(input any) (pile.Element, error) {
		return build(input.(Face))
	})

	return &Deck{router: r, titles: titles, logger: logger}
}

// Start shows the first face without animation.
func (d *Deck) Start() error {
	d.serial = 0
	return d.router.Reset(router.Target{Screen: ScreenCard, Input: d.deal()})
}

// Apply runs cmd. It reports true for CommandQuit.
func (d *Deck) Apply(cmd constants.Command) (quit bool, err error) {
	switch cmd {
	case constants.CommandPush:
		err = d.router.Navigate(ScreenCard, d.deal())
	case constants.CommandPop:
		d.router.Back()
	case constants.CommandUpdate:
		err = d.router.Replace(ScreenCard, d.deal())
	case constants.CommandReset:
		err = d.Start()
	case constants.CommandQuit:
		return true, nil
	default:
		return false, nil
	}

	if err != nil {
		d.logger.Error("Command failed", "command", cmd.GetName(), "error", err)
		return false, err
	}
	d.logger.Debug("Command applied", "command", cmd.GetName(), "depth", d.Depth())
	return false, nil
}

// Depth returns how many cards are on the stack.
func (d *Deck) Depth() int {
	return d.router.Stack().Len()
}

// Current returns the face on top, if any.
func (d *Deck) Current() (Face, bool) {
	entry := d.router.Current()
	if entry == nil {
		return Face{}, false
	}
	return entry.Input.(Face), true
}

func (d *Deck) deal() Face {
	f := Face{Serial: d.serial, Title: d.titles[d.serial%len(d.titles)]}
	d.serial++
	return f
}
