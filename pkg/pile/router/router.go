package router

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/pile/pkg/pile"
)

// ErrUnknownScreen is returned when navigating to a screen that was
// never registered.
var ErrUnknownScreen = errors.New("screen not registered")

// Screen is a type-safe identifier for screens.
// Applications should define their own Screen constants using iota.
//
// Example:
//
//	const (
//	    ScreenMain Screen = iota
//	    ScreenSettings
//	    ScreenDetail
//	)
type Screen int

// Builder creates the element shown for a screen from its input.
type Builder func(input any) (pile.Element, error)

// Target names a screen and the input to build it with.
type Target struct {
	Screen Screen
	Input  any
}

// Router turns screen navigation into pile transitions. Forward
// navigation pushes, going back pops, and every entry remembers the
// screen and input its element was built from.
//
// Like the Pile it drives, a Router must be used from one goroutine.
type Router struct {
	pile     *pile.Pile
	builders map[Screen]Builder
	stack    *Stack
	animated bool
}

// New creates a Router driving p. Transitions are animated by default.
func New(p *pile.Pile) *Router {
	return &Router{
		pile:     p,
		builders: make(map[Screen]Builder),
		stack:    NewStack(),
		animated: true,
	}
}

// Register adds a screen to the router.
func (r *Router) Register(screen Screen, fn Builder) *Router {
	r.builders[screen] = fn
	return r
}

// SetAnimated chooses whether Navigate and Back animate.
func (r *Router) SetAnimated(animated bool) *Router {
	r.animated = animated
	return r
}

// Navigate builds screen from input and pushes it.
func (r *Router) Navigate(screen Screen, input any) error {
	entry, err := r.build(screen, input)
	if err != nil {
		return err
	}

	r.stack.Push(entry)
	r.pile.Push(entry.Element, r.animated)
	return nil
}

// Back pops the current screen. It returns false when there is nothing
// to go back to.
func (r *Router) Back() bool {
	if r.stack.Len() <= 1 {
		return false
	}

	r.stack.Pop()
	r.pile.Pop(r.animated)
	return true
}

// Replace swaps the current screen without animation. On an empty
// router it does nothing.
func (r *Router) Replace(screen Screen, input any) error {
	if r.stack.IsEmpty() {
		return nil
	}

	entry, err := r.build(screen, input)
	if err != nil {
		return err
	}

	r.stack.Replace(entry)
	r.pile.Update(entry.Element)
	return nil
}

// Reset replaces the whole history without animation. The last target
// becomes the current screen. Nothing changes if any target fails to
// build.
func (r *Router) Reset(targets ...Target) error {
	entries := make([]StackEntry, 0, len(targets))
	elements := make([]pile.Element, 0, len(targets))

	for _, t := range targets {
		entry, err := r.build(t.Screen, t.Input)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
		elements = append(elements, entry.Element)
	}

	r.stack.Set(entries)
	r.pile.SetViews(elements)
	return nil
}

// Current returns the current entry, or nil before the first navigation.
func (r *Router) Current() *StackEntry {
	return r.stack.Peek()
}

// Stack returns the navigation history.
func (r *Router) Stack() *Stack {
	return r.stack
}

func (r *Router) build(screen Screen, input any) (StackEntry, error) {
	fn, ok := r.builders[screen]
	if !ok {
		return StackEntry{}, fmt.Errorf("router: screen %d: %w", screen, ErrUnknownScreen)
	}

	el, err := fn(input)
	if err != nil {
		return StackEntry{}, fmt.Errorf("router: screen %d error: %w", screen, err)
	}

	return StackEntry{Screen: screen, Input: input, Element: el}, nil
}
