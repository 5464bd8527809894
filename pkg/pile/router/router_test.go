package router

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/pile/pkg/pile"
)

const (
	screenHome Screen = iota
	screenCity
	screenBroken
)

type page struct{ name string }

func (*page) SetAlpha(float64)              {}
func (*page) SetTransform(pile.Transform3D) {}
func (*page) SetFrame(pile.Rect)            {}

type shelf struct{ attached []pile.Element }

func (*shelf) Bounds() pile.Rect { return pile.Rect{W: 80, H: 24} }

func (s *shelf) Attach(el pile.Element) { s.attached = append(s.attached, el) }

func (s *shelf) Detach(el pile.Element) {
	for i, a := range s.attached {
		if a == el {
			s.attached = append(s.attached[:i], s.attached[i+1:]...)
			return
		}
	}
}

var errBuild = errors.New("no such city")

func newTestRouter() (*Router, *pile.Pile, *shelf) {
	s := &shelf{}
	p := pile.New(s, pile.Immediate{}, pile.Options{})
	r := New(p).
		Register(screenHome, func(any) (pile.Element, error) {
			return &page{name: "home"}, nil
		}).
		Register(screenCity, func(input any) (pile.Element, error) {
			return &page{name: input.(string)}, nil
		}).
		Register(screenBroken, func(any) (pile.Element, error) {
			return nil, errBuild
		})
	return r, p, s
}

func name(el pile.Element) string {
	return el.(*page).name
}

func TestNavigateAndBack(t *testing.T) {
	t.Parallel()
	r, p, s := newTestRouter()

	require.Nil(t, r.Current())
	require.False(t, r.Back())

	require.NoError(t, r.Navigate(screenHome, nil))
	require.NoError(t, r.Navigate(screenCity, "Seoul"))

	require.Equal(t, 2, r.Stack().Len())
	require.Equal(t, "Seoul", r.Current().Input)
	top, ok := p.CurrentView()
	require.True(t, ok)
	assert.Equal(t, "Seoul", name(top))
	assert.Len(t, s.attached, 1)

	require.True(t, r.Back())
	assert.Equal(t, screenHome, r.Current().Screen)
	top, _ = p.CurrentView()
	assert.Equal(t, "home", name(top))
	assert.Equal(t, []pile.Element{top}, s.attached)

	assert.False(t, r.Back(), "the root screen stays")
	assert.Equal(t, 1, p.Len())
}

func TestNavigateErrors(t *testing.T) {
	t.Parallel()
	r, p, _ := newTestRouter()

	err := r.Navigate(Screen(42), nil)
	require.ErrorIs(t, err, ErrUnknownScreen)
	require.ErrorContains(t, err, "screen 42")

	err = r.Navigate(screenBroken, nil)
	require.ErrorIs(t, err, errBuild)

	assert.True(t, r.Stack().IsEmpty())
	assert.Zero(t, p.Len())
}

func TestReplace(t *testing.T) {
	t.Parallel()
	r, p, s := newTestRouter()

	require.NoError(t, r.Replace(screenCity, "Tokyo"))
	assert.Zero(t, p.Len(), "replacing on an empty router does nothing")

	require.NoError(t, r.Navigate(screenHome, nil))
	require.NoError(t, r.Navigate(screenCity, "Tokyo"))
	require.NoError(t, r.Replace(screenCity, "Seoul"))

	assert.Equal(t, 2, r.Stack().Len())
	assert.Equal(t, "Seoul", r.Current().Input)
	top, _ := p.CurrentView()
	assert.Equal(t, "Seoul", name(top))
	assert.Len(t, s.attached, 1)

	require.ErrorIs(t, r.Replace(screenBroken, nil), errBuild)
	assert.Equal(t, "Seoul", r.Current().Input)
}

func TestReset(t *testing.T) {
	t.Parallel()
	r, p, s := newTestRouter()
	require.NoError(t, r.Navigate(screenCity, "Tokyo"))

	require.NoError(t, r.Reset(
		Target{Screen: screenHome},
		Target{Screen: screenCity, Input: "New York"},
	))
	require.Equal(t, 2, r.Stack().Len())
	assert.Equal(t, 2, p.Len())
	top, _ := p.CurrentView()
	assert.Equal(t, "New York", name(top))
	assert.Equal(t, []pile.Element{top}, s.attached)

	err := r.Reset(Target{Screen: screenHome}, Target{Screen: screenBroken})
	require.ErrorIs(t, err, errBuild)
	assert.Equal(t, "New York", r.Current().Input, "a failed reset leaves history alone")
	assert.Equal(t, 2, p.Len())

	require.NoError(t, r.Reset())
	assert.True(t, r.Stack().IsEmpty())
	assert.Zero(t, p.Len())
	assert.Empty(t, s.attached)
}

func TestStack(t *testing.T) {
	t.Parallel()
	s := NewStack()

	assert.Nil(t, s.Pop())
	assert.Nil(t, s.Peek())

	s.Push(StackEntry{Screen: screenHome})
	s.Push(StackEntry{Screen: screenCity, Input: "Tokyo"})
	s.Replace(StackEntry{Screen: screenCity, Input: "Seoul"})

	entries := s.Entries()
	require.Len(t, entries, 2)
	entries[0].Input = "changed"
	assert.Nil(t, s.Entries()[0].Input, "Entries returns a copy")

	popped := s.Pop()
	require.NotNil(t, popped)
	assert.Equal(t, "Seoul", popped.Input)

	s.Clear()
	assert.True(t, s.IsEmpty())
}
