package sdlview

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/pile/pkg/pile"
)

// Stage is a pile.Container drawn with an SDL renderer. Cards are drawn
// in attach order, so the most recently attached card is on top.
type Stage struct {
	width, height int32
	margins       Padding
	background    sdl.Color
	cards         []*Card
}

// NewStage returns a stage of the given size in pixels.
func NewStage(width, height int32, theme Theme) *Stage {
	return &Stage{
		width:      width,
		height:     height,
		margins:    UniformPadding(40),
		background: theme.BackgroundColor,
	}
}

// Bounds returns the area inside the stage margins.
func (s *Stage) Bounds() pile.Rect {
	r := s.margins.Inset(sdl.Rect{W: s.width, H: s.height})
	return pile.Rect{X: float64(r.X), Y: float64(r.Y), W: float64(r.W), H: float64(r.H)}
}

// Attach adds a card, or raises it to the top if already attached.
// Elements that are not *Card are ignored.
func (s *Stage) Attach(el pile.Element) {
	c, ok := el.(*Card)
	if !ok {
		return
	}
	s.remove(c)
	s.cards = append(s.cards, c)
}

// Detach removes a card.
func (s *Stage) Detach(el pile.Element) {
	if c, ok := el.(*Card); ok {
		s.remove(c)
	}
}

// Resize changes the stage size. Callers relayout the pile afterwards.
func (s *Stage) Resize(width, height int32) {
	s.width, s.height = width, height
}

// Cards returns the attached cards, bottom first.
func (s *Stage) Cards() []*Card {
	return append([]*Card(nil), s.cards...)
}

// Render clears to the background colour and draws every card.
func (s *Stage) Render(renderer *sdl.Renderer) error {
	bg := s.background
	if err := renderer.SetDrawColor(bg.R, bg.G, bg.B, bg.A); err != nil {
		return NewInfrastructureError("render", err)
	}
	if err := renderer.Clear(); err != nil {
		return NewInfrastructureError("render", err)
	}

	for _, c := range s.cards {
		if err := c.render(renderer); err != nil {
			return NewInfrastructureError("render", err)
		}
	}
	return nil
}

func (s *Stage) remove(c *Card) {
	for i, a := range s.cards {
		if a == c {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			return
		}
	}
}
