package tuiview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/BrandonKowalski/pile/pkg/pile"
)

// Palette is the card border palette, cycled by NextColor.
var Palette = []lipgloss.Color{
	lipgloss.Color("#4CCBF1"), // light blue
	lipgloss.Color("#4DCA7D"), // green
	lipgloss.Color("#F5C800"), // yellow
	lipgloss.Color("#F89048"), // orange
	lipgloss.Color("#F46251"), // red
	lipgloss.Color("#EB82BC"), // pink
	lipgloss.Color("#9F83E4"), // purple
	lipgloss.Color("#5084F3"), // blue
}

// Card is a bordered box with a centred title. Frames are in cells.
type Card struct {
	Title string
	Color lipgloss.Color

	alpha     float64
	transform pile.Transform3D
	frame     pile.Rect
}

// NewCard returns a card with the identity transform. It stays invisible
// until a Pile lays it out.
func NewCard(title string, color lipgloss.Color) *Card {
	return &Card{
		Title:     title,
		Color:     color,
		transform: pile.Identity3D(),
	}
}

func (c *Card) SetAlpha(a float64) { c.alpha = a }

func (c *Card) SetTransform(t pile.Transform3D) { c.transform = t }

func (c *Card) SetFrame(r pile.Rect) { c.frame = r }

func (c *Card) Alpha() float64 { return c.alpha }

func (c *Card) Transform() pile.Transform3D { return c.transform }

func (c *Card) Frame() pile.Rect { return c.frame }

// Projected returns the cell rectangle the card covers once its
// transform is applied.
func (c *Card) Projected() pile.Rect {
	return c.transform.ProjectRect(c.frame)
}

func (c *Card) style() lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(c.Color)
	if c.alpha < 0.5 {
		s = s.Faint(true)
	} else {
		s = s.Bold(true)
	}
	return s
}
