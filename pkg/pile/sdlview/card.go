package sdlview

import (
	"math"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/pile/pkg/pile"
)

// Card is a coloured panel with an icon over a title. The textures are
// borrowed; the card never destroys them.
type Card struct {
	Title *sdl.Texture
	Icon  *sdl.Texture
	Color sdl.Color

	alpha     float64
	transform pile.Transform3D
	frame     pile.Rect
}

// NewCard returns an invisible card until a Pile lays it out.
func NewCard(title, icon *sdl.Texture, color sdl.Color) *Card {
	return &Card{
		Title:     title,
		Icon:      icon,
		Color:     color,
		transform: pile.Identity3D(),
	}
}

func (c *Card) SetAlpha(a float64) { c.alpha = a }

func (c *Card) SetTransform(t pile.Transform3D) { c.transform = t }

func (c *Card) SetFrame(r pile.Rect) { c.frame = r }

func (c *Card) Alpha() float64 { return c.alpha }

func (c *Card) Frame() pile.Rect { return c.frame }

// placement returns the on-screen rectangle and alpha modulation, or
// false when the card would not be visible.
func (c *Card) placement() (sdl.Rect, uint8, bool) {
	if c.alpha <= 0 {
		return sdl.Rect{}, 0, false
	}
	r := c.transform.ProjectRect(c.frame)
	if r.IsEmpty() {
		return sdl.Rect{}, 0, false
	}

	dst := sdl.Rect{
		X: int32(math.Round(r.X)),
		Y: int32(math.Round(r.Y)),
		W: int32(math.Round(r.W)),
		H: int32(math.Round(r.H)),
	}
	a := uint8(math.Round(math.Min(c.alpha, 1) * 255))
	return dst, a, dst.W > 0 && dst.H > 0
}

func (c *Card) render(renderer *sdl.Renderer) error {
	dst, a, ok := c.placement()
	if !ok {
		return nil
	}

	if err := renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		return err
	}
	fill := uint8(uint16(c.Color.A) * uint16(a) / 255)
	if err := renderer.SetDrawColor(c.Color.R, c.Color.G, c.Color.B, fill); err != nil {
		return err
	}
	if err := renderer.FillRect(&dst); err != nil {
		return err
	}

	// Contents shrink with the projected card.
	scale := math.Min(float64(dst.W)/c.frame.W, float64(dst.H)/c.frame.H)
	content := UniformPadding(int32(24 * scale)).Inset(dst)
	if content.W <= 0 || content.H <= 0 {
		return nil
	}

	if c.Icon != nil {
		size := min(content.W, content.H) / 3
		icon := sdl.Rect{X: content.X + (content.W-size)/2, Y: content.Y + content.H/4 - size/2, W: size, H: size}
		if err := copyFaded(renderer, c.Icon, icon, a); err != nil {
			return err
		}
	}

	if tw, th := textureSize(c.Title); tw > 0 && th > 0 {
		s := math.Min(scale, float64(content.W)/float64(tw))
		w, h := int32(float64(tw)*s), int32(float64(th)*s)
		title := sdl.Rect{X: content.X + (content.W-w)/2, Y: content.Y + content.H*5/8 - h/2, W: w, H: h}
		if err := copyFaded(renderer, c.Title, title, a); err != nil {
			return err
		}
	}
	return nil
}

func copyFaded(renderer *sdl.Renderer, t *sdl.Texture, dst sdl.Rect, a uint8) error {
	if err := t.SetAlphaMod(a); err != nil {
		return err
	}
	return renderer.Copy(t, nil, &dst)
}
