package sdlview

import "github.com/veandco/go-sdl2/sdl"

// Theme defines the colours and font of the SDL demo.
type Theme struct {
	BackgroundColor sdl.Color   // Screen background color
	TextColor       sdl.Color   // Card title color
	HintColor       sdl.Color   // Help text color
	CardColors      []sdl.Color // Card faces, cycled
	FontPath        string      // Path to a TTF font
	FontSize        int
	HintFontSize    int
}

// HexToColor converts 0xRRGGBB to an opaque color.
func HexToColor(hex uint32) sdl.Color {
	return sdl.Color{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 255,
	}
}

// DefaultTheme returns a dark theme using the font at fontPath.
func DefaultTheme(fontPath string) Theme {
	return Theme{
		BackgroundColor: HexToColor(0x101014),
		TextColor:       HexToColor(0xFFFFFF),
		HintColor:       HexToColor(0x9A9A9A),
		CardColors: []sdl.Color{
			HexToColor(0x008080),
			HexToColor(0x4CCBF1),
			HexToColor(0x6EAD26),
			HexToColor(0xF89048),
			HexToColor(0xF46251),
			HexToColor(0x9F83E4),
		},
		FontPath:     fontPath,
		FontSize:     48,
		HintFontSize: 20,
	}
}

// CardColor returns the face color for the card with the given serial.
func (t Theme) CardColor(serial int) sdl.Color {
	if len(t.CardColors) == 0 {
		return t.TextColor
	}
	return t.CardColors[serial%len(t.CardColors)]
}
