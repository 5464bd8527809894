// Package sdlview shows a pile of cards in an SDL window.
package sdlview

import (
	_ "embed"
	"log/slog"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/BrandonKowalski/pile/pkg/pile"
	"github.com/BrandonKowalski/pile/pkg/pile/constants"
	"github.com/BrandonKowalski/pile/pkg/pile/deck"
	"github.com/BrandonKowalski/pile/pkg/pile/internal"
)

//go:embed assets/card.svg
var cardIcon []byte

const iconSize = 128

// Poller is polled once per frame for commands from an input device.
type Poller interface {
	Poll(now time.Time) []constants.Command
}

// Options configures Run.
type Options struct {
	Title  string
	Titles []string
	Help   string
	Theme  Theme
	Pile   pile.Options
	FPS    int
	Window WindowOptions
	Poller Poller
	Logger *slog.Logger
}

// Run opens a window and shows a deck of cards until the window closes
// or a quit command arrives. It must be called from the main goroutine.
func Run(opts Options) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	logger := opts.Logger
	if logger == nil {
		logger = internal.GetInternalLogger()
	}
	if opts.Pile.Logger == nil {
		opts.Pile.Logger = logger
	}

	win, err := OpenWindow(opts.Title, opts.Window, opts.FPS)
	if err != nil {
		return err
	}
	defer win.Close()
	renderer := win.Renderer

	theme := opts.Theme
	font, err := ttf.OpenFont(theme.FontPath, theme.FontSize)
	if err != nil {
		return NewInfrastructureError("load_font", err)
	}
	defer font.Close()

	hintFont, err := ttf.OpenFont(theme.FontPath, theme.HintFontSize)
	if err != nil {
		return NewInfrastructureError("load_font", err)
	}
	defer hintFont.Close()

	cache := NewTextureCache(len(opts.Titles) + 2)
	defer cache.Clear()

	icon, err := cache.GetOrCreate("icon", func() (*sdl.Texture, error) {
		return TextureFromSVG(renderer, cardIcon, iconSize, iconSize)
	})
	if err != nil {
		return err
	}

	help, err := TextureFromText(renderer, hintFont, opts.Help, theme.HintColor)
	if err != nil {
		return err
	}
	if help != nil {
		defer help.Destroy()
	}

	w, h := win.Size()
	stage := NewStage(w, h, theme)
	anim := pile.NewAnimator(opts.FPS)
	p := pile.New(stage, anim, opts.Pile)

	d := deck.New(p, opts.Titles, func(f deck.Face) (pile.Element, error) {
		title, err := cache.GetOrCreate("title:"+f.Title, func() (*sdl.Texture, error) {
			return TextureFromText(renderer, font, f.Title, theme.TextColor)
		})
		if err != nil {
			return nil, err
		}
		return NewCard(title, icon, theme.CardColor(f.Serial)), nil
	}, logger)

	if err := d.Start(); err != nil {
		return err
	}

	repeat := internal.NewRepeatInput()
	last := time.Now()

	for {
		now := time.Now()
		anim.Advance(now.Sub(last))
		last = now

		var cmds []constants.Command
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil

			case *sdl.KeyboardEvent:
				// SDL key repeat is ignored; RepeatInput times held keys.
				if e.Repeat != 0 {
					continue
				}
				cmd := keyCommand(e.Keysym.Sym)
				if cmd == constants.CommandNone {
					continue
				}
				pressed := e.Type == sdl.KEYDOWN
				repeat.SetHeld(cmd, pressed, now)
				if pressed {
					cmds = append(cmds, cmd)
				}

			case *sdl.WindowEvent:
				if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
					stage.Resize(win.Size())
					p.Relayout()
				}
			}
		}

		if cmd := repeat.Update(now); cmd != constants.CommandNone {
			cmds = append(cmds, cmd)
		}
		if opts.Poller != nil {
			cmds = append(cmds, opts.Poller.Poll(now)...)
		}

		for _, cmd := range cmds {
			quit, err := d.Apply(cmd)
			if err != nil && IsInfrastructureError(err) {
				return err
			}
			if quit {
				return nil
			}
		}

		if err := stage.Render(renderer); err != nil {
			return err
		}
		if err := renderHelp(renderer, help, stage); err != nil {
			return err
		}
		win.Present()
	}
}

func renderHelp(renderer *sdl.Renderer, help *sdl.Texture, stage *Stage) error {
	tw, th := textureSize(help)
	if tw == 0 {
		return nil
	}
	dst := sdl.Rect{
		X: (stage.width - tw) / 2,
		Y: stage.height - stage.margins.Bottom/2 - th/2,
		W: tw,
		H: th,
	}
	if err := renderer.Copy(help, nil, &dst); err != nil {
		return NewInfrastructureError("render", err)
	}
	return nil
}

func keyCommand(key sdl.Keycode) constants.Command {
	switch key {
	case sdl.K_RIGHT, sdl.K_SPACE, sdl.K_RETURN, sdl.K_l:
		return constants.CommandPush
	case sdl.K_LEFT, sdl.K_BACKSPACE, sdl.K_h:
		return constants.CommandPop
	case sdl.K_u:
		return constants.CommandUpdate
	case sdl.K_r:
		return constants.CommandReset
	case sdl.K_q, sdl.K_ESCAPE:
		return constants.CommandQuit
	default:
		return constants.CommandNone
	}
}
