package sdlview

import (
	"os"
	"strconv"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/BrandonKowalski/pile/pkg/pile/constants"
	"github.com/BrandonKowalski/pile/pkg/pile/internal"
)

// WindowOptions are the SDL window flags.
type WindowOptions struct {
	Borderless        bool // Remove window decorations (SDL_WINDOW_BORDERLESS)
	Resizable         bool // Allow window resizing (SDL_WINDOW_RESIZABLE)
	Fullscreen        bool // Fullscreen mode (SDL_WINDOW_FULLSCREEN)
	FullscreenDesktop bool // Fullscreen at desktop resolution (SDL_WINDOW_FULLSCREEN_DESKTOP)
	Hidden            bool // Start hidden (omits SDL_WINDOW_SHOWN)
}

func (wo WindowOptions) IsZero() bool {
	return wo == WindowOptions{}
}

func (wo WindowOptions) ToSDLFlags() uint32 {
	var flags uint32

	if !wo.Hidden {
		flags |= sdl.WINDOW_SHOWN
	}

	if wo.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}

	if wo.Borderless {
		flags |= sdl.WINDOW_BORDERLESS
	}

	if wo.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	if wo.FullscreenDesktop {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	return flags
}

// Window wraps an SDL window and its renderer.
type Window struct {
	Window   *sdl.Window
	Renderer *sdl.Renderer
	Title    string

	hasVSync        bool
	frameMillis     uint64
	lastPresentTime uint64
}

// OpenWindow initializes SDL and TTF and opens a window. On a device the
// window covers the current display mode. In development mode
// (ENVIRONMENT=DEV) it is a decorated window sized from WINDOW_WIDTH and
// WINDOW_HEIGHT. fps paces Present when the renderer has no vsync.
func OpenWindow(title string, winOpts WindowOptions, fps int) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, NewInfrastructureError("init_sdl", err)
	}
	if err := ttf.Init(); err != nil {
		sdl.Quit()
		return nil, NewInfrastructureError("init_ttf", err)
	}

	// Apply default window options if none specified
	if winOpts.IsZero() {
		winOpts = WindowOptions{Resizable: true}
	}

	x, y := int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED)
	width, height := constants.DefaultWindowWidth, constants.DefaultWindowHeight

	if constants.IsDevMode() {
		winOpts.Borderless = false
		x, y = 50, 50
		width = envSize(constants.WindowWidthEnvVar, constants.DefaultWindowWidth)
		height = envSize(constants.WindowHeightEnvVar, constants.DefaultWindowHeight)
	} else if mode, err := sdl.GetCurrentDisplayMode(0); err == nil {
		width, height = mode.W, mode.H
	} else {
		internal.GetInternalLogger().Error("Failed to get display mode", "error", err)
	}

	internal.GetInternalLogger().Debug("Initializing SDL Window", "width", width, "height", height)

	window, err := sdl.CreateWindow(title, x, y, width, height, winOpts.ToSDLFlags())
	if err != nil {
		closeSDL()
		return nil, NewInfrastructureError("create_window", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		_ = window.Destroy()
		closeSDL()
		return nil, NewInfrastructureError("create_renderer", err)
	}

	info, err := renderer.GetInfo()
	vsync := err == nil && info.Flags&sdl.RENDERER_PRESENTVSYNC != 0

	if fps <= 0 {
		fps = 60
	}

	return &Window{
		Window:      window,
		Renderer:    renderer,
		Title:       title,
		hasVSync:    vsync,
		frameMillis: uint64(1000 / fps),
	}, nil
}

// Size returns the drawable size in pixels.
func (w *Window) Size() (int32, int32) {
	width, height, err := w.Renderer.GetOutputSize()
	if err != nil {
		return w.Window.GetSize()
	}
	return width, height
}

// Present swaps the render buffer and enforces the frame rate when VSync
// is not available. Use this instead of renderer.Present().
func (w *Window) Present() {
	w.Renderer.Present()
	if !w.hasVSync {
		now := sdl.GetTicks64()
		if elapsed := now - w.lastPresentTime; elapsed < w.frameMillis {
			sdl.Delay(uint32(w.frameMillis - elapsed))
		}
		w.lastPresentTime = sdl.GetTicks64()
	}
}

// Close destroys the renderer and window and shuts SDL down.
func (w *Window) Close() {
	_ = w.Renderer.Destroy()
	_ = w.Window.Destroy()
	closeSDL()
}

func closeSDL() {
	ttf.Quit()
	sdl.Quit()
}

func envSize(key string, fallback int32) int32 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n <= 0 {
		internal.GetInternalLogger().Warn("Invalid window size; using default", "key", key, "value", v, "error", err)
		return fallback
	}
	return int32(n)
}
