package sdlview

import (
	"runtime"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/BrandonKowalski/pile/pkg/pile/internal"
	"github.com/BrandonKowalski/pile/pkg/pile/internal/raster"
)

// TextureCache keeps rendered textures by key and destroys them on
// eviction. Cards borrow textures from it, so size it to hold every
// texture on screen at once.
type TextureCache struct {
	*internal.Cache[*sdl.Texture]
}

// NewTextureCache creates a cache holding up to maxSize textures.
func NewTextureCache(maxSize int) *TextureCache {
	return &TextureCache{internal.NewCache(maxSize, func(t *sdl.Texture) {
		if t != nil {
			t.Destroy()
		}
	})}
}

// TextureFromSVG rasterizes an SVG document to a w by h texture.
func TextureFromSVG(renderer *sdl.Renderer, data []byte, w, h int) (*sdl.Texture, error) {
	img, err := raster.SVG(data, w, h)
	if err != nil {
		return nil, NewInfrastructureError("rasterize_svg", err)
	}

	surface, err := sdl.CreateRGBSurfaceWithFormatFrom(
		unsafe.Pointer(&img.Pix[0]),
		int32(w), int32(h), 32, int32(img.Stride),
		uint32(sdl.PIXELFORMAT_ABGR8888),
	)
	if err != nil {
		return nil, NewInfrastructureError("create_surface", err)
	}
	defer surface.Free()

	texture, err := renderer.CreateTextureFromSurface(surface)
	runtime.KeepAlive(img)
	if err != nil {
		return nil, NewInfrastructureError("create_texture", err)
	}
	_ = texture.SetBlendMode(sdl.BLENDMODE_BLEND)
	return texture, nil
}

// TextureFromText renders text with font. Empty text yields a nil
// texture and no error.
func TextureFromText(renderer *sdl.Renderer, font *ttf.Font, text string, color sdl.Color) (*sdl.Texture, error) {
	if text == "" {
		return nil, nil
	}

	surface, err := font.RenderUTF8Blended(text, color)
	if err != nil {
		return nil, NewInfrastructureError("render_text", err)
	}
	defer surface.Free()

	texture, err := renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, NewInfrastructureError("create_texture", err)
	}
	return texture, nil
}

func textureSize(t *sdl.Texture) (w, h int32) {
	if t == nil {
		return 0, 0
	}
	_, _, w, h, err := t.Query()
	if err != nil {
		return 0, 0
	}
	return w, h
}
