package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/npillmayer/fontsweep/core"
	"github.com/npillmayer/fontsweep/core/dimen"
	"github.com/npillmayer/fontsweep/core/font"
	"github.com/npillmayer/fontsweep/core/font/fontregistry"
	xfont "golang.org/x/image/font"
)

// Renderer draws text into images. Implementations are not safe for
// concurrent use.
type Renderer interface {
	// Backend is the name of the rasterizer library in use.
	Backend() string
	// DrawString draws text with ink, at a font size given in points, with the
	// baseline origin at dot. It returns the bounding box of the text.
	DrawString(dst draw.Image, ink color.Color, size float64, dot image.Point, text string) (BBox, error)
}

// Backend names
const (
	OpenType = "opentype"
	FreeType = "freetype"
	GG       = "gg"
)

// Backends lists the available backends. The first one is the default.
var Backends = []string{OpenType, FreeType, GG}

// Options control the behaviour of renderers.
type Options struct {
	DPI      float64                // resolution; defaults to 72
	Hinting  xfont.Hinting          // glyph hinting
	Strict   bool                   // fail for runes the font has no glyph for
	Registry *fontregistry.Registry // typecase cache for backend "opentype", must match Hinting
}

// New creates a renderer for a font. backend must be one of Backends; an
// empty string selects the default backend.
func New(backend string, f *font.ScalableFont, opts Options) (Renderer, error) {
	if f == nil {
		return nil, core.Error(core.EINVALID, "renderer needs a font")
	}
	if opts.DPI == 0 {
		opts.DPI = dimen.DefaultDPI
	}
	if math.IsNaN(opts.DPI) || opts.DPI < 0 {
		return nil, core.Error(core.EINVALID, "resolution must be positive, is %g", opts.DPI)
	}
	if opts.Registry != nil && opts.Registry.Hinting() != opts.Hinting {
		return nil, core.Error(core.EINVALID, "registry prepares typecases with hinting %v, renderer wants %v",
			opts.Registry.Hinting(), opts.Hinting)
	}
	switch strings.ToLower(backend) {
	case "", OpenType:
		return newOpenTypeRenderer(f, opts), nil
	case FreeType:
		return newFreeTypeRenderer(f, opts)
	case GG:
		return newGGRenderer(f, opts)
	}
	return nil, core.Error(core.EINVALID, "unknown backend %q, expected one of %s",
		backend, strings.Join(Backends, ", "))
}

// precheck validates the parameters of a draw call, common to all backends.
func precheck(f *font.ScalableFont, opts Options, size float64, text string) error {
	if math.IsNaN(size) || size < font.MinSize || size > font.MaxSize {
		return core.Error(core.EINVALID, "font size must be %g ≤ size ≤ %g, is %g",
			font.MinSize, font.MaxSize, size)
	}
	if opts.Strict {
		if missing := f.MissingGlyphs(text); len(missing) > 0 {
			return core.Error(core.EMISSING, "font %s has no glyph for %q", f.Fontname, string(missing))
		}
	}
	return nil
}
