package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/npillmayer/fontsweep/core/font"
	"github.com/npillmayer/fontsweep/core/font/fontregistry"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type otRenderer struct {
	font *font.ScalableFont
	key  string
	opts Options
}

func newOpenTypeRenderer(f *font.ScalableFont, opts Options) *otRenderer {
	if opts.Registry == nil {
		opts.Registry = fontregistry.NewRegistry(opts.Hinting)
	}
	return &otRenderer{
		font: f,
		key:  opts.Registry.StoreFont(f),
		opts: opts,
	}
}

func (r *otRenderer) Backend() string {
	return OpenType
}

func (r *otRenderer) DrawString(dst draw.Image, ink color.Color, size float64, dot image.Point, text string) (BBox, error) {
	if err := precheck(r.font, r.opts, size, text); err != nil {
		return BBox{}, err
	}
	tc, err := r.opts.Registry.TypeCase(r.key, size, r.opts.DPI)
	if err != nil {
		return BBox{}, err
	}
	d := &xfont.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ink),
		Face: tc.Face(),
		Dot:  fixed.P(dot.X, dot.Y),
	}
	bounds, advance := d.BoundString(text)
	tracer().Debugf("opentype: %.1fpt advance = %v", size, advance)
	d.DrawString(text)
	return bboxFromFixed(bounds, image.Point{}), nil // bounds are relative to d.Dot already
}
