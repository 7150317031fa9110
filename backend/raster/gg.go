package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
	"github.com/npillmayer/fontsweep/core/font"
	xfont "golang.org/x/image/font"
)

// ggRenderer draws with a gg context onto an RGBA overlay covering the
// text's bounding box. The overlay is then composited onto the destination.
type ggRenderer struct {
	*truetypeFaces
}

func newGGRenderer(f *font.ScalableFont, opts Options) (*ggRenderer, error) {
	faces, err := newTruetypeFaces(f, opts)
	if err != nil {
		return nil, err
	}
	return &ggRenderer{truetypeFaces: faces}, nil
}

func (r *ggRenderer) Backend() string {
	return GG
}

func (r *ggRenderer) DrawString(dst draw.Image, ink color.Color, size float64, dot image.Point, text string) (BBox, error) {
	if err := precheck(r.font, r.opts, size, text); err != nil {
		return BBox{}, err
	}
	face := r.face(size)
	bounds, _ := xfont.BoundString(face, text)
	bbox := bboxFromFixed(bounds, dot)
	area := bbox.Rect().Inset(-2).Intersect(dst.Bounds())
	if area.Empty() {
		tracer().Debugf("gg: text at %.1fpt is outside of the image", size)
		return bbox, nil
	}
	overlay := image.NewRGBA(image.Rect(0, 0, area.Dx(), area.Dy()))
	dc := gg.NewContextForRGBA(overlay)
	dc.SetFontFace(face)
	dc.SetColor(ink)
	dc.DrawString(text, float64(dot.X-area.Min.X), float64(dot.Y-area.Min.Y))
	draw.Draw(dst, area, dc.Image(), image.Point{}, draw.Over)
	return bbox, nil
}
