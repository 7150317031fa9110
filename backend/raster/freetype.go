package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/npillmayer/fontsweep/core"
	"github.com/npillmayer/fontsweep/core/font"
	xfont "golang.org/x/image/font"
)

// truetypeFaces parses a font with the FreeType port and caches its faces
// by size. It is shared by the "freetype" and the "gg" backend.
type truetypeFaces struct {
	font  *font.ScalableFont
	ttf   *truetype.Font
	opts  Options
	faces map[float64]xfont.Face
}

func newTruetypeFaces(f *font.ScalableFont, opts Options) (*truetypeFaces, error) {
	ttf, err := freetype.ParseFont(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "freetype cannot parse font %s", f.Fontname)
	}
	return &truetypeFaces{
		font:  f,
		ttf:   ttf,
		opts:  opts,
		faces: make(map[float64]xfont.Face),
	}, nil
}

func (tf *truetypeFaces) face(size float64) xfont.Face {
	if face, ok := tf.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(tf.ttf, &truetype.Options{
		Size:    size,
		DPI:     tf.opts.DPI,
		Hinting: tf.opts.Hinting,
	})
	tf.faces[size] = face
	return face
}

// --- FreeType --------------------------------------------------------------

type ftRenderer struct {
	*truetypeFaces
	ctx *freetype.Context
}

func newFreeTypeRenderer(f *font.ScalableFont, opts Options) (*ftRenderer, error) {
	faces, err := newTruetypeFaces(f, opts)
	if err != nil {
		return nil, err
	}
	ctx := freetype.NewContext()
	ctx.SetFont(faces.ttf)
	ctx.SetDPI(opts.DPI)
	ctx.SetHinting(opts.Hinting)
	return &ftRenderer{truetypeFaces: faces, ctx: ctx}, nil
}

func (r *ftRenderer) Backend() string {
	return FreeType
}

func (r *ftRenderer) DrawString(dst draw.Image, ink color.Color, size float64, dot image.Point, text string) (BBox, error) {
	if err := precheck(r.font, r.opts, size, text); err != nil {
		return BBox{}, err
	}
	bounds, _ := xfont.BoundString(r.face(size), text)
	r.ctx.SetFontSize(size)
	r.ctx.SetClip(dst.Bounds())
	r.ctx.SetDst(dst)
	r.ctx.SetSrc(image.NewUniform(ink))
	if _, err := r.ctx.DrawString(text, freetype.Pt(dot.X, dot.Y)); err != nil {
		return BBox{}, core.WrapError(err, core.ERENDER, "freetype cannot draw at %gpt", size)
	}
	return bboxFromFixed(bounds, dot), nil
}
