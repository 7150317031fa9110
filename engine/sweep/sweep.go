package sweep

import (
	"context"
	"image"
	"image/color"

	"github.com/npillmayer/fontsweep/backend/raster"
	"github.com/npillmayer/fontsweep/core"
)

// Palette of the sweep image. The first entry is the background.
var Palette = color.Palette{color.White, color.Black}

// Line is the outcome of drawing the test string at one size.
type Line struct {
	Size     int
	Baseline int
	BBox     raster.BBox
	Clipped  bool // bounding box exceeds the image
}

// Result is the outcome of a sweep.
type Result struct {
	Backend string
	Fixture Fixture
	Canvas  *image.Paletted
	Lines   []Line
}

// Clipped returns the lines which are not completely visible.
func (r *Result) Clipped() []Line {
	var clipped []Line
	for _, l := range r.Lines {
		if l.Clipped {
			clipped = append(clipped, l)
		}
	}
	return clipped
}

// Run draws the fixture's test string once for every size, using renderer
// r. The first failing draw call stops the sweep; its error is returned,
// prefixed with the backend's name and the size. Run checks ctx for
// cancellation before every line.
func Run(ctx context.Context, r raster.Renderer, fx Fixture) (*Result, error) {
	if err := fx.Validate(); err != nil {
		return nil, err
	}
	layout := fx.Layout()
	tracer().Infof("sweep of %d sizes with %s, image is %d×%d", len(fx.Sizes), r.Backend(),
		layout.Width, layout.Height)
	canvas := image.NewPaletted(image.Rect(0, 0, layout.Width, layout.Height), Palette)
	ink := Palette[1]
	result := &Result{
		Backend: r.Backend(),
		Fixture: fx,
		Canvas:  canvas,
		Lines:   make([]Line, 0, len(fx.Sizes)),
	}
	for i, size := range fx.Sizes {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		dot := image.Pt(fx.Left, layout.Baselines[i])
		bbox, err := r.DrawString(canvas, ink, float64(size), dot, fx.Text)
		if err != nil {
			tracer().Errorf("%s: drawing at %dpt failed: %v", r.Backend(), size, err)
			return result, core.WrapError(err, core.Code(err), "%s: %dpt: %s",
				r.Backend(), size, core.UserMessage(err))
		}
		line := Line{
			Size:     size,
			Baseline: dot.Y,
			BBox:     bbox,
			Clipped:  !bbox.In(canvas.Bounds()),
		}
		if line.Clipped {
			tracer().Errorf("%s: line at %dpt is clipped, bbox = %v", r.Backend(), size, bbox)
		} else {
			tracer().Debugf("%s: %2dpt at y=%d, bbox = %v", r.Backend(), size, dot.Y, bbox)
		}
		result.Lines = append(result.Lines, line)
	}
	return result, nil
}
