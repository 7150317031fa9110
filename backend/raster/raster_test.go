package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/npillmayer/fontsweep/core"
	"github.com/npillmayer/fontsweep/core/font"
	"github.com/npillmayer/fontsweep/core/font/fontregistry"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	xfont "golang.org/x/image/font"
)

// --- Test Suite Preparation ------------------------------------------------

type RasterTestEnviron struct {
	suite.Suite
	font *font.ScalableFont
}

// listen for 'go test' command --> run test methods
func TestRasterFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsweep.raster")
	defer teardown()
	suite.Run(t, new(RasterTestEnviron))
}

// run once, before test suite methods
func (env *RasterTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("fontsweep.raster").SetTraceLevel(tracing.LevelError)
	env.font = font.FallbackFont()
	tracing.Select("fontsweep.raster").SetTraceLevel(tracing.LevelInfo)
}

func canvas() *image.Paletted {
	return image.NewPaletted(image.Rect(0, 0, 200, 60), color.Palette{color.White, color.Black})
}

func inked(img *image.Paletted, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.ColorIndexAt(x, y) == 1 {
				n++
			}
		}
	}
	return n
}

// --- Tests -----------------------------------------------------------------

func (env *RasterTestEnviron) TestAllBackendsDraw() {
	for _, backend := range Backends {
		r, err := New(backend, env.font, Options{Hinting: xfont.HintingFull})
		env.Require().NoError(err, backend)
		env.Equal(backend, r.Backend())
		img := canvas()
		bb, err := r.DrawString(img, color.Black, 20, image.Pt(5, 30), "Hello World!")
		env.Require().NoError(err, backend)
		env.T().Logf("%-8s bbox = %v", backend, bb)
		box := bb.Rect()
		env.Less(box.Min.Y, 30, "%s: text should extend above the baseline", backend)
		env.GreaterOrEqual(box.Min.X, 5, "%s: text should start right of the origin", backend)
		env.Greater(box.Dx(), 80, "%s: 12 characters at 20px should be wider than 80px", backend)
		env.True(bb.In(img.Bounds()), backend)
		ink := inked(img, img.Bounds())
		env.Greater(ink, 100, "%s: expected inked pixels", backend)
		env.Equal(ink, inked(img, box.Inset(-1).Intersect(img.Bounds())),
			"%s: expected all ink within the bounding box", backend)
	}
}

func (env *RasterTestEnviron) TestBackendsAgreeOnExtent() {
	var boxes []BBox
	for _, backend := range Backends {
		r, err := New(backend, env.font, Options{Hinting: xfont.HintingNone})
		env.Require().NoError(err)
		bb, err := r.DrawString(canvas(), color.Black, 14, image.Pt(5, 30), "Hello World!")
		env.Require().NoError(err)
		boxes = append(boxes, bb)
	}
	for i := 1; i < len(boxes); i++ {
		env.InDelta(boxes[0].Width(), boxes[i].Width(), 2, "widths of %s and %s differ", Backends[0], Backends[i])
	}
}

func (env *RasterTestEnviron) TestInvalidSizes() {
	for _, backend := range Backends {
		r, err := New(backend, env.font, Options{})
		env.Require().NoError(err)
		_, err = r.DrawString(canvas(), color.Black, 0, image.Pt(5, 30), "Hello")
		env.Equal(core.EINVALID, core.Code(err), backend)
	}
}

func (env *RasterTestEnviron) TestStrictMode() {
	r, err := New(FreeType, env.font, Options{Strict: true})
	env.Require().NoError(err)
	_, err = r.DrawString(canvas(), color.Black, 12, image.Pt(5, 30), "Hello 世界")
	env.Equal(core.EMISSING, core.Code(err))
	_, err = r.DrawString(canvas(), color.Black, 12, image.Pt(5, 30), "Hello World!")
	env.NoError(err)
}

func (env *RasterTestEnviron) TestUnknownBackend() {
	_, err := New("cairo", env.font, Options{})
	env.Equal(core.EINVALID, core.Code(err))
	_, err = New(OpenType, nil, Options{})
	env.Equal(core.EINVALID, core.Code(err))
}

func (env *RasterTestEnviron) TestRegistryHintingMustMatch() {
	reg := fontregistry.NewRegistry(xfont.HintingFull)
	_, err := New(OpenType, env.font, Options{Hinting: xfont.HintingNone, Registry: reg})
	env.Equal(core.EINVALID, core.Code(err))
	r, err := New(OpenType, env.font, Options{Hinting: xfont.HintingFull, Registry: reg})
	env.Require().NoError(err)
	_, err = r.DrawString(canvas(), color.Black, 12, image.Pt(5, 30), "Hello")
	env.NoError(err)
	_, typecases := reg.Size()
	env.Equal(1, typecases, "renderer should use the registry passed in")
}

func (env *RasterTestEnviron) TestClippedText() {
	r, err := New(GG, env.font, Options{})
	env.Require().NoError(err)
	img := canvas()
	bb, err := r.DrawString(img, color.Black, 20, image.Pt(5, 300), "Hello")
	env.Require().NoError(err)
	env.False(bb.In(img.Bounds()))
	env.Equal(0, inked(img, img.Bounds()))
}

func TestBBoxCorners(t *testing.T) {
	bb := BBoxFromRect(image.Rect(5, 10, 50, 30))
	if bb != (BBox{5, 30, 50, 30, 50, 10, 5, 10}) {
		t.Errorf("unexpected corner order: %v", bb)
	}
	if bb.LowerLeft() != image.Pt(5, 30) || bb.UpperRight() != image.Pt(50, 10) {
		t.Errorf("unexpected corners: %v", bb)
	}
	if bb.Rect() != image.Rect(5, 10, 50, 30) || bb.Width() != 45 {
		t.Errorf("unexpected rect for %v", bb)
	}
	if !bb.In(image.Rect(0, 0, 50, 30)) || bb.In(image.Rect(0, 0, 49, 30)) {
		t.Errorf("containment check failed for %v", bb)
	}
	if bb.String() != "[5,30 50,30 50,10 5,10]" {
		t.Errorf("unexpected string %s", bb.String())
	}
}
