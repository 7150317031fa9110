package sweep

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/fontsweep/backend/raster"
	"github.com/npillmayer/fontsweep/core"
	"github.com/npillmayer/fontsweep/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xfont "golang.org/x/image/font"
)

func TestDefaultLayout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsweep.sweep")
	defer teardown()
	//
	fx := DefaultFixture()
	require.NoError(t, fx.Validate())
	assert.Len(t, fx.Sizes, 14)
	l := fx.Layout()
	assert.Equal(t, 500, l.Width)
	assert.Equal(t, 246, l.Height, "sum of size+4 over all sizes, plus 6+4 above the first line")
	assert.Equal(t, 10, l.Baselines[0])
	assert.Equal(t, 20, l.Baselines[1])
	assert.Equal(t, 222, l.Baselines[13])
	for i := 1; i < len(l.Baselines); i++ {
		assert.Greater(t, l.Baselines[i], l.Baselines[i-1], "baselines must increase")
	}
}

func TestLayoutAtHigherResolution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsweep.sweep")
	defer teardown()
	//
	fx := DefaultFixture()
	fx.Sizes = []int{9, 12}
	fx.DPI = 96
	l := fx.Layout()
	assert.Equal(t, []int{16, 32}, l.Baselines) // 9pt = 12px, 12pt = 16px
	assert.Equal(t, 52, l.Height)
}

func TestLayoutOfGrowingSizes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsweep.sweep")
	defer teardown()
	//
	fx := DefaultFixture()
	fx.Sizes = []int{6, 40, 8}
	l := fx.Layout()
	assert.Equal(t, []int{10, 50, 94}, l.Baselines, "40pt line must clear the 6pt line")
	assert.Equal(t, 106, l.Height)
	for _, backend := range raster.Backends {
		r, err := raster.New(backend, font.FallbackFont(), raster.Options{Hinting: xfont.HintingFull})
		require.NoError(t, err)
		result, err := Run(context.Background(), r, fx)
		require.NoError(t, err, backend)
		assert.Empty(t, result.Clipped(), "%s: all lines should be visible", backend)
		for i := 1; i < len(result.Lines); i++ {
			above, line := result.Lines[i-1], result.Lines[i]
			assert.GreaterOrEqual(t, line.BBox.UpperLeft().Y, above.BBox.LowerLeft().Y,
				"%s: %dpt overlaps %dpt", backend, line.Size, above.Size)
		}
	}
}

func TestValidate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsweep.sweep")
	defer teardown()
	//
	for name, modify := range map[string]func(*Fixture){
		"no text":       func(fx *Fixture) { fx.Text = "" },
		"no sizes":      func(fx *Fixture) { fx.Sizes = nil },
		"zero size":     func(fx *Fixture) { fx.Sizes = []int{6, 0} },
		"neg margin":    func(fx *Fixture) { fx.Margin = -1 },
		"no width":      func(fx *Fixture) { fx.Width = 0 },
		"no resolution": func(fx *Fixture) { fx.DPI = 0 },
		"huge size":     func(fx *Fixture) { fx.Sizes = []int{6, 1125899906842624} },
		"too large":     func(fx *Fixture) { fx.Sizes = []int{6, 1001} },
		"wide image":    func(fx *Fixture) { fx.Width = 1 << 30 },
		"resolution":    func(fx *Fixture) { fx.DPI = 1e9 },
		"tall image":    func(fx *Fixture) { fx.Sizes = []int{900, 950, 1000}; fx.DPI = 2400 },
	} {
		fx := DefaultFixture()
		modify(&fx)
		err := fx.Validate()
		assert.Equal(t, core.EINVALID, core.Code(err), name)
	}
}

func TestParseFixture(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsweep.sweep")
	defer teardown()
	//
	fx, err := ParseFixture([]byte("text: Sphinx of black quartz\nsizes: [9, 10, 11]\n"))
	require.NoError(t, err)
	assert.Equal(t, "Sphinx of black quartz", fx.Text)
	assert.Equal(t, []int{9, 10, 11}, fx.Sizes)
	assert.Equal(t, 4, fx.Margin, "unset fields should keep their default")
	assert.Equal(t, 500, fx.Width)
	//
	_, err = ParseFixture([]byte("sizes: [9, -1]"))
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = ParseFixture([]byte("sizes: {"))
	assert.Equal(t, core.EINVALID, core.Code(err))
	//
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 320\ndpi: 96\n"), 0644))
	fx, err = LoadFixture(path)
	require.NoError(t, err)
	assert.Equal(t, 320, fx.Width)
	assert.Equal(t, 96.0, fx.DPI)
	_, err = LoadFixture(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, core.EIO, core.Code(err))
}

func TestParseSizes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsweep.sweep")
	defer teardown()
	//
	sizes, err := ParseSizes("6-14,16-20")
	require.NoError(t, err)
	assert.Equal(t, DefaultFixture().Sizes, sizes)
	sizes, err = ParseSizes("12 10, 12 8-10")
	require.NoError(t, err)
	assert.Equal(t, []int{12, 10, 8, 9}, sizes)
	sizes, err = ParseSizes("9-7")
	require.NoError(t, err)
	assert.Equal(t, []int{9, 8, 7}, sizes)
	for _, bad := range []string{"", "abc", "0-3", "3-x", " , ", "6,1125899906842624", "990-1010"} {
		_, err = ParseSizes(bad)
		assert.Equal(t, core.EINVALID, core.Code(err), "%q", bad)
	}
}

func TestRunDefaultSweep(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsweep.sweep")
	defer teardown()
	//
	for _, backend := range raster.Backends {
		r, err := raster.New(backend, font.FallbackFont(), raster.Options{Hinting: xfont.HintingFull})
		require.NoError(t, err)
		result, err := Run(context.Background(), r, DefaultFixture())
		require.NoError(t, err, backend)
		assert.Equal(t, backend, result.Backend)
		assert.Equal(t, image.Rect(0, 0, 500, 246), result.Canvas.Bounds())
		require.Len(t, result.Lines, 14)
		assert.Empty(t, result.Clipped(), "%s: all lines should be visible", backend)
		for i, line := range result.Lines {
			assert.Equal(t, DefaultFixture().Sizes[i], line.Size)
			assert.Less(t, line.BBox.UpperLeft().Y, line.Baseline)
			if i > 0 {
				prev := result.Lines[i-1]
				assert.Greater(t, line.BBox.Width(), prev.BBox.Width()-2,
					"%s: text should not shrink from %dpt to %dpt", backend, prev.Size, line.Size)
			}
		}
	}
}

func TestRunReportsClippedLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsweep.sweep")
	defer teardown()
	//
	fx := DefaultFixture()
	fx.Width = 60
	r, err := raster.New(raster.OpenType, font.FallbackFont(), raster.Options{})
	require.NoError(t, err)
	result, err := Run(context.Background(), r, fx)
	require.NoError(t, err)
	clipped := result.Clipped()
	assert.NotEmpty(t, clipped)
	assert.Equal(t, 20, clipped[len(clipped)-1].Size)
}

type failingRenderer struct {
	failAt int
	calls  int
}

func (f *failingRenderer) Backend() string { return "failing" }

func (f *failingRenderer) DrawString(dst draw.Image, ink color.Color, size float64, dot image.Point, text string) (raster.BBox, error) {
	f.calls++
	if int(size) == f.failAt {
		return raster.BBox{}, core.WrapError(errors.New("bad hinting program"), core.ERENDER, "cannot render glyph")
	}
	return raster.BBoxFromRect(image.Rect(dot.X, dot.Y-int(size), dot.X+10, dot.Y)), nil
}

func TestRunStopsAtFirstError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsweep.sweep")
	defer teardown()
	//
	r := &failingRenderer{failAt: 9}
	result, err := Run(context.Background(), r, DefaultFixture())
	require.Error(t, err)
	assert.Equal(t, core.ERENDER, core.Code(err))
	assert.Equal(t, "failing: 9pt: cannot render glyph", core.UserMessage(err))
	assert.Equal(t, 4, r.calls, "sweep should stop at the failing size")
	assert.Len(t, result.Lines, 3)
}

func TestRunRejectsOversizedFixture(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsweep.sweep")
	defer teardown()
	//
	fx := DefaultFixture()
	fx.Sizes = []int{6, 1125899906842624}
	r := &failingRenderer{}
	var err error
	assert.NotPanics(t, func() {
		_, err = Run(context.Background(), r, fx)
	})
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Equal(t, 0, r.calls)
}

func TestRunCancelled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsweep.sweep")
	defer teardown()
	//
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &failingRenderer{}
	_, err := Run(ctx, r, DefaultFixture())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, r.calls)
}
