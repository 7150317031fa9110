package shaping

import (
	"context"
	"image"
	"testing"

	"github.com/npillmayer/fontsweep/backend/raster"
	"github.com/npillmayer/fontsweep/core/font"
	"github.com/npillmayer/fontsweep/engine/sweep"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	xfont "golang.org/x/image/font"
	"golang.org/x/text/language"
)

// --- Test Suite Preparation ------------------------------------------------

type ShapingTestEnviron struct {
	suite.Suite
	font    *font.ScalableFont
	checker *Checker
}

// listen for 'go test' command --> run test methods
func TestShapingFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsweep.glyphs")
	defer teardown()
	suite.Run(t, new(ShapingTestEnviron))
}

// run once, before test suite methods
func (env *ShapingTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("fontsweep.glyphs").SetTraceLevel(tracing.LevelError)
	env.font = font.FallbackFont()
	var err error
	env.checker, err = NewChecker(env.font)
	env.Require().NoError(err)
	tracing.Select("fontsweep.glyphs").SetTraceLevel(tracing.LevelInfo)
}

// --- Tests -----------------------------------------------------------------

func (env *ShapingTestEnviron) TestScriptConversion() {
	env.Equal(uint32(0x6c61746e), uint32(Script4HB(language.MustParseScript("Latn"))))
}

func (env *ShapingTestEnviron) TestRenderedSweepMatchesShaping() {
	for _, backend := range raster.Backends {
		r, err := raster.New(backend, env.font, raster.Options{Hinting: xfont.HintingNone})
		env.Require().NoError(err)
		fx := sweep.DefaultFixture()
		result, err := sweep.Run(context.Background(), r, fx)
		env.Require().NoError(err)
		for _, line := range result.Lines {
			report := env.checker.Check(fx.Text, line.Size, fx.DPI, line.BBox)
			env.T().Logf("%-8s %s", backend, report)
			env.True(report.Glyphs > 0 && report.Glyphs <= 12, "unexpected glyph count %d", report.Glyphs)
			env.Equal(12, report.Clusters)
			env.False(report.Suspicious(), "%s: %s", backend, report)
		}
	}
}

func (env *ShapingTestEnviron) TestMismetricedLineIsSuspicious() {
	good := env.checker.Check("Hello World!", 20, 72, raster.BBox{})
	env.Greater(good.Expected, 80.0)
	wide := raster.BBoxFromRect(image.Rect(5, 0, 5+int(good.Expected*1.5), 20))
	report := env.checker.Check("Hello World!", 20, 72, wide)
	env.True(report.Suspicious(), "%s", report)
	env.Greater(report.Deviation, 0.0)
}

func (env *ShapingTestEnviron) TestClusters() {
	env.Equal(0, env.checker.countClusters(""))
	env.Equal(3, env.checker.countClusters("Café"[1:]))
}

func (env *ShapingTestEnviron) TestNilFont() {
	_, err := NewChecker(nil)
	env.Error(err)
}
