package sweep

import (
	"math"
	"os"

	"github.com/npillmayer/fontsweep/core"
	"github.com/npillmayer/fontsweep/core/dimen"
	"github.com/npillmayer/fontsweep/core/font"
	"gopkg.in/yaml.v3"
)

// Fixture holds the parameters of a sweep.
type Fixture struct {
	Text   string  `yaml:"text"`   // test string drawn on every line
	Sizes  []int   `yaml:"sizes"`  // font sizes in points, in drawing order
	Margin int     `yaml:"margin"` // extra vertical pixels per line
	Left   int     `yaml:"left"`   // x coordinate of every line's origin
	Width  int     `yaml:"width"`  // width of the image in pixels
	DPI    float64 `yaml:"dpi"`    // resolution, 72 makes 1pt = 1px
}

// Limits of a sweep image, in pixels, and of its resolution.
const (
	MaxWidth  = 1 << 14
	MaxHeight = 1 << 15
	MaxDPI    = 2400.0
)

// DefaultFixture returns the standard sweep: "Hello World!" from 6pt to
// 20pt. 15pt is not part of the sequence.
func DefaultFixture() Fixture {
	return Fixture{
		Text:   "Hello World!",
		Sizes:  []int{6, 7, 8, 9, 10, 11, 12, 13, 14, 16, 17, 18, 19, 20},
		Margin: 4,
		Left:   5,
		Width:  500,
		DPI:    dimen.DefaultDPI,
	}
}

// Validate checks a fixture for consistency.
func (fx Fixture) Validate() error {
	if fx.Text == "" {
		return core.Error(core.EINVALID, "fixture has no test string")
	}
	if len(fx.Sizes) == 0 {
		return core.Error(core.EINVALID, "fixture has no font sizes")
	}
	for _, s := range fx.Sizes {
		if err := checkSize(s); err != nil {
			return err
		}
	}
	if fx.Margin < 0 {
		return core.Error(core.EINVALID, "line margin must not be negative, is %d", fx.Margin)
	}
	if fx.Width <= 0 || fx.Width > MaxWidth {
		return core.Error(core.EINVALID, "image width must be within 1…%d, is %d", MaxWidth, fx.Width)
	}
	if math.IsNaN(fx.DPI) || fx.DPI <= 0 || fx.DPI > MaxDPI {
		return core.Error(core.EINVALID, "resolution must be within 0…%g, is %g", MaxDPI, fx.DPI)
	}
	if h := fx.Layout().Height; h > MaxHeight {
		return core.Error(core.EINVALID, "image height of %d exceeds %d pixels, use fewer sizes",
			h, MaxHeight)
	}
	return nil
}

func checkSize(pt int) error {
	if pt < font.MinSize || pt > font.MaxSize {
		return core.Error(core.EINVALID, "font size must be within %g…%gpt, is %d",
			font.MinSize, font.MaxSize, pt)
	}
	return nil
}

// ParseFixture reads a fixture in YAML format. Fields missing from the
// input keep the values of DefaultFixture, e.g.
//
//	text: "Sphinx of black quartz"
//	sizes: [9, 10, 11]
func ParseFixture(data []byte) (Fixture, error) {
	fx := DefaultFixture()
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return fx, core.WrapError(err, core.EINVALID, "cannot parse fixture")
	}
	return fx, fx.Validate()
}

// LoadFixture reads a fixture from a YAML file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultFixture(), core.WrapError(err, core.EIO, "cannot read fixture %s", path)
	}
	tracer().Debugf("loading fixture from %s", path)
	return ParseFixture(data)
}

// --- Layout ----------------------------------------------------------------

// Layout is the geometry of a sweep image.
type Layout struct {
	Width, Height int
	Baselines     []int // y coordinate of each line's baseline
}

// advance is the vertical space a line of size pt occupies.
func (fx Fixture) advance(pt int) int {
	return dimen.CeilPixels(float64(pt), fx.DPI) + fx.Margin
}

// Layout computes the baselines of all lines and the image height.
// The cursor advances by the previous line's pixel size plus the margin,
// but at least by the pixel size of the next line, so a large size following
// a small one keeps its ascent clear of the line above. The first baseline
// is placed one advance below the top edge, and the image ends one advance
// below the last baseline:
//
//	baseline[0] = adv(size[0])
//	baseline[i] = baseline[i-1] + max(adv(size[i-1]), px(size[i]))
//	height      = baseline[n-1] + adv(size[n-1])
//
// with adv(s) = px(s) + margin.
func (fx Fixture) Layout() Layout {
	l := Layout{
		Width:     fx.Width,
		Baselines: make([]int, len(fx.Sizes)),
	}
	if len(fx.Sizes) == 0 {
		return l
	}
	y := fx.advance(fx.Sizes[0])
	for i, s := range fx.Sizes {
		if i > 0 {
			y += max(fx.advance(fx.Sizes[i-1]), dimen.CeilPixels(float64(s), fx.DPI))
		}
		l.Baselines[i] = y
	}
	l.Height = y + fx.advance(fx.Sizes[len(fx.Sizes)-1])
	return l
}
