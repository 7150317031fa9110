package shaping

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"unicode"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/fontsweep/backend/raster"
	"github.com/npillmayer/fontsweep/core"
	"github.com/npillmayer/fontsweep/core/dimen"
	"github.com/npillmayer/fontsweep/core/font"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
)

// --- Type conversion -------------------------------------------------------

// Lang4HB returns a language tag as a HarfBuzz language.
func Lang4HB(l language.Tag) hblang.Language {
	return hblang.NewLanguage(l.String())
}

// Script4HB returns a script as a HarfBuzz script.
func Script4HB(s language.Script) hblang.Script {
	b := []byte(s.String())
	b[0] = byte(unicode.ToLower(rune(b[0])))
	h := binary.BigEndian.Uint32(b)
	return hblang.Script(h)
}

// --- Checker ---------------------------------------------------------------

// Checker shapes text with one font.
type Checker struct {
	font     *font.ScalableFont
	hbFont   *hb.Font
	upem     int
	props    hb.SegmentProperties
	sfntBuf  sfnt.Buffer
	segmentr *segment.Segmenter
}

// Report is the result of checking one rendered line.
type Report struct {
	Size      int
	Glyphs    int     // number of glyphs after shaping
	Clusters  int     // number of grapheme clusters in the text
	Expected  float64 // width of the inked area in pixels, as computed from HarfBuzz advances
	Rendered  int     // width of the bounding box reported by the rasterizer
	Deviation float64 // Rendered - Expected
	Tolerance float64
}

// Suspicious is true if the rendered width deviates from the expected width
// by more than the tolerance.
func (r Report) Suspicious() bool {
	return math.Abs(r.Deviation) > r.Tolerance
}

func (r Report) String() string {
	return fmt.Sprintf("%2dpt: %d glyphs, %d clusters, width %d px, expected %.1f px (%+.1f)",
		r.Size, r.Glyphs, r.Clusters, r.Rendered, r.Expected, r.Deviation)
}

// NewChecker parses a font for shaping. Text is shaped left-to-right as
// English text in Latin script.
func NewChecker(f *font.ScalableFont) (*Checker, error) {
	if f == nil {
		return nil, core.Error(core.EINVALID, "shaping needs a font")
	}
	hbFace, err := hbtt.Parse(bytes.NewReader(f.Binary), true)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "HarfBuzz cannot parse font %s", f.Fontname)
	}
	c := &Checker{
		font:   f,
		hbFont: hb.NewFont(hbFace),
		upem:   f.UnitsPerEm(),
	}
	c.props.Direction = hb.LeftToRight
	c.props.Script = Script4HB(language.MustParseScript("Latn"))
	c.props.Language = Lang4HB(language.English)
	grapheme.SetupGraphemeClasses()
	c.segmentr = segment.NewSegmenter(grapheme.NewBreaker(1))
	return c, nil
}

// Tolerance is the allowed deviation in pixels for a text of n glyphs:
// outward rounding of the bounding box plus rounding of hinted advances.
func Tolerance(n int) float64 {
	return 2 + 0.5*float64(n)
}

// Check shapes text, scales it to size at resolution dpi and compares it with
// the width of a rendered bounding box.
func (c *Checker) Check(text string, size int, dpi float64, bbox raster.BBox) Report {
	runes := []rune(text)
	buf := hb.NewBuffer()
	buf.Props = c.props
	buf.AddRunes(runes, 0, len(runes))
	buf.Shape(c.hbFont, nil)
	report := Report{
		Size:     size,
		Glyphs:   len(buf.Info),
		Clusters: c.countClusters(text),
		Rendered: bbox.Width(),
	}
	report.Tolerance = Tolerance(report.Glyphs)
	ink := c.inkWidth(buf)
	report.Expected = ink.Pixels(c.upem, dimen.PixelSize(float64(size), dpi))
	report.Deviation = float64(report.Rendered) - report.Expected
	tracer().Debugf("%s", report)
	return report
}

// inkWidth computes the width of the inked area of a shaped buffer in design
// units: the sum of all advances, minus the left bearing of the first glyph and
// the right bearing of the last one.
func (c *Checker) inkWidth(buf *hb.Buffer) dimen.DU {
	if len(buf.Info) == 0 {
		return 0
	}
	var total dimen.DU
	for i := range buf.Pos {
		total += dimen.DU(buf.Pos[i].XAdvance)
	}
	first, last := buf.Info[0], buf.Info[len(buf.Info)-1]
	firstBounds, _, err1 := c.glyphBounds(sfnt.GlyphIndex(first.Glyph))
	lastBounds, lastAdv, err2 := c.glyphBounds(sfnt.GlyphIndex(last.Glyph))
	if err1 != nil || err2 != nil {
		tracer().Errorf("cannot read glyph bounds from font %s", c.font.Fontname)
		return total
	}
	lsb := dimen.DU(firstBounds.Min.X)
	rsb := dimen.DU(lastAdv - lastBounds.Max.X)
	return total - lsb - rsb
}

// glyphBounds returns the bounds and advance of a glyph in design units.
func (c *Checker) glyphBounds(gid sfnt.GlyphIndex) (fixed.Rectangle26_6, fixed.Int26_6, error) {
	sf := c.font.SFNT
	return sf.GlyphBounds(&c.sfntBuf, gid, fixed.Int26_6(c.upem), xfont.HintingNone)
}

func (c *Checker) countClusters(text string) int {
	c.segmentr.Init(strings.NewReader(text))
	n := 0
	for c.segmentr.Next() {
		n++
	}
	return n
}
