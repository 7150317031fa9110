/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Go Regular".

* A "typecase" is a scaled font, i.e. a font in a certain size, prepared
for a certain output resolution. The name is reminiscent of the wooden
boxes of typesetters in the area of metal type.
An example is "Go Regular 11pt at 72 dpi".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package font

import (
	"math"
	"os"
	"sync"

	"github.com/npillmayer/fontsweep/core"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// tracer traces with key 'fontsweep.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("fontsweep.fonts")
}

// Font sizes outside of [MinSize…MaxSize] are rejected by PrepareCase.
const (
	MinSize = 1.0
	MaxSize = 1000.0
)

// ScalableFont is a parsed font file, i.e. an outline font which may be
// prepared for concrete sizes.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
	mx       sync.Mutex // sfnt.Buffer usage is not thread-safe
	buf      sfnt.Buffer
}

// TypeCase is a scalable font prepared for a size and a resolution.
type TypeCase struct {
	scalableFontParent *ScalableFont
	face               xfont.Face // Go uses 'face' and 'font' in an inverse manner
	size               float64
	dpi                float64
}

// LoadOpenTypeFont loads and parses a TrueType or OpenType font file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses the bytes of a font file. The font's name is set
// to the full name from the font's name table.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font data")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	tracer().Debugf("parsed font %q with %d glyphs", f.Fontname, f.SFNT.NumGlyphs())
	return
}

// PrepareCase creates a typecase from a scalable font, for a given point size
// and resolution. Sizes must be within [MinSize…MaxSize].
func (sf *ScalableFont) PrepareCase(fontsize float64, dpi float64, hinting xfont.Hinting) (*TypeCase, error) {
	if math.IsNaN(fontsize) || fontsize < MinSize || fontsize > MaxSize {
		return nil, core.Error(core.EINVALID, "font size must be %g ≤ size ≤ %g, is %g",
			MinSize, MaxSize, fontsize)
	}
	if math.IsNaN(dpi) || dpi <= 0 {
		return nil, core.Error(core.EINVALID, "resolution must be positive, is %g", dpi)
	}
	options := &opentype.FaceOptions{
		Size:    fontsize,
		DPI:     dpi,
		Hinting: hinting,
	}
	f, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, core.WrapError(err, core.ERENDER, "cannot create face for %s at %gpt", sf.Fontname, fontsize)
	}
	return &TypeCase{
		scalableFontParent: sf,
		face:               f,
		size:               fontsize,
		dpi:                dpi,
	}, nil
}

// MissingGlyphs returns the runes of text which the font maps to the
// .notdef glyph. Whitespace other than U+0020 is ignored.
func (sf *ScalableFont) MissingGlyphs(text string) []rune {
	sf.mx.Lock()
	defer sf.mx.Unlock()
	var missing []rune
	seen := make(map[rune]bool)
	for _, r := range text {
		if r < ' ' || seen[r] {
			continue
		}
		seen[r] = true
		gid, err := sf.SFNT.GlyphIndex(&sf.buf, r)
		if err != nil || gid == 0 {
			missing = append(missing, r)
		}
	}
	return missing
}

// UnitsPerEm returns the design units per em of the font.
func (sf *ScalableFont) UnitsPerEm() int {
	return int(sf.SFNT.UnitsPerEm())
}

// Face returns the Go font face of a typecase.
func (tc *TypeCase) Face() xfont.Face {
	return tc.face
}

// ScalableFontParent returns the font a typecase has been derived from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// PtSize returns the size of the typecase in points.
func (tc *TypeCase) PtSize() float64 {
	return tc.size
}

// DPI returns the resolution the typecase has been prepared for.
func (tc *TypeCase) DPI() float64 {
	return tc.dpi
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
// Currently we use Go Sans.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	gofont, err := ParseOpenTypeFont(goregular.TTF)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	gofont.Fontname = "Go Sans"
	gofont.Filepath = "internal"
	return gofont
}
