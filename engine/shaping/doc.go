/*
Package shaping cross-checks rendered text against the advances HarfBuzz
computes for it.

A rasterizer which mis-applies glyph metrics at some size produces text
which is too wide or too narrow for that size. Package shaping shapes the
test string with the Go port of HarfBuzz, scales the result to the size
in question and compares it with the bounding box a rasterizer reported.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package shaping

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontsweep.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("fontsweep.glyphs")
}
