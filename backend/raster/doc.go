/*
Package raster draws a string of text at a given font size into an image.

Three rasterizers are available as backends:

  - "opentype": golang.org/x/image/font/opentype (the default)
  - "freetype": the Go port of FreeType, github.com/golang/freetype
  - "gg":       github.com/fogleman/gg, drawing with truetype faces

All backends share the same font data, thus a sweep may be repeated with a
different backend to tell regressions of a rasterizer from defects of a font.

Every draw call returns the bounding box of the text, as eight integers
denoting the corners lower-left, lower-right, upper-right and upper-left.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package raster

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontsweep.raster'.
func tracer() tracing.Trace {
	return tracing.Select("fontsweep.raster")
}
