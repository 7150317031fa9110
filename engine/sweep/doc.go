/*
Package sweep renders a test string at a sequence of font sizes, one line
per size, into a single image.

Rasterization defects often show up at specific sizes only: glyphs may be
clipped, garbled or badly spaced at 9pt but fine at 8pt and 10pt. A sweep
makes these defects visible at a glance, and checks that every line's
bounding box stays within the image.

The image height is derived from the sizes: the cursor moves down by the
pixel size of the previous line plus a margin, or by the pixel size of the
next line if that is larger. Lines of fonts whose glyphs stay within the em
box therefore neither overlap nor leave the image, in any order of sizes.
Glyphs exceeding the em box are still detected and reported as clipped.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package sweep

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontsweep.sweep'.
func tracer() tracing.Trace {
	return tracing.Select("fontsweep.sweep")
}
