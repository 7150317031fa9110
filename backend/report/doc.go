/*
Package report writes the results of a sweep: the image as a PNG file and,
optionally, an HTML page listing every line's bounding box and shaping
check next to the image.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package report

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontsweep.report'.
func tracer() tracing.Trace {
	return tracing.Select("fontsweep.report")
}
