/*
Package resources resolves fonts for a sweep.

A font may be given as a path to a font file, as the name of one of the
packaged Go fonts, as the name of a font installed on the system, or as a
family name known to fontconfig. Resolving system fonts may take some time,
therefore

	ResolveFontAsync(…)

will return a promise, which the client will call later to receive the
loaded font. The call to the promise-function will then block until loading
has completed.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'fontsweep.resources'.
func tracer() tracing.Trace {
	return tracing.Select("fontsweep.resources")
}
