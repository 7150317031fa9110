/*
Package fontregistry manages a registry for loaded fonts and the typecases
derived from them.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontsweep.fonts'
func tracer() tracing.Trace {
	return tracing.Select("fontsweep.fonts")
}
