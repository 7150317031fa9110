// Package dimen implements dimensions and units.
//
/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer (norbert@pillmayer.com)

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package dimen

import (
	"fmt"
	"math"
)

// Rasterizers (FreeType, x/image) use big points, i.e. 72 points per inch.
const PointsPerInch = 72.0

// DefaultDPI is the resolution at which one point equals one pixel.
const DefaultDPI = PointsPerInch

// DU is a font design unit, relative to the font's units per em.
type DU int32

// Stringer implementation.
func (du DU) String() string {
	return fmt.Sprintf("%ddu", int32(du))
}

// Pixels scales a design unit value to pixels, given the units per em of
// a font and the size of an em in pixels.
func (du DU) Pixels(unitsPerEm int, ppem float64) float64 {
	if unitsPerEm <= 0 {
		return 0
	}
	return float64(du) * ppem / float64(unitsPerEm)
}

// PixelSize returns the size of an em in pixels for a font size given in
// points, rendered at a resolution of dpi.
func PixelSize(pt, dpi float64) float64 {
	return pt * dpi / PointsPerInch
}

// CeilPixels is the smallest number of whole pixels an em of size pt at
// resolution dpi covers.
func CeilPixels(pt, dpi float64) int {
	return int(math.Ceil(PixelSize(pt, dpi) - 1e-9))
}
