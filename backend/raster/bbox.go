package raster

import (
	"fmt"
	"image"

	"golang.org/x/image/math/fixed"
)

// BBox is the bounding box of a rendered string, as pixel coordinates of
// its corners: lower-left, lower-right, upper-right, upper-left (x,y each).
type BBox [8]int

// BBoxFromRect creates a bounding box from an (axis-aligned) rectangle.
func BBoxFromRect(r image.Rectangle) BBox {
	return BBox{
		r.Min.X, r.Max.Y, // lower left
		r.Max.X, r.Max.Y, // lower right
		r.Max.X, r.Min.Y, // upper right
		r.Min.X, r.Min.Y, // upper left
	}
}

// bboxFromFixed rounds the bounds of a string outwards to whole pixels and
// translates them to dot.
func bboxFromFixed(bounds fixed.Rectangle26_6, dot image.Point) BBox {
	r := image.Rect(
		bounds.Min.X.Floor(), bounds.Min.Y.Floor(),
		bounds.Max.X.Ceil(), bounds.Max.Y.Ceil(),
	)
	return BBoxFromRect(r.Add(dot))
}

// LowerLeft returns the lower left corner.
func (bb BBox) LowerLeft() image.Point { return image.Pt(bb[0], bb[1]) }

// LowerRight returns the lower right corner.
func (bb BBox) LowerRight() image.Point { return image.Pt(bb[2], bb[3]) }

// UpperRight returns the upper right corner.
func (bb BBox) UpperRight() image.Point { return image.Pt(bb[4], bb[5]) }

// UpperLeft returns the upper left corner.
func (bb BBox) UpperLeft() image.Point { return image.Pt(bb[6], bb[7]) }

// Rect returns the smallest rectangle containing all four corners.
func (bb BBox) Rect() image.Rectangle {
	r := image.Rectangle{Min: bb.LowerLeft(), Max: bb.LowerLeft()}
	for _, p := range []image.Point{bb.LowerRight(), bb.UpperRight(), bb.UpperLeft()} {
		r.Min.X, r.Min.Y = min(r.Min.X, p.X), min(r.Min.Y, p.Y)
		r.Max.X, r.Max.Y = max(r.Max.X, p.X), max(r.Max.Y, p.Y)
	}
	return r
}

// Width is the horizontal extent of the box in pixels.
func (bb BBox) Width() int {
	return bb.Rect().Dx()
}

// In reports whether the box lies completely within r.
func (bb BBox) In(r image.Rectangle) bool {
	box := bb.Rect()
	if box.Empty() {
		return box.Min.In(r)
	}
	return box.In(r)
}

func (bb BBox) String() string {
	return fmt.Sprintf("[%d,%d %d,%d %d,%d %d,%d]", bb[0], bb[1], bb[2], bb[3], bb[4], bb[5], bb[6], bb[7])
}
