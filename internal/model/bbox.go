package model

import "math"

// BBox is a page-relative rectangle in top-left origin coordinates:
// x grows rightward, y grows downward, so Top <= Bottom.
type BBox struct {
	X0     float64
	Top    float64
	X1     float64
	Bottom float64
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Bottom - b.Top
}

// IsEmpty reports whether the box has no area.
func (b BBox) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// ContainsBox reports whether inner lies within b, allowing up to tol points
// of overhang on every edge. Boundary ties count as inside, so a token
// straddling a table border is kept rather than silently lost.
func (b BBox) ContainsBox(inner BBox, tol float64) bool {
	return inner.X0 >= b.X0-tol &&
		inner.X1 <= b.X1+tol &&
		inner.Top >= b.Top-tol &&
		inner.Bottom <= b.Bottom+tol
}

// Union returns the smallest box covering both b and other.
func (b BBox) Union(other BBox) BBox {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	return BBox{
		X0:     math.Min(b.X0, other.X0),
		Top:    math.Min(b.Top, other.Top),
		X1:     math.Max(b.X1, other.X1),
		Bottom: math.Max(b.Bottom, other.Bottom),
	}
}

// Array returns the box as [x0, top, x1, bottom] for flat serialization.
func (b BBox) Array() [4]float64 {
	return [4]float64{b.X0, b.Top, b.X1, b.Bottom}
}
