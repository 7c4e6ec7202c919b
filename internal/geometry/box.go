// Package geometry provides the bounding-box math shared by the template
// matcher and the UI element detectors.
//
// Overlap, containment and IoU checks appear in several suppression and
// deduplication passes; keeping them in one place guarantees that every
// call site breaks ties the same way.
package geometry

// Box is an axis-aligned rectangle in pixel coordinates.
//
// (X, Y) is the top-left corner; Width and Height are extents in pixels.
// A well-formed box has Width > 0 and Height > 0. Degenerate boxes are
// tolerated by all methods and behave as empty (zero area, zero overlap).
type Box struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Area returns the box area in square pixels, or 0 for degenerate boxes.
func (b Box) Area() int {
	if b.Width <= 0 || b.Height <= 0 {
		return 0
	}
	return b.Width * b.Height
}

// CenterX returns the horizontal center using integer pixel coordinates.
func (b Box) CenterX() int { return b.X + b.Width/2 }

// CenterY returns the vertical center using integer pixel coordinates.
func (b Box) CenterY() int { return b.Y + b.Height/2 }

// Intersection returns the area of overlap between b and o in square pixels.
func (b Box) Intersection(o Box) int {
	x1 := max(b.X, o.X)
	y1 := max(b.Y, o.Y)
	x2 := min(b.X+b.Width, o.X+o.Width)
	y2 := min(b.Y+b.Height, o.Y+o.Height)

	if x2 <= x1 || y2 <= y1 {
		return 0
	}
	return (x2 - x1) * (y2 - y1)
}

// Union returns the area covered by b or o (inclusion-exclusion).
func (b Box) Union(o Box) int {
	return b.Area() + o.Area() - b.Intersection(o)
}

// IoU returns the intersection-over-union of the two boxes in [0, 1].
// Returns 0 when the union is empty.
func (b Box) IoU(o Box) float64 {
	union := b.Union(o)
	if union <= 0 {
		return 0
	}
	return float64(b.Intersection(o)) / float64(union)
}

// OverlapRatio returns the intersection area divided by the smaller of the
// two box areas. This is the metric used when a large element swallowing a
// small one should count as full overlap. Returns 0 when either box is empty.
func (b Box) OverlapRatio(o Box) float64 {
	smaller := min(b.Area(), o.Area())
	if smaller <= 0 {
		return 0
	}
	return float64(b.Intersection(o)) / float64(smaller)
}

// Contains reports whether o lies fully inside b (edges may touch).
func (b Box) Contains(o Box) bool {
	return o.X >= b.X && o.Y >= b.Y &&
		o.X+o.Width <= b.X+b.Width &&
		o.Y+o.Height <= b.Y+b.Height
}
