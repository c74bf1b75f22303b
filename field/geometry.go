package field

import (
	"math"

	"github.com/paulmach/orb"
)

// resolution is the grid mirrored coordinates are snapped to. Configured field
// constants carry at most nine decimals, so snapping keeps Flip an exact involution.
const resolution = 1e9

// Point is a field-relative position in meters. Points compare by value and are
// used directly as graph vertex keys.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Flip mirrors the point across the vertical line x = midline.
func (p Point) Flip(midline float64) Point {
	return Point{X: mirror(midline, p.X), Y: p.Y}
}

// IsFinite reports whether both coordinates are real numbers.
func (p Point) IsFinite() bool {
	return finite(p.X) && finite(p.Y)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Orb converts the point to its orb representation.
func (p Point) Orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

// Contains is always false: a point has no area.
func (p Point) Contains(Point) bool { return false }

// Intersects is always false: a point has no interior to cross.
func (p Point) Intersects(Line) bool { return false }

// Points returns the point itself.
func (p Point) Points() []Point { return []Point{p} }

// Expand turns the point into a square of half-size d. Non-positive d returns the point.
func (p Point) Expand(d float64) Shape {
	if d <= 0 {
		return p
	}
	return Rectangle{X: p.X - d, Y: p.Y - d, Width: 2 * d, Height: 2 * d}
}

// Bound returns the degenerate bound at the point.
func (p Point) Bound() orb.Bound {
	return p.Orb().Bound()
}

func (p Point) flip(midline float64) Shape { return p.Flip(midline) }

// FromOrb converts an orb point.
func FromOrb(p orb.Point) Point {
	return Point{X: p.X(), Y: p.Y()}
}

// Line is a segment between two points. It doubles as the query type for every
// Intersects test and as a thin wall obstacle.
type Line struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// At returns the point at parameter t along the segment, A at 0 and B at 1.
func (l Line) At(t float64) Point {
	return Point{X: l.A.X + (l.B.X-l.A.X)*t, Y: l.A.Y + (l.B.Y-l.A.Y)*t}
}

// Contains is always false.
func (l Line) Contains(Point) bool { return false }

// Intersects checks if two line segments intersect
func (l Line) Intersects(other Line) bool {
	p1, p2 := l.A, l.B
	p3, p4 := other.A, other.B

	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear and touching cases
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}

	return false
}

// Points returns both endpoints.
func (l Line) Points() []Point { return []Point{l.A, l.B} }

// Expand pads the segment's bounding box by d. Non-positive d returns the line.
func (l Line) Expand(d float64) Shape {
	if d <= 0 {
		return l
	}
	b := l.Bound().Pad(d)
	return rectFromBound(b)
}

// Bound returns the segment's bounding box.
func (l Line) Bound() orb.Bound {
	return l.A.Bound().Extend(l.B.Orb())
}

func (l Line) flip(midline float64) Shape {
	return Line{A: l.A.Flip(midline), B: l.B.Flip(midline)}
}

// direction calculates the cross product to determine orientation
func direction(p1, p2, p3 Point) float64 {
	return (p3.X-p1.X)*(p2.Y-p1.Y) - (p2.X-p1.X)*(p3.Y-p1.Y)
}

// onSegment checks if point q lies on segment pr
func onSegment(p, r, q Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

func mirror(midline, x float64) float64 {
	return math.Round((2*midline-x)*resolution) / resolution
}
