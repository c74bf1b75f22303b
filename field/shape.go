package field

import "github.com/paulmach/orb"

// Shape is the capability set shared by every piece of field geometry. The set of
// implementations is closed: Point, Line, Rectangle and Region.
type Shape interface {
	// Contains reports whether p lies inside the shape's area.
	Contains(p Point) bool
	// Intersects reports whether the segment passes through the shape.
	Intersects(l Line) bool
	// Points returns the shape's corner points without duplicates.
	Points() []Point
	// Expand grows (d > 0) or shrinks (d < 0) the shape on every side.
	Expand(d float64) Shape
	// Bound is the axis-aligned bounding box.
	Bound() orb.Bound

	flip(midline float64) Shape
}

// Flip returns the alliance-mirrored twin of s across x = midline.
func Flip(s Shape, midline float64) Shape {
	return s.flip(midline)
}

// Region is a union of shapes. Boolean predicates hold when any member holds.
type Region struct {
	members []Shape
}

// NewRegion builds a region from its members.
func NewRegion(members ...Shape) Region {
	return Region{members: append([]Shape(nil), members...)}
}

// Members returns a copy of the member shapes.
func (r Region) Members() []Shape {
	return append([]Shape(nil), r.members...)
}

func (r Region) Contains(p Point) bool {
	for _, m := range r.members {
		if m.Contains(p) {
			return true
		}
	}
	return false
}

// Intersects holds when any member is crossed, or when the segment follows the
// joint between two touching members.
func (r Region) Intersects(l Line) bool {
	for _, m := range r.members {
		if m.Intersects(l) {
			return true
		}
	}
	return Seam(l, r.members...)
}

// Points returns the union of member corners in first-seen order.
func (r Region) Points() []Point {
	seen := make(map[Point]bool)
	var points []Point
	for _, m := range r.members {
		for _, p := range m.Points() {
			if seen[p] {
				continue
			}
			seen[p] = true
			points = append(points, p)
		}
	}
	return points
}

func (r Region) Expand(d float64) Shape {
	expanded := make([]Shape, len(r.members))
	for i, m := range r.members {
		expanded[i] = m.Expand(d)
	}
	return Region{members: expanded}
}

// Bound is the union of member bounds. An empty region has an empty bound at the origin.
func (r Region) Bound() orb.Bound {
	if len(r.members) == 0 {
		return orb.Bound{}
	}
	b := r.members[0].Bound()
	for _, m := range r.members[1:] {
		b = b.Union(m.Bound())
	}
	return b
}

func (r Region) flip(midline float64) Shape {
	flipped := make([]Shape, len(r.members))
	for i, m := range r.members {
		flipped[i] = m.flip(midline)
	}
	return Region{members: flipped}
}
