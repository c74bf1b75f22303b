package field

import "math"

// edgeContact is the part of an axis-parallel segment that runs along one
// rectangle edge, as a parameter interval on the segment, together with the
// side of the segment the rectangle lies on.
type edgeContact struct {
	t0, t1 float64
	side   int
}

// Seam reports whether the segment runs, for a positive length, along an edge
// shared by two of the shapes lying on opposite sides of it. Such a segment
// never enters an open interior but still crosses the solid union, as when it
// follows the joint between two touching rectangles.
//
// Only rectangles (including Region members) take part. Walls already block
// any segment that touches them.
func Seam(l Line, shapes ...Shape) bool {
	vertical := l.A.X == l.B.X
	horizontal := l.A.Y == l.B.Y
	if vertical == horizontal {
		// Diagonal, or a single point.
		return false
	}

	var contacts []edgeContact
	for _, s := range shapes {
		for _, r := range rectangles(s) {
			if c, ok := r.edgeContact(l, vertical); ok {
				contacts = append(contacts, c)
			}
		}
	}
	for i, a := range contacts {
		for _, b := range contacts[i+1:] {
			if a.side != b.side && math.Max(a.t0, b.t0) < math.Min(a.t1, b.t1) {
				return true
			}
		}
	}
	return false
}

// edgeContact returns the stretch of an axis-parallel segment lying on one of
// the rectangle's edges parallel to it.
func (r Rectangle) edgeContact(l Line, vertical bool) (edgeContact, bool) {
	if r.Width <= 0 || r.Height <= 0 {
		return edgeContact{}, false
	}

	var (
		side       int
		lo, hi     float64
		from, span float64
	)
	if vertical {
		switch l.A.X {
		case r.X:
			side = 1
		case r.MaxX():
			side = -1
		default:
			return edgeContact{}, false
		}
		lo, hi = r.Y, r.MaxY()
		from, span = l.A.Y, l.B.Y-l.A.Y
	} else {
		switch l.A.Y {
		case r.Y:
			side = 1
		case r.MaxY():
			side = -1
		default:
			return edgeContact{}, false
		}
		lo, hi = r.X, r.MaxX()
		from, span = l.A.X, l.B.X-l.A.X
	}

	t0, t1 := (lo-from)/span, (hi-from)/span
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	t0, t1 = math.Max(t0, 0), math.Min(t1, 1)
	if t0 >= t1 {
		return edgeContact{}, false
	}
	return edgeContact{t0: t0, t1: t1, side: side}, true
}

// rectangles flattens a shape into its rectangle members.
func rectangles(s Shape) []Rectangle {
	switch s := s.(type) {
	case Rectangle:
		return []Rectangle{s}
	case Region:
		var out []Rectangle
		for _, m := range s.members {
			out = append(out, rectangles(m)...)
		}
		return out
	}
	return nil
}
