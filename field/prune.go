package field

import "github.com/paulmach/orb"

// RemoveContained drops every shape that lies entirely inside a rectangle
// obstacle of the same list. Of two identical rectangles the first is kept.
// Order is otherwise preserved.
func RemoveContained(shapes []Shape) []Shape {
	if len(shapes) <= 1 {
		return shapes
	}

	bounds := make([]orb.Bound, len(shapes))
	for i, s := range shapes {
		bounds[i] = s.Bound()
	}

	contained := make([]bool, len(shapes))
	for i := range shapes {
		for j, outer := range shapes {
			if i == j || contained[j] {
				continue
			}
			r, ok := outer.(Rectangle)
			if !ok || !boundWithin(bounds[i], r) {
				continue
			}
			// Mutual containment means equal bounds; the earlier one survives.
			if bounds[i] == bounds[j] && j > i {
				continue
			}
			contained[i] = true
			break
		}
	}

	out := make([]Shape, 0, len(shapes))
	for i, s := range shapes {
		if !contained[i] {
			out = append(out, s)
		}
	}
	return out
}

func boundWithin(b orb.Bound, r Rectangle) bool {
	return b.Min.X() >= r.X && b.Max.X() <= r.MaxX() &&
		b.Min.Y() >= r.Y && b.Max.Y() <= r.MaxY()
}
