package planner

import (
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"field-planner/field"
)

// Simplify pulls the string tight on a raw search path: walking forward from
// each kept point, it drops the next point while the one after it is directly
// visible. It makes a single forward pass, so the result is not guaranteed to be
// minimal, but it never removes an endpoint, never adds a point and never makes
// the path longer.
func Simplify(path []field.Point, obstacles *ObstacleSet) []field.Point {
	out := slices.Clone(path)
	for i := 0; i+2 < len(out); {
		if obstacles.Around(out[i]).Blocks(field.Line{A: out[i], B: out[i+2]}) {
			i++
			continue
		}
		out = slices.Delete(out, i+1, i+2)
	}
	return out
}

// Length returns the total length of a polyline.
func Length(path []field.Point) float64 {
	ls := make(orb.LineString, len(path))
	for i, p := range path {
		ls[i] = p.Orb()
	}
	return planar.Length(ls)
}
