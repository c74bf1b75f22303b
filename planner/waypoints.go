package planner

import (
	"slices"

	"field-planner/field"
)

// WaypointSet holds the navigable points that survive startup filtering. It is
// immutable once built.
type WaypointSet struct {
	points []field.Point
	index  *spatialIndex
}

// NewWaypointSet takes the layout's configured waypoints followed, when
// cornerOffset is positive, by the corners of every grown obstacle pushed out by
// cornerOffset. Duplicates, points inside an obstacle margin and points off the
// field are dropped.
func NewWaypointSet(layout *field.Layout, obstacles *ObstacleSet, cornerOffset float64) (*WaypointSet, error) {
	candidates := slices.Clone(layout.Waypoints)
	if cornerOffset > 0 {
		candidates = append(candidates, obstacles.Corners(cornerOffset)...)
	}

	ws := &WaypointSet{index: newSpatialIndex()}
	seen := make(map[field.Point]bool, len(candidates))
	for _, p := range candidates {
		if seen[p] {
			continue
		}
		seen[p] = true
		if !layout.InField(p) || obstacles.IsBlocked(p) {
			continue
		}
		if err := ws.index.insert(len(ws.points), p.Bound()); err != nil {
			return nil, err
		}
		ws.points = append(ws.points, p)
	}
	return ws, nil
}

// Len returns the number of retained waypoints.
func (ws *WaypointSet) Len() int { return len(ws.points) }

// Points returns a copy of the retained waypoints in set order.
func (ws *WaypointSet) Points() []field.Point {
	return slices.Clone(ws.points)
}

// Nearest returns the closest waypoint that p can see under view.
func (ws *WaypointSet) Nearest(p field.Point, view ObstacleView) (field.Point, bool) {
	for _, id := range ws.index.nearest(p) {
		w := ws.points[id]
		if !view.Blocks(field.Line{A: p, B: w}) {
			return w, true
		}
	}
	return field.Point{}, false
}
