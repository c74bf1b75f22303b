package planner

import (
	"slices"

	"github.com/pkg/errors"

	"field-planner/field"
)

// Obstacle is a forbidden region kept in two forms: the true footprint and the
// footprint grown by the clearance tolerance, which is what collision tests use.
type Obstacle struct {
	Footprint field.Shape
	Grown     field.Shape
}

// ObstacleSet is the immutable set of forbidden regions for one field layout.
type ObstacleSet struct {
	obstacles []Obstacle
	clearance float64
	index     *spatialIndex
}

// NewObstacleSet grows every shape by clearance and indexes the result.
func NewObstacleSet(shapes []field.Shape, clearance float64) (*ObstacleSet, error) {
	if clearance < 0 {
		return nil, errors.Errorf("clearance must be non-negative, got %v", clearance)
	}
	s := &ObstacleSet{
		obstacles: make([]Obstacle, 0, len(shapes)),
		clearance: clearance,
		index:     newSpatialIndex(),
	}
	for i, shape := range shapes {
		if shape == nil {
			return nil, errors.Errorf("obstacle %d is nil", i)
		}
		o := Obstacle{Footprint: shape, Grown: shape.Expand(clearance)}
		if err := s.index.insert(i, o.Grown.Bound()); err != nil {
			return nil, err
		}
		s.obstacles = append(s.obstacles, o)
	}
	return s, nil
}

// Len returns the number of obstacles.
func (s *ObstacleSet) Len() int { return len(s.obstacles) }

// Clearance returns the margin the obstacles were grown by.
func (s *ObstacleSet) Clearance() float64 { return s.clearance }

// Obstacles returns a copy of the obstacle list.
func (s *ObstacleSet) Obstacles() []Obstacle {
	return slices.Clone(s.obstacles)
}

// IsBlocked reports whether p lies inside any grown obstacle.
func (s *ObstacleSet) IsBlocked(p field.Point) bool {
	return s.View().IsBlocked(p)
}

// Blocks reports whether the segment passes through any grown obstacle.
func (s *ObstacleSet) Blocks(l field.Line) bool {
	return s.View().Blocks(l)
}

// View returns the unmodified obstacle view.
func (s *ObstacleSet) View() ObstacleView {
	return ObstacleView{set: s}
}

// Around returns a view in which every obstacle whose margin contains p is
// replaced by its true footprint. A point that starts flush against a wall sits
// inside that wall's margin; without this it could never leave. The view is
// only valid for tests local to p and must not be kept.
func (s *ObstacleSet) Around(p field.Point) ObstacleView {
	v := ObstacleView{set: s}
	ids, _ := s.index.query(p.Bound())
	for _, id := range ids {
		if s.obstacles[id].Grown.Contains(p) {
			v.reduced = append(v.reduced, id)
		}
	}
	return v
}

// Corners returns the corner points of every grown obstacle pushed a further
// offset outwards, in obstacle order without duplicates.
func (s *ObstacleSet) Corners(offset float64) []field.Point {
	seen := make(map[field.Point]bool)
	var corners []field.Point
	for _, o := range s.obstacles {
		for _, c := range o.Grown.Expand(offset).Points() {
			if seen[c] {
				continue
			}
			seen[c] = true
			corners = append(corners, c)
		}
	}
	return corners
}

// ObstacleView answers blocking queries against an obstacle set, optionally with
// some obstacles reduced to their footprint.
type ObstacleView struct {
	set     *ObstacleSet
	reduced []int
}

// Reduced returns the ids of obstacles shrunk to their footprint in this view.
func (v ObstacleView) Reduced() []int {
	return slices.Clone(v.reduced)
}

func (v ObstacleView) shape(id int) field.Shape {
	if slices.Contains(v.reduced, id) {
		return v.set.obstacles[id].Footprint
	}
	return v.set.obstacles[id].Grown
}

// IsBlocked reports whether p lies inside any obstacle of the view. A point
// that cannot be located, such as one with a NaN coordinate, is blocked.
func (v ObstacleView) IsBlocked(p field.Point) bool {
	ids, err := v.set.index.query(p.Bound())
	if err != nil {
		return true
	}
	for _, id := range ids {
		if v.shape(id).Contains(p) {
			return true
		}
	}
	return false
}

// Blocks reports whether the segment passes through any obstacle of the view,
// including along the joint between two touching obstacles. Segments with a
// non-finite end are always blocked.
func (v ObstacleView) Blocks(l field.Line) bool {
	ids, err := v.set.index.query(l.Bound())
	if err != nil {
		return true
	}
	shapes := make([]field.Shape, 0, len(ids))
	for _, id := range ids {
		s := v.shape(id)
		if s.Intersects(l) {
			return true
		}
		shapes = append(shapes, s)
	}
	return field.Seam(l, shapes...)
}
