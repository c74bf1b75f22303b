package planner

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"field-planner/field"
)

// boundTolerance pads every indexed box so zero-width shapes (points, axis-parallel
// lines) still have a valid rtreego rectangle and touching boxes overlap.
const boundTolerance = 1e-9

// indexEntry wraps a shape bound for R-tree storage
type indexEntry struct {
	id   int
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *indexEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// spatialIndex maps bounding boxes to the ids of the shapes or points they came from.
type spatialIndex struct {
	tree *rtreego.Rtree
	size int
}

func newSpatialIndex() *spatialIndex {
	return &spatialIndex{tree: rtreego.NewTree(2, 25, 50)} // 2D, min 25, max 50 entries per node
}

func (si *spatialIndex) insert(id int, b orb.Bound) error {
	rect, err := toRect(b)
	if err != nil {
		return errors.Wrapf(err, "index entry %d", id)
	}
	si.tree.Insert(&indexEntry{id: id, bbox: rect})
	si.size++
	return nil
}

// query returns the ids whose boxes overlap b, in ascending order. A bound the
// tree cannot represent is an error; callers must not read it as "no overlap".
func (si *spatialIndex) query(b orb.Bound) ([]int, error) {
	rect, err := toRect(b)
	if err != nil {
		return nil, err
	}
	if si.size == 0 {
		return nil, nil
	}

	results := si.tree.SearchIntersect(rect)
	ids := make([]int, 0, len(results))
	for _, item := range results {
		ids = append(ids, item.(*indexEntry).id)
	}
	sort.Ints(ids)
	return ids, nil
}

// nearest returns every id ordered by distance from p.
func (si *spatialIndex) nearest(p field.Point) []int {
	if si.size == 0 {
		return nil
	}
	results := si.tree.NearestNeighbors(si.size, rtreego.Point{p.X, p.Y})
	ids := make([]int, 0, len(results))
	for _, item := range results {
		if item == nil {
			continue
		}
		ids = append(ids, item.(*indexEntry).id)
	}
	return ids
}

// toRect converts an orb bound to a padded rtreego rectangle
func toRect(b orb.Bound) (rtreego.Rect, error) {
	for _, v := range []float64{b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y()} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return rtreego.Rect{}, errors.Errorf("non-finite bound %v", b)
		}
	}
	return rtreego.NewRect(
		rtreego.Point{b.Min.X() - boundTolerance, b.Min.Y() - boundTolerance},
		[]float64{
			b.Max.X() - b.Min.X() + 2*boundTolerance,
			b.Max.Y() - b.Min.Y() + 2*boundTolerance,
		},
	)
}
