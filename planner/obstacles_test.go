package planner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-planner/field"
)

func TestNewObstacleSetRejects(t *testing.T) {
	_, err := NewObstacleSet([]field.Shape{square()}, -0.1)
	assert.Error(t, err)

	_, err = NewObstacleSet([]field.Shape{square(), nil}, 0)
	assert.ErrorContains(t, err, "obstacle 1")
}

func TestObstacleSetGrows(t *testing.T) {
	obs := mustObstacles(t, 0.5, square())
	require.Equal(t, 1, obs.Len())
	assert.Equal(t, 0.5, obs.Clearance())

	o := obs.Obstacles()[0]
	assert.Equal(t, field.Shape(square()), o.Footprint)
	assert.Equal(t, field.Shape(field.Rectangle{X: 1.5, Y: 1.5, Width: 3, Height: 3}), o.Grown)

	// In the margin only.
	p := field.Point{X: 1.8, Y: 3}
	assert.True(t, obs.IsBlocked(p))
	assert.False(t, square().Contains(p))
	assert.False(t, obs.IsBlocked(field.Point{X: 1.4, Y: 3}))

	assert.True(t, obs.Blocks(field.Line{A: field.Point{X: 1.6, Y: 0}, B: field.Point{X: 1.6, Y: 6}}))
	assert.False(t, obs.Blocks(field.Line{A: field.Point{X: 1.4, Y: 0}, B: field.Point{X: 1.4, Y: 6}}))
}

func TestAroundReducesContainingObstacles(t *testing.T) {
	left := field.Rectangle{X: 0, Y: 0, Width: 1, Height: 4}
	right := field.Rectangle{X: 1.6, Y: 0, Width: 1, Height: 4}
	far := field.Rectangle{X: 8, Y: 8, Width: 1, Height: 1}
	obs := mustObstacles(t, 0.4, left, right, far)

	// Flush between two walls: inside both margins.
	p := field.Point{X: 1.3, Y: 2}
	view := obs.Around(p)
	assert.Equal(t, []int{0, 1}, view.Reduced())
	assert.True(t, obs.IsBlocked(p))
	assert.False(t, view.IsBlocked(p))

	// Leaving along the gap is allowed under the reduced view only.
	exit := field.Line{A: p, B: field.Point{X: 1.3, Y: 6}}
	assert.True(t, obs.Blocks(exit))
	assert.False(t, view.Blocks(exit))

	// Reduced footprints still block.
	assert.True(t, view.Blocks(field.Line{A: p, B: field.Point{X: 3, Y: 2}}))

	assert.Empty(t, obs.Around(field.Point{X: 5, Y: 5}).Reduced())
	assert.Empty(t, obs.View().Reduced())
}

func TestCorners(t *testing.T) {
	obs := mustObstacles(t, 0, square(), field.Rectangle{X: 4, Y: 2, Width: 1, Height: 1})

	want := []field.Point{
		{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 4}, {X: 2, Y: 4},
		{X: 5, Y: 2}, {X: 5, Y: 3}, {X: 4, Y: 3},
	}
	if diff := cmp.Diff(want, obs.Corners(0)); diff != "" {
		t.Errorf("Corners(0) mismatch (-want +got):\n%s", diff)
	}

	// The top-left corner of the small box falls inside the square.
	ws, err := NewWaypointSet(&field.Layout{}, obs, 0.1)
	require.NoError(t, err)
	assert.Len(t, obs.Corners(0.1), 8)
	assert.Equal(t, 7, ws.Len())
}

func TestWaypointSetFilters(t *testing.T) {
	layout := &field.Layout{
		Width:     10,
		Height:    10,
		Obstacles: []field.Shape{square()},
		Waypoints: []field.Point{
			{X: 1, Y: 1},
			{X: 2.2, Y: 2.2}, // inside the margin
			{X: 11, Y: 1},    // off the field
			{X: 1, Y: 1},
			{X: 10, Y: 10},
		},
	}
	obs := mustObstacles(t, 0.5, layout.Obstacles...)

	ws, err := NewWaypointSet(layout, obs, 0)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff([]field.Point{{X: 1, Y: 1}, {X: 10, Y: 10}}, ws.Points()))

	ws, err = NewWaypointSet(layout, obs, 0.25)
	require.NoError(t, err)
	assert.Equal(t, 6, ws.Len())
	for _, p := range ws.Points() {
		assert.True(t, layout.InField(p))
		assert.False(t, obs.IsBlocked(p))
	}
}

func TestWaypointSetEmpty(t *testing.T) {
	layout := &field.Layout{
		Width:     4,
		Height:    4,
		Obstacles: []field.Shape{field.Rectangle{X: -1, Y: -1, Width: 6, Height: 6}},
		Waypoints: []field.Point{{X: 1, Y: 1}},
	}
	obs := mustObstacles(t, 0, layout.Obstacles...)
	ws, err := NewWaypointSet(layout, obs, 0.1)
	require.NoError(t, err)
	assert.Zero(t, ws.Len())

	_, ok := ws.Nearest(field.Point{X: 2, Y: 2}, obs.View())
	assert.False(t, ok)
}

func TestWaypointSetNearestVisible(t *testing.T) {
	wall := field.Rectangle{X: 1.5, Y: 0, Width: 0.5, Height: 10}
	layout := &field.Layout{
		Waypoints: []field.Point{{X: 1, Y: 1}, {X: 9, Y: 9}, {X: 3.5, Y: 3.5}},
	}
	ws, err := NewWaypointSet(layout, mustObstacles(t, 0), 0)
	require.NoError(t, err)

	p := field.Point{X: 3, Y: 3}
	nearest, ok := ws.Nearest(p, mustObstacles(t, 0).View())
	require.True(t, ok)
	assert.Equal(t, field.Point{X: 3.5, Y: 3.5}, nearest)

	onlyFar := &field.Layout{Waypoints: []field.Point{{X: 1, Y: 1}, {X: 9, Y: 9}}}
	obs := mustObstacles(t, 0, wall)
	ws, err = NewWaypointSet(onlyFar, obs, 0)
	require.NoError(t, err)
	nearest, ok = ws.Nearest(p, obs.View())
	require.True(t, ok)
	assert.Equal(t, field.Point{X: 9, Y: 9}, nearest)
}
