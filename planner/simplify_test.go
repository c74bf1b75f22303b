package planner

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"field-planner/field"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		name      string
		obstacles []field.Shape
		path      []field.Point
		want      []field.Point
	}{
		{
			name: "empty",
		},
		{
			name: "single",
			path: []field.Point{{X: 1, Y: 1}},
			want: []field.Point{{X: 1, Y: 1}},
		},
		{
			name: "two points untouched",
			path: []field.Point{{X: 0, Y: 0}, {X: 9, Y: 9}},
			want: []field.Point{{X: 0, Y: 0}, {X: 9, Y: 9}},
		},
		{
			name: "collinear collapses",
			path: []field.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 3}},
			want: []field.Point{{X: 0, Y: 0}, {X: 3, Y: 3}},
		},
		{
			name:      "corner kept",
			obstacles: []field.Shape{field.Rectangle{X: 1, Y: 1, Width: 1, Height: 1}},
			path:      []field.Point{{X: 0, Y: 0}, {X: 0, Y: 2.5}, {X: 2.5, Y: 2.5}},
			want:      []field.Point{{X: 0, Y: 0}, {X: 0, Y: 2.5}, {X: 2.5, Y: 2.5}},
		},
		{
			name:      "detour shortened",
			obstacles: []field.Shape{field.Rectangle{X: 1, Y: 1, Width: 1, Height: 1}},
			path: []field.Point{
				{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2.5}, {X: 1, Y: 2.5}, {X: 2.5, Y: 2.5},
			},
			want: []field.Point{{X: 0, Y: 0}, {X: 1, Y: 2.5}, {X: 2.5, Y: 2.5}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := mustObstacles(t, 0, tt.obstacles...)
			got := Simplify(tt.path, obs)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Simplify mismatch (-want +got):\n%s", diff)
			}
			assert.LessOrEqual(t, Length(got), Length(tt.path)+1e-9)
		})
	}
}

func TestSimplifyDoesNotModifyInput(t *testing.T) {
	path := []field.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	orig := append([]field.Point(nil), path...)
	Simplify(path, mustObstacles(t, 0))
	assert.Equal(t, orig, path)
}

func TestLength(t *testing.T) {
	assert.Zero(t, Length(nil))
	assert.Zero(t, Length([]field.Point{{X: 1, Y: 1}}))
	assert.InDelta(t, 5.0, Length([]field.Point{{X: 0, Y: 0}, {X: 3, Y: 4}}), 1e-12)
	assert.InDelta(t, 2+math.Sqrt2, Length([]field.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 1}}), 1e-12)
}
