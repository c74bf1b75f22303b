package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeam(t *testing.T) {
	unit := Rectangle{X: 0, Y: 0, Width: 1, Height: 1}

	tests := []struct {
		name   string
		l      Line
		shapes []Shape
		want   bool
	}{
		{
			name:   "vertical joint",
			l:      Line{Point{1, -1}, Point{1, 2}},
			shapes: []Shape{unit, Rectangle{X: 1, Y: 0, Width: 1, Height: 1}},
			want:   true,
		},
		{
			name:   "horizontal joint",
			l:      Line{Point{-1, 1}, Point{3, 1}},
			shapes: []Shape{unit, Rectangle{X: 0, Y: 1, Width: 1, Height: 1}},
			want:   true,
		},
		{
			name:   "joint shorter than either edge",
			l:      Line{Point{1, 5}, Point{1, -1}},
			shapes: []Shape{Rectangle{X: 0, Y: 0, Width: 1, Height: 3}, Rectangle{X: 1, Y: 2, Width: 1, Height: 4}},
			want:   true,
		},
		{
			name:   "joint inside a region",
			l:      Line{Point{1, -1}, Point{1, 2}},
			shapes: []Shape{NewRegion(unit), NewRegion(Rectangle{X: 1, Y: 0, Width: 1, Height: 1})},
			want:   true,
		},
		{
			name:   "both on the same side",
			l:      Line{Point{-1, 0}, Point{4, 0}},
			shapes: []Shape{Rectangle{X: 0, Y: 0, Width: 2, Height: 1}, Rectangle{X: 1, Y: 0, Width: 2, Height: 2}},
			want:   false,
		},
		{
			name:   "edges do not overlap",
			l:      Line{Point{1, -1}, Point{1, 3}},
			shapes: []Shape{unit, Rectangle{X: 1, Y: 1, Width: 1, Height: 1}},
			want:   false,
		},
		{
			name:   "stops before the joint",
			l:      Line{Point{1, -1}, Point{1, 0}},
			shapes: []Shape{unit, Rectangle{X: 1, Y: 0, Width: 1, Height: 1}},
			want:   false,
		},
		{
			name:   "diagonal",
			l:      Line{Point{0, 2}, Point{2, 0}},
			shapes: []Shape{unit, Rectangle{X: 1, Y: 1, Width: 1, Height: 1}},
			want:   false,
		},
		{
			name:   "single rectangle",
			l:      Line{Point{1, -1}, Point{1, 2}},
			shapes: []Shape{unit},
			want:   false,
		},
		{
			name:   "walls are ignored",
			l:      Line{Point{1, -1}, Point{1, 2}},
			shapes: []Shape{unit, Line{Point{1, 0}, Point{1, 1}}},
			want:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Seam(tt.l, tt.shapes...))
			reversed := Line{A: tt.l.B, B: tt.l.A}
			assert.Equal(t, tt.want, Seam(reversed, tt.shapes...), "reversed")
		})
	}
}
