package field

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectangleContains(t *testing.T) {
	r := Rectangle{X: 2, Y: 2, Width: 2, Height: 2}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"centre", Point{3, 3}, true},
		{"lower corner inclusive", Point{2, 2}, true},
		{"lower edge inclusive", Point{3, 2}, true},
		{"upper edge exclusive", Point{3, 4}, false},
		{"right edge exclusive", Point{4, 3}, false},
		{"outside", Point{0, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.p))
		})
	}
}

func TestRectangleIntersects(t *testing.T) {
	r := Rectangle{X: 2, Y: 2, Width: 2, Height: 2}

	tests := []struct {
		name string
		l    Line
		want bool
	}{
		{"diagonal through", Line{Point{0, 0}, Point{5, 5}}, true},
		{"horizontal through", Line{Point{0, 3}, Point{5, 3}}, true},
		{"ends inside", Line{Point{0, 3}, Point{3, 3}}, true},
		{"wholly inside", Line{Point{2.5, 2.5}, Point{3.5, 3.5}}, true},
		{"misses below", Line{Point{0, 1}, Point{5, 1.5}}, false},
		{"along bottom edge", Line{Point{0, 2}, Point{5, 2}}, false},
		{"along left edge", Line{Point{2, 0}, Point{2, 5}}, false},
		{"touches corner", Line{Point{0, 4}, Point{4, 0}}, false},
		{"stops short", Line{Point{0, 3}, Point{1.9, 3}}, false},
		{"degenerate inside", Line{Point{3, 3}, Point{3, 3}}, true},
		{"degenerate on edge", Line{Point{2, 3}, Point{2, 3}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Intersects(tt.l))
			reversed := Line{A: tt.l.B, B: tt.l.A}
			assert.Equal(t, tt.want, r.Intersects(reversed), "reversed")
		})
	}
}

func TestZeroAreaRectangle(t *testing.T) {
	r := Rectangle{X: 1, Y: 1}
	assert.False(t, r.Contains(Point{1, 1}))
	assert.False(t, r.Intersects(Line{Point{0, 0}, Point{2, 2}}))
	assert.Len(t, r.Points(), 4)
}

func TestRectangleExpand(t *testing.T) {
	r := Rectangle{X: 2, Y: 2, Width: 2, Height: 2}

	assert.Equal(t, Rectangle{X: 1.5, Y: 1.5, Width: 3, Height: 3}, r.Expand(0.5))
	assert.Equal(t, Rectangle{X: 2.5, Y: 2.5, Width: 1, Height: 1}, r.Expand(-0.5))
	assert.Equal(t, Rectangle{X: 3, Y: 3, Width: 0, Height: 0}, r.Expand(-5))
	assert.Equal(t, r, r.Grow(0.25).Grow(-0.25))
}

func TestContainmentMonotonicity(t *testing.T) {
	r := Rectangle{X: 2.9, Y: 1.5182, Width: 1.95, Height: 2.47}
	inside := []Point{{2.9, 1.5182}, {3.5, 2}, {4.8, 3.9}}
	for _, p := range inside {
		require.True(t, r.Contains(p), "%v", p)
		for _, d := range []float64{0, 0.01, 0.25, 0.5, 1, 10} {
			assert.True(t, r.Expand(d).Contains(p), "%v expanded by %v", p, d)
		}
	}
}

func TestMirrorInvolution(t *testing.T) {
	l := ChargedUp2023()
	mid := l.Midline()

	for _, p := range l.Waypoints {
		assert.Equal(t, p, p.Flip(mid).Flip(mid))
	}
	for _, o := range l.Obstacles {
		assert.Equal(t, o, Flip(Flip(o, mid), mid))
	}
	cs := ChargeStation(Blue)
	assert.Equal(t, cs, cs.Flip(mid).Flip(mid))
}

func TestRectangleFlip(t *testing.T) {
	r := Rectangle{X: 1, Y: 3, Width: 2, Height: 1}
	got := r.Flip(5)
	assert.Equal(t, Rectangle{X: 7, Y: 3, Width: 2, Height: 1}, got)
	assert.Equal(t, Point{9, 3}, Point{1, 3}.Flip(5))
}

func TestLineIntersects(t *testing.T) {
	a := Line{Point{0, 0}, Point{4, 4}}
	assert.True(t, a.Intersects(Line{Point{0, 4}, Point{4, 0}}))
	assert.True(t, a.Intersects(Line{Point{2, 2}, Point{6, 0}}), "touching endpoint")
	assert.False(t, a.Intersects(Line{Point{0, 1}, Point{3, 4}}), "parallel")
	assert.False(t, a.Contains(Point{1, 1}))
	assert.Equal(t, Rectangle{X: -1, Y: -1, Width: 6, Height: 6}, a.Expand(1))
}

func TestRegion(t *testing.T) {
	left := Rectangle{X: 0, Y: 0, Width: 1, Height: 1}
	right := Rectangle{X: 1, Y: 0, Width: 1, Height: 1}
	r := NewRegion(left, right)

	assert.True(t, r.Contains(Point{0.5, 0.5}))
	assert.True(t, r.Contains(Point{1.5, 0.5}))
	assert.False(t, r.Contains(Point{2.5, 0.5}))
	assert.True(t, r.Intersects(Line{Point{1.5, -1}, Point{1.5, 2}}))
	assert.False(t, r.Intersects(Line{Point{-1, 2}, Point{3, 2}}))
	// The joint between the members is solid; the outer edges are not.
	assert.True(t, r.Intersects(Line{Point{1, -1}, Point{1, 2}}), "along the joint")
	assert.True(t, r.Intersects(Line{Point{1, 0.5}, Point{1, 0.25}}), "inside the joint")
	assert.False(t, r.Intersects(Line{Point{2, -1}, Point{2, 2}}), "along the right edge")
	assert.False(t, r.Intersects(Line{Point{-1, 0}, Point{3, 0}}), "along the bottom edge")

	want := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {2, 0}, {2, 1}}
	if diff := cmp.Diff(want, r.Points()); diff != "" {
		t.Errorf("Points() mismatch (-want +got):\n%s", diff)
	}

	grown := r.Expand(0.5).(Region)
	assert.True(t, grown.Contains(Point{-0.25, -0.25}))
	assert.Equal(t, -0.5, grown.Bound().Min.X())
	assert.Equal(t, 2.5, grown.Bound().Max.X())
}

func TestPointShape(t *testing.T) {
	p := Point{1, 1}
	assert.False(t, p.Contains(p))
	assert.False(t, p.Intersects(Line{Point{0, 0}, Point{2, 2}}))
	assert.Equal(t, p, p.Expand(0))
	assert.Equal(t, Rectangle{X: 0.5, Y: 0.5, Width: 1, Height: 1}, p.Expand(0.5))
	assert.InDelta(t, 5.0, Point{0, 0}.Distance(Point{3, 4}), 1e-12)
}
