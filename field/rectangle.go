package field

import "github.com/paulmach/orb"

// Rectangle is an axis-aligned box anchored at its minimum corner.
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func rectFromBound(b orb.Bound) Rectangle {
	return Rectangle{X: b.Min.X(), Y: b.Min.Y(), Width: b.Max.X() - b.Min.X(), Height: b.Max.Y() - b.Min.Y()}
}

// MaxX is the right edge.
func (r Rectangle) MaxX() float64 { return r.X + r.Width }

// MaxY is the top edge.
func (r Rectangle) MaxY() float64 { return r.Y + r.Height }

// Points returns the corners counter-clockwise from the minimum corner.
func (r Rectangle) Points() []Point {
	return []Point{
		{X: r.X, Y: r.Y},
		{X: r.MaxX(), Y: r.Y},
		{X: r.MaxX(), Y: r.MaxY()},
		{X: r.X, Y: r.MaxY()},
	}
}

// Contains uses inclusive lower and exclusive upper bounds, so a zero-area
// rectangle contains nothing.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Intersects reports whether any part of the segment lies in the open interior.
// Segments that only touch a corner or slide along an edge do not intersect.
func (r Rectangle) Intersects(l Line) bool {
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}

	// Liang-Barsky clip of the segment against the closed rectangle.
	t0, t1 := 0.0, 1.0
	dx := l.B.X - l.A.X
	dy := l.B.Y - l.A.Y
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
		return true
	}
	if !clip(-dx, l.A.X-r.X) || !clip(dx, r.MaxX()-l.A.X) ||
		!clip(-dy, l.A.Y-r.Y) || !clip(dy, r.MaxY()-l.A.Y) {
		return false
	}

	// The clipped chord lies on an edge exactly when its midpoint does.
	return r.interior(l.At((t0 + t1) / 2))
}

func (r Rectangle) interior(p Point) bool {
	return p.X > r.X && p.X < r.MaxX() && p.Y > r.Y && p.Y < r.MaxY()
}

// Expand grows every side by d. Shrinking past zero collapses the affected
// dimension onto the centre line.
func (r Rectangle) Expand(d float64) Shape {
	return r.Grow(d)
}

// Grow is Expand with a concrete result type.
func (r Rectangle) Grow(d float64) Rectangle {
	out := Rectangle{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
	if out.Width < 0 {
		out.X = r.X + r.Width/2
		out.Width = 0
	}
	if out.Height < 0 {
		out.Y = r.Y + r.Height/2
		out.Height = 0
	}
	return out
}

// Flip mirrors the rectangle across x = midline: newX = 2*midline - width - x.
func (r Rectangle) Flip(midline float64) Rectangle {
	return Rectangle{X: mirror(midline, r.X+r.Width), Y: r.Y, Width: r.Width, Height: r.Height}
}

func (r Rectangle) flip(midline float64) Shape { return r.Flip(midline) }

// Bound returns the rectangle as an orb bound.
func (r Rectangle) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{r.X, r.Y},
		Max: orb.Point{r.MaxX(), r.MaxY()},
	}
}
