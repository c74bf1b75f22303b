package field

import "github.com/pkg/errors"

// ErrEmptyLayout is returned by loaders that find no obstacles and no waypoints.
var ErrEmptyLayout = errors.New("field layout has no obstacles or waypoints")

// Layout is the static description of one season's field. It is built once at
// startup and handed to the planner by reference; nothing mutates it afterwards.
type Layout struct {
	Name string
	// Width runs along X, Height along Y. Zero means unbounded.
	Width     float64
	Height    float64
	Obstacles []Shape
	Waypoints []Point
	// Markings are display-only point sets; planning ignores them.
	Markings []Marking
}

// Marking is a named set of field points shown to the driver, such as the
// scoring nodes or a community outline.
type Marking struct {
	Name   string
	Points []Point
}

// Midline is the mirror axis x = Width/2.
func (l *Layout) Midline() float64 {
	return l.Width / 2
}

// Bounded reports whether the layout has a field boundary.
func (l *Layout) Bounded() bool {
	return l.Width > 0 && l.Height > 0
}

// Bounds returns the field rectangle.
func (l *Layout) Bounds() Rectangle {
	return Rectangle{Width: l.Width, Height: l.Height}
}

// InField reports whether p is on the field, edges included. Unbounded layouts
// accept every point.
func (l *Layout) InField(p Point) bool {
	if !l.Bounded() {
		return true
	}
	return p.X >= 0 && p.X <= l.Width && p.Y >= 0 && p.Y <= l.Height
}

// MirrorPoints returns pts followed by their mirrored twins.
func (l *Layout) MirrorPoints(pts ...Point) []Point {
	out := make([]Point, 0, 2*len(pts))
	out = append(out, pts...)
	for _, p := range pts {
		out = append(out, p.Flip(l.Midline()))
	}
	return out
}
