package field

// Pose is a robot position with heading in radians, as reported by odometry.
type Pose struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
}

// Point drops the heading.
func (p Pose) Point() Point {
	return Point{X: p.X, Y: p.Y}
}

// IsFinite reports whether position and heading are all real numbers.
func (p Pose) IsFinite() bool {
	return p.Point().IsFinite() && finite(p.Heading)
}

// PoseAt places a pose at pt facing heading.
func PoseAt(pt Point, heading float64) Pose {
	return Pose{X: pt.X, Y: pt.Y, Heading: heading}
}
