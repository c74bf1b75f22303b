package field

// 2023 field dimensions in meters.
const (
	ChargedUpHeight  = 8.0137
	ChargedUpWidth   = 16.54175
	ChargedUpMidline = ChargedUpWidth / 2
)

const (
	nodeSpacingHorizontal = 0.5576
	nodeSpacingVertical   = 0.4328
)

// Alliance selects which side of the field a piece of geometry belongs to.
type Alliance int

const (
	Blue Alliance = iota
	Red
)

func (a Alliance) String() string {
	if a == Red {
		return "red"
	}
	return "blue"
}

var (
	redLoadingZone = NewRegion(
		Rectangle{X: 0.0, Y: 6.75, Width: 6.71, Height: 1.265},
		Rectangle{X: 0.0, Y: 6.75 - 1.24, Width: 3.36, Height: 1.24},
	)
	blueChargeStation = Rectangle{X: 2.9, Y: ChargedUpHeight - 6.4955, Width: 1.95, Height: 2.47}
	blueCommunity     = NewRegion(
		Rectangle{X: 1.37, Y: ChargedUpHeight - 3.98, Width: 1.985, Height: 1.475},
		Rectangle{X: 1.37, Y: 0.0, Width: 3.54, Height: 4.0337},
	)
	blueStagingMarkers = []Point{
		{X: 7.0775, Y: ChargedUpHeight - 7.085},
		{X: 7.0775, Y: ChargedUpHeight - 5.862},
		{X: 7.0775, Y: ChargedUpHeight - 4.6396},
		{X: 7.0775, Y: ChargedUpHeight - 3.4219},
	}
	// Open lanes around the blue charge station.
	blueLanes = []Point{
		{X: 2.0, Y: 4.75},
		{X: 5.5, Y: 4.75},
		{X: 5.5, Y: 0.75},
		{X: 2.0, Y: 0.75},
	}
	blueGridCorners = []Point{
		{X: 0.3657, Y: ChargedUpHeight - 7.5033},
		{X: 0.3657, Y: ChargedUpHeight - 5.8233},
		{X: 0.3657, Y: ChargedUpHeight - 4.1503},
	}
)

// ChargedUp2023 returns the 2023 layout: both loading zones and both charge
// stations are obstacles; staging markers and lane points are waypoints. The
// loading zones, charge stations, communities, staging markers and scoring
// nodes are also published as markings.
func ChargedUp2023() *Layout {
	l := &Layout{
		Name:   "charged-up-2023",
		Width:  ChargedUpWidth,
		Height: ChargedUpHeight,
	}
	l.Obstacles = []Shape{
		redLoadingZone,
		blueChargeStation,
		Flip(redLoadingZone, l.Midline()),
		blueChargeStation.Flip(l.Midline()),
	}
	l.Waypoints = append(l.MirrorPoints(blueStagingMarkers...), l.MirrorPoints(blueLanes...)...)
	l.Markings = chargedUpMarkings(l)
	return l
}

func chargedUpMarkings(l *Layout) []Marking {
	nodes := append(GridNodes(Red), GridNodes(Blue)...)
	return []Marking{
		{Name: "Red Loading Zone", Points: redLoadingZone.Points()},
		{Name: "Blue Loading Zone", Points: Flip(redLoadingZone, l.Midline()).Points()},
		{Name: "Blue Charge Station", Points: ChargeStation(Blue).Points()},
		{Name: "Red Charge Station", Points: ChargeStation(Red).Points()},
		{Name: "Blue Community", Points: Community(Blue).Points()},
		{Name: "Red Community", Points: Community(Red).Points()},
		{Name: "StagingMarkers", Points: l.MirrorPoints(blueStagingMarkers...)},
		{Name: "Nodes", Points: nodes},
	}
}

// ChargeStation returns the alliance's charge station.
func ChargeStation(a Alliance) Rectangle {
	if a == Red {
		return blueChargeStation.Flip(ChargedUpMidline)
	}
	return blueChargeStation
}

// Community returns the alliance's community region.
func Community(a Alliance) Region {
	if a == Red {
		return Flip(blueCommunity, ChargedUpMidline).(Region)
	}
	return blueCommunity
}

// GridNodes returns the scoring node positions of one alliance's three grids,
// row by row from the top row outward.
func GridNodes(a Alliance) []Point {
	var nodes []Point
	for _, corner := range blueGridCorners {
		top := corner
		if a == Red {
			top = corner.Flip(ChargedUpMidline)
		}
		nodes = append(nodes, gridNodes(top, a)...)
	}
	return nodes
}

func gridNodes(topLeft Point, a Alliance) []Point {
	var rows [3][3]Point
	for v := 0; v < 3; v++ {
		for h := 0; h < 3; h++ {
			i, dx := h, float64(v)
			if a == Red {
				i, dx = 2-h, -float64(v)
			}
			rows[v][i] = Point{
				X: topLeft.X + nodeSpacingVertical*dx,
				Y: topLeft.Y + nodeSpacingHorizontal*float64(h),
			}
		}
	}
	out := make([]Point, 0, 9)
	for _, row := range rows {
		out = append(out, row[:]...)
	}
	return out
}
