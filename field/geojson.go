package field

import (
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// GeoJSON feature properties understood by the layout loader.
const (
	PropRole   = "role"   // "obstacle" (default for areas), "waypoint" (default for points), "marking" or "field"
	PropMirror = "mirror" // true adds the twin mirrored across the midline
	PropName   = "name"

	RoleObstacle = "obstacle"
	RoleWaypoint = "waypoint"
	RoleField    = "field"
	RoleMarking  = "marking"
)

// LoadGeoJSON reads a layout from a GeoJSON FeatureCollection file.
func LoadGeoJSON(path string) (*Layout, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read layout")
	}
	l, err := ParseGeoJSON(data)
	if err != nil {
		return nil, errors.Wrapf(err, "layout %s", filepath.Base(path))
	}
	if l.Name == "" {
		l.Name = filepath.Base(path)
	}
	return l, nil
}

// ParseGeoJSON converts a FeatureCollection into a layout. Area features become
// obstacles by their axis-aligned bounds, line strings become wall segments and
// point features become waypoints. Marking features of any geometry keep only
// their points, under their name. Obstacles nested inside a rectangle obstacle
// are dropped. The field feature, if present, sets the field
// size from its bound; mirroring needs it to know the midline.
func ParseGeoJSON(data []byte) (*Layout, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse GeoJSON")
	}

	l := &Layout{}
	// The field feature must be seen before anything is mirrored.
	for _, f := range fc.Features {
		if f.Properties.MustString(PropRole, "") != RoleField || f.Geometry == nil {
			continue
		}
		b := f.Geometry.Bound()
		l.Width, l.Height = b.Max.X(), b.Max.Y()
		l.Name = f.Properties.MustString(PropName, "")
	}

	for i, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		role := f.Properties.MustString(PropRole, "")
		if role == RoleField {
			continue
		}
		mirrored := f.Properties.MustBool(PropMirror, false)
		if mirrored && !l.Bounded() {
			return nil, errors.Errorf("feature %d: mirror requested but layout has no field feature", i)
		}

		if role == RoleMarking {
			pts, err := geometryPoints(f.Geometry)
			if err != nil {
				return nil, errors.Wrapf(err, "feature %d", i)
			}
			if mirrored {
				pts = l.MirrorPoints(pts...)
			}
			name := f.Properties.MustString(PropName, "")
			if name == "" {
				return nil, errors.Errorf("feature %d: marking needs a name", i)
			}
			l.Markings = append(l.Markings, Marking{Name: name, Points: pts})
			continue
		}

		switch g := f.Geometry.(type) {
		case orb.Point:
			l.addWaypoints(mirrored, FromOrb(g))
		case orb.MultiPoint:
			for _, p := range g {
				l.addWaypoints(mirrored, FromOrb(p))
			}
		default:
			shape, err := shapeFromGeometry(g)
			if err != nil {
				return nil, errors.Wrapf(err, "feature %d", i)
			}
			if role == RoleWaypoint {
				l.addWaypoints(mirrored, shape.Points()...)
				continue
			}
			l.Obstacles = append(l.Obstacles, shape)
			if mirrored {
				l.Obstacles = append(l.Obstacles, Flip(shape, l.Midline()))
			}
		}
	}

	if len(l.Obstacles) == 0 && len(l.Waypoints) == 0 {
		return nil, ErrEmptyLayout
	}
	l.Obstacles = RemoveContained(l.Obstacles)
	return l, nil
}

func (l *Layout) addWaypoints(mirrored bool, pts ...Point) {
	if mirrored {
		pts = l.MirrorPoints(pts...)
	}
	l.Waypoints = append(l.Waypoints, pts...)
}

func geometryPoints(g orb.Geometry) ([]Point, error) {
	switch g := g.(type) {
	case orb.Point:
		return []Point{FromOrb(g)}, nil
	case orb.MultiPoint:
		pts := make([]Point, 0, len(g))
		for _, p := range g {
			pts = append(pts, FromOrb(p))
		}
		return pts, nil
	}
	shape, err := shapeFromGeometry(g)
	if err != nil {
		return nil, err
	}
	return shape.Points(), nil
}

func shapeFromGeometry(g orb.Geometry) (Shape, error) {
	switch g := g.(type) {
	case orb.Polygon:
		return rectFromBound(g.Bound()), nil
	case orb.Ring:
		return rectFromBound(g.Bound()), nil
	case orb.Bound:
		return rectFromBound(g), nil
	case orb.MultiPolygon:
		members := make([]Shape, 0, len(g))
		for _, p := range g {
			members = append(members, rectFromBound(p.Bound()))
		}
		return NewRegion(members...), nil
	case orb.LineString:
		if len(g) < 2 {
			return nil, errors.New("line string needs at least two points")
		}
		if len(g) == 2 {
			return Line{A: FromOrb(g[0]), B: FromOrb(g[1])}, nil
		}
		members := make([]Shape, 0, len(g)-1)
		for i := 1; i < len(g); i++ {
			members = append(members, Line{A: FromOrb(g[i-1]), B: FromOrb(g[i])})
		}
		return NewRegion(members...), nil
	}
	return nil, errors.Errorf("unsupported geometry %s", g.GeoJSONType())
}

// FeatureCollection exports the layout: the field outline, one feature per
// obstacle, one per waypoint and one MultiPoint per marking. Regions export as
// MultiPolygons of their member bounds.
func (l *Layout) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if l.Bounded() {
		f := geojson.NewFeature(l.Bounds().Bound().ToPolygon())
		f.Properties[PropRole] = RoleField
		f.Properties[PropName] = l.Name
		fc.Append(f)
	}
	for _, o := range l.Obstacles {
		f := geojson.NewFeature(shapeGeometry(o))
		f.Properties[PropRole] = RoleObstacle
		fc.Append(f)
	}
	for _, w := range l.Waypoints {
		f := geojson.NewFeature(w.Orb())
		f.Properties[PropRole] = RoleWaypoint
		fc.Append(f)
	}
	for _, m := range l.Markings {
		mp := make(orb.MultiPoint, len(m.Points))
		for i, p := range m.Points {
			mp[i] = p.Orb()
		}
		f := geojson.NewFeature(mp)
		f.Properties[PropRole] = RoleMarking
		f.Properties[PropName] = m.Name
		fc.Append(f)
	}
	return fc
}

// SaveGeoJSON writes the layout to path in the format LoadGeoJSON reads.
func (l *Layout) SaveGeoJSON(path string) error {
	data, err := l.FeatureCollection().MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "failed to encode layout")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create layout directory")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "failed to write layout")
}

func shapeGeometry(s Shape) orb.Geometry {
	switch s := s.(type) {
	case Point:
		return s.Orb()
	case Line:
		return orb.LineString{s.A.Orb(), s.B.Orb()}
	case Region:
		mp := make(orb.MultiPolygon, 0, len(s.members))
		for _, m := range s.members {
			mp = append(mp, m.Bound().ToPolygon())
		}
		return mp
	}
	return s.Bound().ToPolygon()
}
