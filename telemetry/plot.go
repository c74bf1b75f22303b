package telemetry

import (
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"field-planner/field"
)

var (
	obstacleFill  = color.RGBA{R: 200, G: 60, B: 60, A: 90}
	obstacleEdge  = color.RGBA{R: 160, G: 30, B: 30, A: 255}
	waypointColor = color.RGBA{R: 40, G: 110, B: 200, A: 255}
	cornerColor   = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	markingColor  = color.RGBA{R: 140, G: 80, B: 180, A: 255}
	rawPathColor  = color.RGBA{R: 230, G: 150, B: 30, A: 255}
	pathColor     = color.RGBA{R: 20, G: 150, B: 60, A: 255}
)

// Render draws the layout's obstacles and markings and the recorded point sets:
// waypoints, obstacle corners, the raw search path and the simplified path.
func Render(snapshot map[string][]field.Point, layout *field.Layout) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Planner"
	if layout != nil && layout.Name != "" {
		p.Title.Text = layout.Name
	}
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	if layout != nil {
		for _, o := range layout.Obstacles {
			if err := addShape(p, o); err != nil {
				return nil, err
			}
		}
		if layout.Bounded() {
			p.X.Min, p.X.Max = 0, layout.Width
			p.Y.Min, p.Y.Max = 0, layout.Height
		}
	}

	if layout != nil {
		var marks []field.Point
		for _, m := range layout.Markings {
			marks = append(marks, m.Points...)
		}
		if err := addScatter(p, "markings", marks, markingColor, 1); err != nil {
			return nil, err
		}
	}
	if err := addScatter(p, "corners", snapshot[KeyObstacles], cornerColor, 1.5); err != nil {
		return nil, err
	}
	if err := addScatter(p, "waypoints", snapshot[KeyWaypoints], waypointColor, 3); err != nil {
		return nil, err
	}
	if err := addPath(p, "raw path", snapshot[KeyRawPath], rawPathColor, true); err != nil {
		return nil, err
	}
	if err := addPath(p, "path", snapshot[KeyPath], pathColor, false); err != nil {
		return nil, err
	}
	return p, nil
}

// WritePNG renders and encodes the picture as a square PNG of the given size.
func WritePNG(w io.Writer, snapshot map[string][]field.Point, layout *field.Layout, size vg.Length) error {
	p, err := Render(snapshot, layout)
	if err != nil {
		return err
	}
	width := size
	if layout != nil && layout.Bounded() {
		width = size * vg.Length(layout.Width/layout.Height)
	}
	wt, err := p.WriterTo(width, size, "png")
	if err != nil {
		return errors.Wrap(err, "failed to create png writer")
	}
	_, err = wt.WriteTo(w)
	return errors.Wrap(err, "failed to write png")
}

// SavePNG writes the picture to path, creating parent directories.
func SavePNG(path string, snapshot map[string][]field.Point, layout *field.Layout, size vg.Length) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create plot directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create plot file")
	}
	if err := WritePNG(f, snapshot, layout, size); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "failed to close plot file")
}

func addShape(p *plot.Plot, s field.Shape) error {
	switch s := s.(type) {
	case field.Region:
		for _, m := range s.Members() {
			if err := addShape(p, m); err != nil {
				return err
			}
		}
		return nil
	case field.Line:
		l, err := plotter.NewLine(toXYs([]field.Point{s.A, s.B}))
		if err != nil {
			return errors.Wrap(err, "failed to plot wall")
		}
		l.Color = obstacleEdge
		l.Width = vg.Points(2)
		p.Add(l)
		return nil
	case field.Point:
		return addScatter(p, "", []field.Point{s}, obstacleEdge, 3)
	}

	poly, err := plotter.NewPolygon(toXYs(s.Points()))
	if err != nil {
		return errors.Wrap(err, "failed to plot obstacle")
	}
	poly.Color = obstacleFill
	poly.LineStyle.Color = obstacleEdge
	poly.LineStyle.Width = vg.Points(1)
	p.Add(poly)
	return nil
}

func addScatter(p *plot.Plot, name string, pts []field.Point, c color.Color, radius float64) error {
	if len(pts) == 0 {
		return nil
	}
	s, err := plotter.NewScatter(toXYs(pts))
	if err != nil {
		return errors.Wrapf(err, "failed to plot %s", name)
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Radius = vg.Points(radius)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)
	if name != "" {
		p.Legend.Add(name, s)
	}
	return nil
}

func addPath(p *plot.Plot, name string, pts []field.Point, c color.Color, dashed bool) error {
	if len(pts) < 2 {
		return nil
	}
	l, err := plotter.NewLine(toXYs(pts))
	if err != nil {
		return errors.Wrapf(err, "failed to plot %s", name)
	}
	l.Color = c
	l.Width = vg.Points(2)
	if dashed {
		l.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	}
	p.Add(l)
	p.Legend.Add(name, l)
	return nil
}

func toXYs(pts []field.Point) plotter.XYs {
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return xys
}
