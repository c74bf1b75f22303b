package planner

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"field-planner/field"
	"field-planner/logging"
	"field-planner/telemetry"
)

// Config holds the planner tuning that is fixed for a session.
type Config struct {
	// Clearance grows every obstacle before collision tests, typically half the
	// robot's bumper-to-bumper width.
	Clearance float64
	// CornerOffset places a generated waypoint this far outside every corner of
	// every grown obstacle. Zero disables generated waypoints.
	CornerOffset float64
	// MaxExpansions caps one search. Zero means DefaultMaxExpansions.
	MaxExpansions int
	// NotFoundLogInterval is the minimum spacing of "no path" warnings.
	NotFoundLogInterval time.Duration
}

// DefaultConfig is tuned for the 2023 robot: 33 in wide with bumpers.
func DefaultConfig() Config {
	return Config{
		Clearance:           0.42,
		CornerOffset:        0.05,
		MaxExpansions:       DefaultMaxExpansions,
		NotFoundLogInterval: time.Second,
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var err error
	if c.Clearance < 0 {
		err = multierr.Append(err, errors.Errorf("clearance must be non-negative, got %v", c.Clearance))
	}
	if c.CornerOffset < 0 {
		err = multierr.Append(err, errors.Errorf("corner offset must be non-negative, got %v", c.CornerOffset))
	}
	if c.MaxExpansions < 0 {
		err = multierr.Append(err, errors.Errorf("max expansions must be non-negative, got %d", c.MaxExpansions))
	}
	if c.NotFoundLogInterval < 0 {
		err = multierr.Append(err, errors.Errorf("not-found log interval must be non-negative, got %v", c.NotFoundLogInterval))
	}
	return err
}

// Option customizes a Planner.
type Option func(*Planner)

// WithLogger sets the logger. The default drops everything.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithSink sets the telemetry sink. The default discards.
func WithSink(sink telemetry.Sink) Option {
	return func(p *Planner) {
		if sink != nil {
			p.sink = sink
		}
	}
}

// Planner answers path queries on one field layout. All of its state is built
// by New and never changes, so FindPath may be called from several goroutines.
type Planner struct {
	layout    *field.Layout
	cfg       Config
	obstacles *ObstacleSet
	waypoints *WaypointSet

	logger     *zap.SugaredLogger
	sink       telemetry.Sink
	notFound   *rate.Limiter
	suppressed atomic.Int64
}

// Plan is the full outcome of one query.
type Plan struct {
	Start, Goal field.Point
	// Raw is the search output, Path its simplified subsequence.
	Raw  []field.Point
	Path []field.Point
	// Cost is the length of Raw, Length the length of Path.
	Cost     float64
	Length   float64
	Expanded int
	Elapsed  time.Duration
	// Entry is the nearest waypoint visible from Start, if any.
	Entry    field.Point
	HasEntry bool
}

// New builds the obstacle and waypoint sets for layout and publishes them, along
// with the layout's markings, to the telemetry sink once.
func New(layout *field.Layout, cfg Config, opts ...Option) (*Planner, error) {
	if layout == nil {
		return nil, errors.New("planner needs a field layout")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid planner config")
	}
	if cfg.MaxExpansions == 0 {
		cfg.MaxExpansions = DefaultMaxExpansions
	}

	p := &Planner{
		layout: layout,
		cfg:    cfg,
		logger: logging.NewNop(),
		sink:   telemetry.Nop{},
	}
	for _, opt := range opts {
		opt(p)
	}
	limit := rate.Inf
	if cfg.NotFoundLogInterval > 0 {
		limit = rate.Every(cfg.NotFoundLogInterval)
	}
	p.notFound = rate.NewLimiter(limit, 1)

	start := time.Now()
	obstacles, err := NewObstacleSet(layout.Obstacles, cfg.Clearance)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build obstacle set")
	}
	waypoints, err := NewWaypointSet(layout, obstacles, cfg.CornerOffset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build waypoint set")
	}
	p.obstacles = obstacles
	p.waypoints = waypoints

	p.logger.Infow("planner ready",
		"layout", layout.Name,
		"obstacles", obstacles.Len(),
		"configured_waypoints", len(layout.Waypoints),
		"waypoints", waypoints.Len(),
		"clearance", cfg.Clearance,
		"elapsed", time.Since(start),
	)

	p.sink.RecordPoints(telemetry.KeyObstacles, obstacles.Corners(0))
	p.sink.RecordPoints(telemetry.KeyWaypoints, waypoints.Points())
	for _, m := range layout.Markings {
		p.sink.RecordPoints(telemetry.FieldKey(m.Name), m.Points)
	}
	return p, nil
}

// Layout returns the layout the planner was built for.
func (p *Planner) Layout() *field.Layout { return p.layout }

// Obstacles returns the grown obstacle set.
func (p *Planner) Obstacles() *ObstacleSet { return p.obstacles }

// Waypoints returns the filtered waypoint set.
func (p *Planner) Waypoints() *WaypointSet { return p.waypoints }

// FindPath plans from start to goal and returns the simplified route as poses.
// An unreachable goal yields an error satisfying errors.Is(err, ErrNotFound).
func (p *Planner) FindPath(start, goal field.Pose) ([]field.Pose, error) {
	plan, err := p.Plan(start.Point(), goal.Point())
	if err != nil {
		return nil, err
	}
	return plan.Poses(start, goal), nil
}

// Poses converts the simplified path to poses. The first pose is start and the
// last is goal, exactly; intermediate poses face heading 0. When both positions
// coincide the route is the single goal pose.
func (pl Plan) Poses(start, goal field.Pose) []field.Pose {
	if len(pl.Path) == 0 {
		return nil
	}
	if len(pl.Path) == 1 {
		return []field.Pose{goal}
	}

	poses := make([]field.Pose, len(pl.Path))
	for i, pt := range pl.Path {
		poses[i] = field.PoseAt(pt, 0)
	}
	poses[0] = start
	poses[len(poses)-1] = goal
	return poses
}

// Plan runs the search and the simplifier and reports everything about the query.
// Non-finite positions fail with ErrInvalidPosition before anything is searched.
func (p *Planner) Plan(start, goal field.Point) (Plan, error) {
	t0 := time.Now()
	plan := Plan{Start: start, Goal: goal}
	if !start.IsFinite() || !goal.IsFinite() {
		return plan, errors.Wrapf(ErrInvalidPosition, "from (%v, %v) to (%v, %v)", start.X, start.Y, goal.X, goal.Y)
	}
	plan.Entry, plan.HasEntry = p.waypoints.Nearest(start, p.obstacles.Around(start))

	p.sink.RecordPoints(telemetry.KeyStart, []field.Point{start})
	p.sink.RecordPoints(telemetry.KeyEnd, []field.Point{goal})

	res, err := Search(start, goal, p.obstacles, p.waypoints.points, p.cfg.MaxExpansions)
	plan.Expanded = res.Expanded
	plan.Elapsed = time.Since(t0)
	if err != nil {
		p.logNotFound(plan, err)
		return plan, errors.Wrapf(err, "from (%.3f, %.3f) to (%.3f, %.3f)", start.X, start.Y, goal.X, goal.Y)
	}

	plan.Raw = res.Path
	plan.Cost = res.Cost
	plan.Path = Simplify(res.Path, p.obstacles)
	plan.Length = Length(plan.Path)
	plan.Elapsed = time.Since(t0)

	p.sink.RecordPoints(telemetry.KeyRawPath, plan.Raw)
	p.sink.RecordPoints(telemetry.KeyPath, plan.Path)

	p.logger.Debugw("path found",
		"start", start,
		"goal", goal,
		"raw_points", len(plan.Raw),
		"points", len(plan.Path),
		"length", plan.Length,
		"expanded", plan.Expanded,
		"elapsed", plan.Elapsed,
	)
	return plan, nil
}

// logNotFound warns at most once per NotFoundLogInterval; callers tend to retry
// every loop while the robot is boxed in.
func (p *Planner) logNotFound(plan Plan, err error) {
	if !p.notFound.Allow() {
		p.suppressed.Add(1)
		return
	}
	p.logger.Warnw("no path found",
		"start", plan.Start,
		"goal", plan.Goal,
		"expanded", plan.Expanded,
		"elapsed", plan.Elapsed,
		"suppressed", p.suppressed.Swap(0),
		"error", err,
	)
}

// VisibilityLines returns every unobstructed waypoint-to-waypoint segment. It
// is for display only; searches compute visibility per query.
func (p *Planner) VisibilityLines() []field.Line {
	pts := p.waypoints.points
	var lines []field.Line
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			l := field.Line{A: pts[i], B: pts[j]}
			if !p.obstacles.Blocks(l) {
				lines = append(lines, l)
			}
		}
	}
	return lines
}
