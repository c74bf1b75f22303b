// Package main is the field planner command: an HTTP route service plus
// one-shot planning and rendering.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"field-planner/config"
	"field-planner/field"
	"field-planner/logging"
	"field-planner/planner"
	"field-planner/telemetry"
)

const (
	// Flags.
	flagConfig = "config"
	flagDebug  = "debug"
	flagAddr   = "addr"
	flagFrom   = "from"
	flagTo     = "to"
	flagPNG    = "png"
	flagOut    = "out"
	flagLayout = "geojson"
)

func main() {
	var (
		logger *zap.SugaredLogger
		cfg    *config.PlannerConfig
	)

	app := &cli.App{
		Name:  "field-planner",
		Usage: "plan obstacle-free routes across the competition field",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load planner configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			cfg, err = config.LoadOrDefault(c.String(flagConfig))
			if err != nil {
				return err
			}
			logger, err = logging.NewLogger("field-planner", c.Bool(flagDebug) || cfg.GetDebug())
			return err
		},
		After: func(*cli.Context) error {
			if logger != nil {
				logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP route service",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagAddr,
						Usage: "listen address, overrides the config file",
					},
				},
				Action: func(c *cli.Context) error {
					addr := c.String(flagAddr)
					if addr == "" {
						addr = cfg.GetListenAddr()
					}
					return serve(c.Context, cfg, addr, logger)
				},
			},
			{
				Name:      "plan",
				Usage:     "plan one route and print it as JSON",
				ArgsUsage: " ",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagFrom,
						Usage:    "start position as `X,Y` or `X,Y,HEADING`",
						Required: true,
					},
					&cli.StringFlag{
						Name:     flagTo,
						Usage:    "goal position as `X,Y` or `X,Y,HEADING`",
						Required: true,
					},
					&cli.StringFlag{
						Name:  flagPNG,
						Usage: "also render the route to `FILE`",
					},
				},
				Action: func(c *cli.Context) error {
					from, err := parsePose(c.String(flagFrom))
					if err != nil {
						return errors.Wrap(err, "invalid --from")
					}
					to, err := parsePose(c.String(flagTo))
					if err != nil {
						return errors.Wrap(err, "invalid --to")
					}
					return planOnce(cfg, from, to, c.String(flagPNG), logger)
				},
			},
			{
				Name:  "render",
				Usage: "render the field, obstacles and waypoints to a PNG",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagOut,
						Value: "field.png",
						Usage: "output `FILE`",
					},
					&cli.StringFlag{
						Name:  flagLayout,
						Usage: "also export the layout as GeoJSON to `FILE`",
					},
				},
				Action: func(c *cli.Context) error {
					return render(cfg, c.String(flagOut), c.String(flagLayout), logger)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func buildPlanner(cfg *config.PlannerConfig, sink telemetry.Sink, logger *zap.SugaredLogger) (*planner.Planner, error) {
	layout, err := cfg.Layout()
	if err != nil {
		return nil, err
	}
	return planner.New(layout, cfg.Planner(), planner.WithLogger(logger.Named("planner")), planner.WithSink(sink))
}

func serve(ctx context.Context, cfg *config.PlannerConfig, addr string, logger *zap.SugaredLogger) error {
	layout, err := cfg.Layout()
	if err != nil {
		return err
	}
	s, err := newServer(layout, cfg.Planner(), logger)
	if err != nil {
		return err
	}
	defer s.hub.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Infow("server starting",
			"addr", addr,
			"layout", layout.Name,
			"endpoints", []string{"POST /route", "POST /buildGraph", "GET /graphLines", "GET /field", "GET /plot.png", "GET /health", "WS /telemetry"},
		)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func planOnce(cfg *config.PlannerConfig, from, to field.Pose, pngPath string, logger *zap.SugaredLogger) error {
	rec := telemetry.NewRecorder()
	p, err := buildPlanner(cfg, rec, logger)
	if err != nil {
		return err
	}

	plan, err := p.Plan(from.Point(), to.Point())
	if err != nil {
		return err
	}

	out := RouteResponse{
		Path:     plan.Poses(from, to),
		Success:  true,
		Distance: plan.Length,
	}
	if plan.HasEntry {
		out.Entry = &plan.Entry
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}

	if pngPath == "" {
		return nil
	}
	return telemetry.SavePNG(pngPath, rec.Snapshot(), p.Layout(), 6*vg.Inch)
}

func render(cfg *config.PlannerConfig, out, geojsonPath string, logger *zap.SugaredLogger) error {
	rec := telemetry.NewRecorder()
	p, err := buildPlanner(cfg, rec, logger)
	if err != nil {
		return err
	}
	if err := telemetry.SavePNG(out, rec.Snapshot(), p.Layout(), 6*vg.Inch); err != nil {
		return err
	}
	logger.Infow("field rendered", "out", out)

	if geojsonPath == "" {
		return nil
	}
	if err := p.Layout().SaveGeoJSON(geojsonPath); err != nil {
		return err
	}
	logger.Infow("layout exported", "out", geojsonPath)
	return nil
}

// parsePose reads "x,y" or "x,y,heading".
func parsePose(s string) (field.Pose, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return field.Pose{}, errors.Errorf("expected x,y[,heading], got %q", s)
	}
	vals := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return field.Pose{}, errors.Wrapf(err, "component %d", i)
		}
		vals[i] = v
	}
	pose := field.Pose{X: vals[0], Y: vals[1]}
	if len(vals) == 3 {
		pose.Heading = vals[2]
	}
	if !pose.IsFinite() {
		return field.Pose{}, errors.Errorf("non-finite pose %q", s)
	}
	return pose, nil
}
