package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"field-planner/field"
	"field-planner/planner"
	"field-planner/telemetry"
)

type RouteRequest struct {
	Start field.Pose `json:"start"`
	End   field.Pose `json:"end"`
}

type RouteResponse struct {
	Path     []field.Pose `json:"path"`
	Success  bool         `json:"success"`
	Message  string       `json:"message,omitempty"`
	Distance float64      `json:"distance,omitempty"`
	Entry    *field.Point `json:"entry,omitempty"`
}

// BuildRequest overrides planner tuning for a rebuild. Zero values keep the
// current setting.
type BuildRequest struct {
	Clearance    *float64 `json:"clearance,omitempty"`
	CornerOffset *float64 `json:"cornerOffset,omitempty"`
}

// server owns the current planner. A rebuild swaps it under the lock; requests
// in flight keep using the planner they started with.
type server struct {
	logger   *zap.SugaredLogger
	recorder *telemetry.Recorder
	hub      *telemetry.Hub

	// rebuildMu serializes read-modify-rebuild of the tuning.
	rebuildMu sync.Mutex

	mu      sync.RWMutex
	layout  *field.Layout
	cfg     planner.Config
	planner *planner.Planner
}

func newServer(layout *field.Layout, cfg planner.Config, logger *zap.SugaredLogger) (*server, error) {
	s := &server{
		logger:   logger,
		recorder: telemetry.NewRecorder(),
		hub:      telemetry.NewHub(logger.Named("telemetry")),
		layout:   layout,
	}
	if err := s.rebuild(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *server) rebuild(cfg planner.Config) error {
	p, err := planner.New(s.layout, cfg,
		planner.WithLogger(s.logger.Named("planner")),
		planner.WithSink(telemetry.Multi(s.recorder, s.hub)),
	)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.planner = p
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

func (s *server) current() *planner.Planner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.planner
}

func (s *server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/route", corsMiddleware(s.routeHandler))
	mux.HandleFunc("/buildGraph", corsMiddleware(s.buildGraphHandler))
	mux.HandleFunc("/graphLines", corsMiddleware(s.graphLinesHandler))
	mux.HandleFunc("/field", corsMiddleware(s.fieldHandler))
	mux.HandleFunc("/plot.png", corsMiddleware(s.plotHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	mux.Handle("/telemetry", s.hub)
	return mux
}

// corsMiddleware adds CORS headers to allow dashboard requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// POST /route - plan from start to end
func (s *server) routeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Debugw("invalid route request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	p := s.current()
	plan, err := p.Plan(req.Start.Point(), req.End.Point())
	if errors.Is(err, planner.ErrNotFound) {
		writeJSON(w, http.StatusOK, RouteResponse{Success: false, Message: err.Error()})
		return
	}
	if err != nil {
		s.logger.Errorw("route failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	poses := plan.Poses(req.Start, req.End)
	resp := RouteResponse{
		Path:     poses,
		Success:  true,
		Distance: plan.Length,
	}
	if plan.HasEntry {
		resp.Entry = &plan.Entry
	}
	s.logger.Infow("route planned",
		"start", req.Start,
		"end", req.End,
		"points", len(poses),
		"distance", plan.Length,
		"elapsed", plan.Elapsed,
	)
	writeJSON(w, http.StatusOK, resp)
}

// POST /buildGraph - rebuild the planner with new tuning
func (s *server) buildGraphHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	s.mu.RLock()
	cfg := s.cfg
	s.mu.RUnlock()
	if req.Clearance != nil {
		cfg.Clearance = *req.Clearance
	}
	if req.CornerOffset != nil {
		cfg.CornerOffset = *req.CornerOffset
	}

	if err := s.rebuild(cfg); err != nil {
		s.logger.Warnw("rebuild rejected", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	p := s.current()
	s.logger.Infow("planner rebuilt", "clearance", cfg.Clearance, "corner_offset", cfg.CornerOffset)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"numObstacles": p.Obstacles().Len(),
		"numWaypoints": p.Waypoints().Len(),
		"clearance":    cfg.Clearance,
		"cornerOffset": cfg.CornerOffset,
	})
}

// GET /graphLines - waypoint visibility edges for display
func (s *server) graphLinesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	p := s.current()
	lines := p.VisibilityLines()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"lines":    lines,
		"numNodes": p.Waypoints().Len(),
		"numEdges": len(lines),
	})
}

// GET /field - latest telemetry as GeoJSON
func (s *server) fieldHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.recorder.FeatureCollection())
}

// GET /plot.png - rendered field and last path
func (s *server) plotHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := telemetry.WritePNG(w, s.recorder.Snapshot(), s.current().Layout(), 6*vg.Inch); err != nil {
		s.logger.Errorw("failed to render plot", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GET /health - Health check endpoint
func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	p := s.current()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ready",
		"layout":       p.Layout().Name,
		"numObstacles": p.Obstacles().Len(),
		"numWaypoints": p.Waypoints().Len(),
		"viewers":      s.hub.Clients(),
	})
}
