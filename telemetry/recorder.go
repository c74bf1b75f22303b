package telemetry

import (
	"slices"
	"sort"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"field-planner/field"
)

// Recorder keeps the latest point set for every key.
type Recorder struct {
	mu     sync.RWMutex
	latest map[string][]field.Point
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{latest: make(map[string][]field.Point)}
}

// RecordPoints stores a copy of points under key, replacing the previous value.
func (r *Recorder) RecordPoints(key string, points []field.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latest[key] = slices.Clone(points)
}

// Get returns the latest value for key.
func (r *Recorder) Get(key string) ([]field.Point, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pts, ok := r.latest[key]
	return slices.Clone(pts), ok
}

// Keys returns the recorded keys in sorted order.
func (r *Recorder) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.latest))
	for k := range r.latest {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot copies every recorded set.
func (r *Recorder) Snapshot() map[string][]field.Point {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]field.Point, len(r.latest))
	for k, v := range r.latest {
		out[k] = slices.Clone(v)
	}
	return out
}

// FeatureCollection exports the snapshot as GeoJSON, one MultiPoint feature per
// key with the key in the "key" property. Path keys export as LineStrings.
func (r *Recorder) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	snap := r.Snapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		pts := snap[key]
		var g orb.Geometry
		if isPath(key) && len(pts) > 1 {
			ls := make(orb.LineString, len(pts))
			for i, p := range pts {
				ls[i] = p.Orb()
			}
			g = ls
		} else {
			mp := make(orb.MultiPoint, len(pts))
			for i, p := range pts {
				mp[i] = p.Orb()
			}
			g = mp
		}
		f := geojson.NewFeature(g)
		f.Properties["key"] = key
		fc.Append(f)
	}
	return fc
}

func isPath(key string) bool {
	return key == KeyPath || key == KeyRawPath
}
