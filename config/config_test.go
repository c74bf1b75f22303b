package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"field-planner/planner"
)

func TestLoadDefaultConfigFile(t *testing.T) {
	cfg, err := Load("planner.defaults.json")
	require.NoError(t, err)

	assert.Equal(t, planner.DefaultConfig(), cfg.Planner())
	assert.Equal(t, ":8080", cfg.GetListenAddr())
	assert.False(t, cfg.GetDebug())
	assert.Empty(t, cfg.GetLayoutPath())
}

func TestEmptyConfigMatchesDefaults(t *testing.T) {
	assert.Equal(t, planner.DefaultConfig(), Empty().Planner())
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"clearance": 0.3, "debug": true}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.3, cfg.GetClearance())
	assert.True(t, cfg.GetDebug())
	assert.Equal(t, planner.DefaultConfig().CornerOffset, cfg.GetCornerOffset())
	assert.Equal(t, planner.DefaultMaxExpansions, cfg.GetMaxExpansions())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"extension", write("config.yaml", "{}"), ".json extension"},
		{"missing", filepath.Join(dir, "missing.json"), "failed to stat"},
		{"too large", write("large.json", `{"debug": true}`+strings.Repeat(" ", maxFileSize)), "too large"},
		{"syntax", write("bad.json", `{"clearance": }`), "failed to parse"},
		{"invalid", write("invalid.json", `{"clearance": -1}`), "invalid configuration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := &PlannerConfig{
		Clearance:           ptrFloat64(-1),
		CornerOffset:        ptrFloat64(-0.1),
		MaxExpansions:       ptrInt(0),
		NotFoundLogInterval: ptrString("soon"),
		LayoutPath:          ptrString("field.txt"),
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 5)

	cfg = &PlannerConfig{NotFoundLogInterval: ptrString("-1s")}
	assert.ErrorContains(t, cfg.Validate(), "must be positive")
}

func TestGetNotFoundLogInterval(t *testing.T) {
	tests := []struct {
		name string
		cfg  *PlannerConfig
		want time.Duration
	}{
		{"unset", Empty(), time.Second},
		{"empty", &PlannerConfig{NotFoundLogInterval: ptrString("")}, time.Second},
		{"set", &PlannerConfig{NotFoundLogInterval: ptrString("250ms")}, 250 * time.Millisecond},
		{"invalid", &PlannerConfig{NotFoundLogInterval: ptrString("later")}, time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.GetNotFoundLogInterval())
		})
	}
}

func TestLayout(t *testing.T) {
	layout, err := Empty().Layout()
	require.NoError(t, err)
	assert.Equal(t, "charged-up-2023", layout.Name)

	cfg := &PlannerConfig{LayoutPath: ptrString(filepath.Join(t.TempDir(), "missing.geojson")), ListenAddr: ptrString("127.0.0.1:9000")}
	_, err = cfg.Layout()
	assert.Error(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.GetListenAddr())
	assert.False(t, (&PlannerConfig{Debug: ptrBool(false)}).GetDebug())
}
