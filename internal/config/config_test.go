package config

import (
	"testing"
	"time"

	"handchart/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "CHART_TARGET_HEIGHT", "CHART_NARROW_HEIGHT", "CHART_NARROW_BREAKPOINT", "CHART_BAND_PADDING", "CHART_MAX_WIDTH", "CHART_MAX_HEIGHT", "SESSION_TTL", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 400.0, cfg.Render.TargetHeight)
	assert.Equal(t, 300.0, cfg.Render.NarrowHeight)
	assert.Equal(t, 640.0, cfg.Render.NarrowBreakpoint)
	assert.Equal(t, 0.1, cfg.Render.BandPadding)
	assert.Equal(t, 4096.0, cfg.Render.MaxWidth)
	assert.Equal(t, 4096.0, cfg.Render.MaxHeight)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "INFO", cfg.Log.Level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CHART_TARGET_HEIGHT", "500")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("UPLOAD_MAX_BYTES", "2048")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_MAX", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 500.0, cfg.Render.TargetHeight)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)
	assert.Equal(t, int64(2048), cfg.Upload.MaxBytes)
	assert.Equal(t, "DEBUG", cfg.Log.Level)
	assert.Equal(t, 1000, cfg.Session.MaxSessions)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero width", "CHART_DEFAULT_WIDTH", "0"},
		{"padding too large", "CHART_BAND_PADDING", "1.5"},
		{"negative upload", "UPLOAD_MAX_BYTES", "-1"},
		{"no rasters", "CHART_MAX_CONCURRENT_RASTERS", "0"},
		{"unknown gin mode", "GIN_MODE", "verbose"},
		{"max width below default", "CHART_MAX_WIDTH", "100"},
		{"max height below target", "CHART_MAX_HEIGHT", "350"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestCheckViewport(t *testing.T) {
	r := Default().Render

	assert.NoError(t, r.CheckViewport(4096, 4096))
	assert.NoError(t, r.CheckViewport(800, 0))

	for _, vp := range [][2]float64{{1e20, 0}, {4097, 400}, {800, 1e6}} {
		err := r.CheckViewport(vp[0], vp[1])
		require.Error(t, err, "%v", vp)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	}
}
