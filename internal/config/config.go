package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"handchart/internal/errors"
	"handchart/internal/geometry"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Render  RenderConfig
	Upload  UploadConfig
	Session SessionConfig
	Log     LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// RenderConfig holds chart layout and rasterization settings
type RenderConfig struct {
	DefaultWidth         float64
	TargetHeight         float64
	NarrowHeight         float64
	NarrowBreakpoint     float64
	BandPadding          float64
	MaxWidth             float64
	MaxHeight            float64
	MaxConcurrentRasters int64
}

// UploadConfig limits dataset uploads
type UploadConfig struct {
	MaxBytes int64
}

// SessionConfig bounds the in-memory chart sessions
type SessionConfig struct {
	TTL         time.Duration
	MaxSessions int
	SweepEvery  time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:  *loadServerConfig(),
		Render:  *loadRenderConfig(),
		Upload:  *loadUploadConfig(),
		Session: *loadSessionConfig(),
		Log:     *loadLogConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8080", GinMode: "debug"},
		Render:  RenderConfig{DefaultWidth: 800, TargetHeight: 400, NarrowHeight: 300, NarrowBreakpoint: 640, BandPadding: 0.1, MaxWidth: 4096, MaxHeight: 4096, MaxConcurrentRasters: 4},
		Upload:  UploadConfig{MaxBytes: 10 << 20},
		Session: SessionConfig{TTL: 2 * time.Hour, MaxSessions: 1000, SweepEvery: 5 * time.Minute},
		Log:     LogConfig{Level: "INFO"},
	}
}

func loadServerConfig() *ServerConfig {
	d := Default().Server
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", d.Port),
		GinMode: getEnvOrDefault("GIN_MODE", d.GinMode),
	}
}

func loadRenderConfig() *RenderConfig {
	d := Default().Render
	return &RenderConfig{
		DefaultWidth:         getEnvFloatOrDefault("CHART_DEFAULT_WIDTH", d.DefaultWidth),
		TargetHeight:         getEnvFloatOrDefault("CHART_TARGET_HEIGHT", d.TargetHeight),
		NarrowHeight:         getEnvFloatOrDefault("CHART_NARROW_HEIGHT", d.NarrowHeight),
		NarrowBreakpoint:     getEnvFloatOrDefault("CHART_NARROW_BREAKPOINT", d.NarrowBreakpoint),
		BandPadding:          getEnvFloatOrDefault("CHART_BAND_PADDING", d.BandPadding),
		MaxWidth:             getEnvFloatOrDefault("CHART_MAX_WIDTH", d.MaxWidth),
		MaxHeight:            getEnvFloatOrDefault("CHART_MAX_HEIGHT", d.MaxHeight),
		MaxConcurrentRasters: int64(getEnvIntOrDefault("CHART_MAX_CONCURRENT_RASTERS", int(d.MaxConcurrentRasters))),
	}
}

func loadUploadConfig() *UploadConfig {
	d := Default().Upload
	return &UploadConfig{
		MaxBytes: int64(getEnvIntOrDefault("UPLOAD_MAX_BYTES", int(d.MaxBytes))),
	}
}

func loadSessionConfig() *SessionConfig {
	d := Default().Session
	return &SessionConfig{
		TTL:         getEnvDurationOrDefault("SESSION_TTL", d.TTL),
		MaxSessions: getEnvIntOrDefault("SESSION_MAX", d.MaxSessions),
		SweepEvery:  getEnvDurationOrDefault("SESSION_SWEEP_INTERVAL", d.SweepEvery),
	}
}

func loadLogConfig() *LogConfig {
	return &LogConfig{
		Level: strings.ToUpper(getEnvOrDefault("LOG_LEVEL", Default().Log.Level)),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	if config.Render.DefaultWidth <= 0 {
		return errors.ConfigInvalid("CHART_DEFAULT_WIDTH must be positive")
	}
	if config.Render.TargetHeight <= 0 || config.Render.NarrowHeight <= 0 {
		return errors.ConfigInvalid("chart heights must be positive")
	}
	if config.Render.MaxWidth < config.Render.DefaultWidth {
		return errors.ConfigInvalid("CHART_MAX_WIDTH must be at least CHART_DEFAULT_WIDTH")
	}
	if config.Render.MaxHeight < config.Render.TargetHeight || config.Render.MaxHeight < config.Render.NarrowHeight {
		return errors.ConfigInvalid("CHART_MAX_HEIGHT must be at least the chart heights")
	}
	if config.Render.BandPadding < 0 || config.Render.BandPadding >= 1 {
		return errors.ConfigInvalid("CHART_BAND_PADDING must be in [0, 1)")
	}
	if config.Render.MaxConcurrentRasters <= 0 {
		return errors.ConfigInvalid("CHART_MAX_CONCURRENT_RASTERS must be positive")
	}
	if config.Upload.MaxBytes <= 0 {
		return errors.ConfigInvalid("UPLOAD_MAX_BYTES must be positive")
	}
	if config.Session.TTL <= 0 || config.Session.MaxSessions <= 0 {
		return errors.ConfigInvalid("session TTL and limit must be positive")
	}
	if config.Session.SweepEvery <= 0 {
		return errors.ConfigInvalid("SESSION_SWEEP_INTERVAL must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// CheckViewport rejects viewport sizes the renderers should never be asked for
func (r RenderConfig) CheckViewport(width, height float64) error {
	if width > r.MaxWidth {
		return errors.InvalidInput(fmt.Sprintf("width must be at most %g", r.MaxWidth))
	}
	if height > r.MaxHeight {
		return errors.InvalidInput(fmt.Sprintf("height must be at most %g", r.MaxHeight))
	}
	return nil
}

// GeometryOptions converts the render section into chart layout options
func (r RenderConfig) GeometryOptions() geometry.Options {
	opts := geometry.DefaultOptions()
	opts.TargetHeight = r.TargetHeight
	opts.NarrowHeight = r.NarrowHeight
	opts.NarrowBreakpoint = r.NarrowBreakpoint
	opts.BandPadding = r.BandPadding
	return opts
}
