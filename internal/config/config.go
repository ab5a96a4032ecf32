package config

import (
	"os"
	"strconv"
	"time"

	"github.com/vortex/officedoc/pkg/officedoc/render"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxUploadSizeMB int64

	// Default render.Options overrides, applied when a request doesn't
	// specify its own.
	DefaultHeadingLevel int
	DefaultListMarker   rune
	DefaultCleanupPreset render.CleanupPreset
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:                envInt("PORT", 8080),
		ReadTimeout:         envDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:        envDuration("WRITE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:     envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxUploadSizeMB:     int64(envInt("MAX_UPLOAD_SIZE_MB", 50)),
		DefaultHeadingLevel: envInt("DEFAULT_HEADING_LEVEL", 4),
		DefaultListMarker:   envRune("DEFAULT_LIST_MARKER", '-'),
		DefaultCleanupPreset: cleanupPresetFromEnv("DEFAULT_CLEANUP_PRESET", render.CleanupDefault),
	}
}

// RenderOptions builds render.Options seeded from the configured defaults.
func (c *Config) RenderOptions() *render.Options {
	opts := render.DefaultOptions()
	opts.MaxHeadingLevel = c.DefaultHeadingLevel
	opts.ListMarker = c.DefaultListMarker
	opts.Cleanup = render.NewCleanupOptions(c.DefaultCleanupPreset)
	return opts
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envRune(key string, fallback rune) rune {
	if v := os.Getenv(key); v != "" {
		r := []rune(v)
		if len(r) == 1 {
			return r[0]
		}
	}
	return fallback
}

func cleanupPresetFromEnv(key string, fallback render.CleanupPreset) render.CleanupPreset {
	switch envString(key, "") {
	case "minimal":
		return render.CleanupMinimal
	case "default":
		return render.CleanupDefault
	case "aggressive":
		return render.CleanupAggressive
	default:
		return fallback
	}
}
