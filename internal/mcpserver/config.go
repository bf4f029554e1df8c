package mcpserver

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/erraggy/dataresolver/walker"
)

// envPrefix is prepended to every configuration key to form its
// environment variable: paths_limit is read from DATARESOLVER_PATHS_LIMIT.
const envPrefix = "DATARESOLVER"

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	// Result limits.
	PathsLimit  int
	ValuesLimit int
	MaxLimit    int

	// MaxDepth is the default list_paths depth.
	MaxDepth int

	// MaxContentSize bounds inline content and files read by tools.
	MaxContentSize int64
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from DATARESOLVER_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	return &serverConfig{
		CacheEnabled:       envBool(v, "cache_enabled", true),
		CacheMaxSize:       envInt(v, "cache_max_size", 10),
		CacheTTL:           envDuration(v, "cache_ttl", 15*time.Minute),
		CacheSweepInterval: envDuration(v, "cache_sweep_interval", 60*time.Second),
		PathsLimit:         envInt(v, "paths_limit", 100),
		ValuesLimit:        envInt(v, "values_limit", 100),
		MaxLimit:           envInt(v, "max_limit", 1000),
		MaxDepth:           envInt(v, "max_depth", walker.DefaultMaxDepth),
		MaxContentSize:     int64(envInt(v, "max_content_size", 10*1024*1024)),
	}
}

func envBool(v *viper.Viper, key string, fallback bool) bool {
	raw := v.GetString(key)
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err == nil {
		return b
	}
	slog.Warn("invalid bool env var, using default", "key", envKey(key), "value", raw, "default", fallback)
	return fallback
}

func envInt(v *viper.Viper, key string, fallback int) int {
	if v.GetString(key) == "" {
		return fallback
	}
	n := v.GetInt(key)
	if n <= 0 {
		slog.Warn("invalid int env var, using default", "key", envKey(key), "value", v.GetString(key), "default", fallback)
		return fallback
	}
	return n
}

func envDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	if v.GetString(key) == "" {
		return fallback
	}
	d := v.GetDuration(key)
	if d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", envKey(key), "value", v.GetString(key), "default", fallback)
		return fallback
	}
	return d
}

func envKey(key string) string {
	return envPrefix + "_" + strings.ToUpper(key)
}
