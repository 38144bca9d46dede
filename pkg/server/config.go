package server

import "time"

// CacheControl selects the Cache-Control policy for static files.
type CacheControl int

const (
	// CacheControlNone disables caching, for development.
	CacheControlNone CacheControl = iota

	// CacheControlProduction caches fingerprinted files forever and
	// everything else for an hour.
	CacheControlProduction
)

// Config holds server configuration.
type Config struct {
	// Address is the address to listen on (e.g., ":8080" or "localhost:3000").
	// Default: ":8080".
	Address string

	// StaticDir is served for requests no page matches. Empty disables it.
	StaticDir string

	// StaticPrefix is the URL prefix of static files. Default: "/".
	StaticPrefix string

	// CacheControl is the static file caching policy.
	CacheControl CacheControl

	// StaticHeaders are added to every static response.
	StaticHeaders map[string]string

	// MetricsPath is where Prometheus metrics are exposed when metrics are
	// enabled. Default: "/metrics".
	MetricsPath string

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 30 seconds.
	ShutdownTimeout time.Duration

	// HTTP timeouts.
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":8080",
		StaticPrefix:      "/",
		MetricsPath:       "/metrics",
		ShutdownTimeout:   30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// withDefaults returns a copy of c with unset fields filled in.
func (c *Config) withDefaults() *Config {
	defaults := DefaultConfig()
	if c == nil {
		return defaults
	}
	out := *c
	if out.Address == "" {
		out.Address = defaults.Address
	}
	if out.StaticPrefix == "" {
		out.StaticPrefix = defaults.StaticPrefix
	}
	if out.MetricsPath == "" {
		out.MetricsPath = defaults.MetricsPath
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if out.ReadHeaderTimeout == 0 {
		out.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if out.ReadTimeout == 0 {
		out.ReadTimeout = defaults.ReadTimeout
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = defaults.WriteTimeout
	}
	if out.IdleTimeout == 0 {
		out.IdleTimeout = defaults.IdleTimeout
	}
	return &out
}
