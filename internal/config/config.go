package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/vango-dev/feather/internal/errors"
)

const (
	// JSONFileName is the preferred configuration file.
	JSONFileName = "feather.json"

	// TOMLFileName is read when no JSON file exists.
	TOMLFileName = "feather.toml"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultOutput is the default export directory.
	DefaultOutput = "dist"

	// DefaultPlaceholderPrefix matches render.DefaultPlaceholderPrefix.
	DefaultPlaceholderPrefix = "feather-"

	// DefaultClientScript matches render.DefaultClientScript.
	DefaultClientScript = "/index.mjs"
)

// Config represents a feather project configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty" toml:"name,omitempty"`

	Server  ServerConfig  `json:"server" toml:"server"`
	Static  StaticConfig  `json:"static" toml:"static"`
	Render  RenderConfig  `json:"render" toml:"render"`
	Export  ExportConfig  `json:"export" toml:"export"`
	Log     LogConfig     `json:"log" toml:"log"`
	Metrics MetricsConfig `json:"metrics" toml:"metrics"`
	Tracing TracingConfig `json:"tracing" toml:"tracing"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty" toml:"host,omitempty"`
	Port int    `json:"port,omitempty" toml:"port,omitempty"`

	// ShutdownTimeout is a Go duration string (e.g., "30s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty" toml:"shutdownTimeout,omitempty"`
}

// StaticConfig contains static file serving settings.
type StaticConfig struct {
	// Dir is the directory containing static files.
	Dir string `json:"dir,omitempty" toml:"dir,omitempty"`

	// Prefix is the URL prefix for static files (default: "/").
	Prefix string `json:"prefix,omitempty" toml:"prefix,omitempty"`

	// CacheControl is "none" or "production".
	CacheControl string `json:"cacheControl,omitempty" toml:"cacheControl,omitempty"`

	// Manifest is an asset manifest mapping source names to fingerprinted
	// names, relative to the project root. Optional.
	Manifest string `json:"manifest,omitempty" toml:"manifest,omitempty"`
}

// RenderConfig contains engine and document shell settings.
type RenderConfig struct {
	PlaceholderPrefix string `json:"placeholderPrefix,omitempty" toml:"placeholderPrefix,omitempty"`
	ClientScript      string `json:"clientScript,omitempty" toml:"clientScript,omitempty"`
	Lang              string `json:"lang,omitempty" toml:"lang,omitempty"`
	Stylesheet        string `json:"stylesheet,omitempty" toml:"stylesheet,omitempty"`
}

// ExportConfig contains static export settings. A non-empty Bucket sends
// the export to S3 instead of Output.
type ExportConfig struct {
	Output   string `json:"output,omitempty" toml:"output,omitempty"`
	Bucket   string `json:"bucket,omitempty" toml:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty" toml:"prefix,omitempty"`
	Region   string `json:"region,omitempty" toml:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty" toml:"endpoint,omitempty"`

	// PathStyle addresses the bucket in the path, for S3-compatible stores.
	PathStyle bool `json:"pathStyle,omitempty" toml:"pathStyle,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" toml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" toml:"format,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" toml:"enabled"`
	Path      string `json:"path,omitempty" toml:"path,omitempty"`
	Namespace string `json:"namespace,omitempty" toml:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `json:"enabled" toml:"enabled"`
	TracerName string `json:"tracerName,omitempty" toml:"tracerName,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ShutdownTimeout: "30s",
		},
		Static: StaticConfig{
			Dir:          "public",
			Prefix:       "/",
			CacheControl: "none",
		},
		Render: RenderConfig{
			PlaceholderPrefix: DefaultPlaceholderPrefix,
			ClientScript:      DefaultClientScript,
			Lang:              "en",
		},
		Export: ExportConfig{
			Output: DefaultOutput,
			Region: "us-east-1",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      "/metrics",
			Namespace: "feather",
		},
		Tracing: TracingConfig{
			TracerName: "feather",
		},
	}
}

// Load reads configuration from dir, preferring feather.json over
// feather.toml.
func Load(dir string) (*Config, error) {
	for _, name := range []string{JSONFileName, TOMLFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E121").
		WithDetail("No feather.json or feather.toml found in " + dir).
		WithSuggestion("Create feather.json, or run without a config to use defaults")
}

// LoadFile reads configuration from path. The format follows the file
// extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E121").WithDetail("No file at " + path)
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, errors.New("E120").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid JSON").
				Wrap(err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, errors.New("E120").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid TOML").
				Wrap(err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New("E120").
				WithDetail("Unknown keys in " + filepath.Base(path) + ": " + strings.Join(keys, ", "))
		}
	default:
		return nil, errors.New("E122").WithDetail(path)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path in the format its extension
// names.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return errors.New("E120").Wrap(err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return errors.New("E120").Wrap(err)
		}
	default:
		return errors.New("E122").WithDetail(path)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()

	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}

	if c.Static.Prefix == "" {
		c.Static.Prefix = d.Static.Prefix
	}
	if c.Static.CacheControl == "" {
		c.Static.CacheControl = d.Static.CacheControl
	}

	if c.Render.PlaceholderPrefix == "" {
		c.Render.PlaceholderPrefix = d.Render.PlaceholderPrefix
	}
	if c.Render.ClientScript == "" {
		c.Render.ClientScript = d.Render.ClientScript
	}
	if c.Render.Lang == "" {
		c.Render.Lang = d.Render.Lang
	}

	if c.Export.Output == "" {
		c.Export.Output = d.Export.Output
	}
	if c.Export.Region == "" {
		c.Export.Region = d.Export.Region
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = d.Metrics.Path
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = d.Tracing.TracerName
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E123").
			WithDetail("server.port must be between 0 and 65535")
	}
	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return errors.New("E123").
			WithDetail("server.shutdownTimeout is not a duration: " + c.Server.ShutdownTimeout).
			WithSuggestion(`Use a Go duration such as "30s" or "1m"`)
	}
	switch c.Static.CacheControl {
	case "none", "production":
	default:
		return errors.New("E123").
			WithDetail(`static.cacheControl must be "none" or "production"`)
	}
	if p := c.Render.PlaceholderPrefix; p == "" || strings.ContainsAny(p, " \t\n\"'<>") {
		return errors.New("E123").
			WithDetail("render.placeholderPrefix must be a non-empty id-safe string")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return errors.New("E123").
			WithDetail("log.level must be debug, info, warn or error")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E123").
			WithDetail(`log.format must be "text" or "json"`)
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("E123").
			WithDetail("metrics.path must start with /")
	}
	return nil
}

// ServerAddress returns the listen address.
func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// ShutdownTimeout returns the parsed shutdown timeout, or 30s when the
// value does not parse.
func (c *Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// LogLevel returns the slog level named by Log.Level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}

// OutputPath returns the absolute path to the export directory.
func (c *Config) OutputPath() string {
	return c.resolve(c.Export.Output)
}

// ManifestPath returns the absolute path to the asset manifest, or "" when
// none is configured.
func (c *Config) ManifestPath() string {
	if c.Static.Manifest == "" {
		return ""
	}
	return c.resolve(c.Static.Manifest)
}

// PublicPath returns the absolute path to the static directory, or ""
// when static serving is disabled.
func (c *Config) PublicPath() string {
	if c.Static.Dir == "" {
		return ""
	}
	return c.resolve(c.Static.Dir)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists reports whether a config file exists in dir.
func Exists(dir string) bool {
	for _, name := range []string{JSONFileName, TOMLFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up from startDir to the first directory holding a
// config file.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E121").
				WithDetail("No feather.json or feather.toml found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working
// directory or its nearest ancestor with a config file.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}
	return Load(root)
}
