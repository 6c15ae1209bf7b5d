package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultListenAddr is the service's fixed default port.
	DefaultListenAddr = ":5000"

	// DefaultShutdownGrace bounds how long in-flight requests get to
	// finish during graceful shutdown.
	DefaultShutdownGrace = 10 * time.Second
)

// Config holds service configuration loaded from a YAML file. Every
// field is optional; the zero file yields pure defaults, so running
// without any config file preserves the stock behavior.
type Config struct {
	ListenAddr    string   `yaml:"listen_addr"`
	LogLevel      string   `yaml:"log_level"`
	ShutdownGrace Duration `yaml:"shutdown_grace"`
}

// Duration wraps time.Duration for YAML unmarshaling from strings like "10s", "5m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return d.Duration.String(), nil
}

// Default returns a config with all defaults applied.
func Default() *Config {
	return &Config{
		ListenAddr:    DefaultListenAddr,
		LogLevel:      "info",
		ShutdownGrace: Duration{DefaultShutdownGrace},
	}
}

// Load reads a YAML config file from path. A missing, empty, or
// all-comment file returns defaults and no error; only unreadable or
// malformed files are errors.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.ShutdownGrace.Duration <= 0 {
		cfg.ShutdownGrace = Duration{DefaultShutdownGrace}
	}
	return cfg, nil
}

// Level maps the configured log level onto a slog level.
func (c *Config) Level() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
}
