package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DefaultConfigDir is searched (relative to the user's home) when no
	// explicit config path is given.
	DefaultConfigDir = ".photomap"
	envPrefix        = "PHOTOMAP"
)

// Config holds every tunable of the photomap pipeline.
type Config struct {
	Exiftool ExiftoolConfig `mapstructure:"exiftool"`
	Maps     MapsConfig     `mapstructure:"maps"`
	Browser  BrowserConfig  `mapstructure:"browser"`
	Metadata MetadataConfig `mapstructure:"metadata"`
	Log      LogConfig      `mapstructure:"log"`
}

// ExiftoolConfig describes how the metadata tool is invoked.
type ExiftoolConfig struct {
	Path    string        `mapstructure:"path"`
	Args    []string      `mapstructure:"args"`
	Timeout time.Duration `mapstructure:"timeout"` // zero waits forever
}

// MapsConfig describes the map-search endpoint.
type MapsConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	Precision int    `mapstructure:"precision"`
}

// BrowserConfig selects the URL opener. An empty Command picks one by OS.
type BrowserConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
	Open    bool     `mapstructure:"open"`
}

// MetadataConfig controls how malformed metadata is treated.
type MetadataConfig struct {
	CorruptFatal bool `mapstructure:"corrupt_fatal"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Exiftool: ExiftoolConfig{
			Path: "exiftool",
			Args: []string{"-GPSPosition"},
		},
		Maps: MapsConfig{
			BaseURL:   "https://www.google.com/maps/search/?api=1&query=",
			Precision: 6,
		},
		Browser: BrowserConfig{
			Open: true,
		},
		Metadata: MetadataConfig{
			CorruptFatal: true,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads the configuration from path (or ~/.photomap/config.* when
// path is empty), ~/.photomap/.env and PHOTOMAP_* environment variables.
// Nothing is read from the working directory, which is usually just where
// the photos are. A missing config file is not an error.
func Load(path string) (*Config, error) {
	if homeDir, err := os.UserHomeDir(); err == nil {
		// .env is optional; the real environment always wins over it.
		_ = godotenv.Load(filepath.Join(homeDir, DefaultConfigDir, ".env"))
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("$HOME/" + DefaultConfigDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("exiftool.path", d.Exiftool.Path)
	v.SetDefault("exiftool.args", d.Exiftool.Args)
	v.SetDefault("exiftool.timeout", d.Exiftool.Timeout)
	v.SetDefault("maps.base_url", d.Maps.BaseURL)
	v.SetDefault("maps.precision", d.Maps.Precision)
	v.SetDefault("browser.command", d.Browser.Command)
	v.SetDefault("browser.args", d.Browser.Args)
	v.SetDefault("browser.open", d.Browser.Open)
	v.SetDefault("metadata.corrupt_fatal", d.Metadata.CorruptFatal)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Exiftool.Path) == "" {
		return errors.New("config: exiftool.path must not be empty")
	}
	if c.Exiftool.Timeout < 0 {
		return fmt.Errorf("config: exiftool.timeout must not be negative, got %s", c.Exiftool.Timeout)
	}
	if strings.TrimSpace(c.Maps.BaseURL) == "" {
		return errors.New("config: maps.base_url must not be empty")
	}
	if c.Maps.Precision < 0 {
		return fmt.Errorf("config: maps.precision must not be negative, got %d", c.Maps.Precision)
	}
	return nil
}

// NewLogger creates a slog.Logger writing to w based on the configuration.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
