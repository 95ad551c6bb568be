package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty directory so a developer's own
// ~/.photomap config cannot leak into the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	d := Default()
	assert.Equal(t, d.Exiftool.Path, cfg.Exiftool.Path)
	assert.Equal(t, d.Exiftool.Args, cfg.Exiftool.Args)
	assert.Zero(t, cfg.Exiftool.Timeout)
	assert.Equal(t, d.Maps, cfg.Maps)
	assert.Empty(t, cfg.Browser.Command)
	assert.True(t, cfg.Browser.Open)
	assert.True(t, cfg.Metadata.CorruptFatal)
	assert.Equal(t, d.Log, cfg.Log)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "photomap.yaml")
	writeFile(t, path, `
exiftool:
  path: /opt/exiftool/exiftool
  timeout: 5s
maps:
  base_url: https://www.openstreetmap.org/search?query=
  precision: 4
browser:
  command: firefox
  args: [--new-tab]
  open: false
metadata:
  corrupt_fatal: false
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/exiftool/exiftool", cfg.Exiftool.Path)
	assert.Equal(t, []string{"-GPSPosition"}, cfg.Exiftool.Args)
	assert.Equal(t, 5*time.Second, cfg.Exiftool.Timeout)
	assert.Equal(t, "https://www.openstreetmap.org/search?query=", cfg.Maps.BaseURL)
	assert.Equal(t, 4, cfg.Maps.Precision)
	assert.Equal(t, "firefox", cfg.Browser.Command)
	assert.Equal(t, []string{"--new-tab"}, cfg.Browser.Args)
	assert.False(t, cfg.Browser.Open)
	assert.False(t, cfg.Metadata.CorruptFatal)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadHomeFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, DefaultConfigDir, "config.yaml"), "maps:\n  precision: 3\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Maps.Precision)
	assert.Equal(t, "exiftool", cfg.Exiftool.Path)
}

// chdir moves into dir until the test ends.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadIgnoresWorkingDirectory(t *testing.T) {
	isolate(t)
	t.Setenv("PHOTOMAP_MAPS_PRECISION", "")
	require.NoError(t, os.Unsetenv("PHOTOMAP_MAPS_PRECISION"))

	photos := t.TempDir()
	writeFile(t, filepath.Join(photos, "config.yaml"), "maps: [1, 2]\n")
	writeFile(t, filepath.Join(photos, "config.json"), `{"exiftool": {"path": "/tmp/other-tool"}}`)
	writeFile(t, filepath.Join(photos, ".env"), "PHOTOMAP_MAPS_PRECISION=1\n")
	chdir(t, photos)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "exiftool", cfg.Exiftool.Path)
	assert.Equal(t, 6, cfg.Maps.Precision)
}

func TestLoadHomeDotEnv(t *testing.T) {
	home := isolate(t)
	t.Setenv("PHOTOMAP_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("PHOTOMAP_LOG_LEVEL"))
	writeFile(t, filepath.Join(home, DefaultConfigDir, ".env"), "PHOTOMAP_LOG_LEVEL=debug\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PHOTOMAP_EXIFTOOL_PATH", "/usr/local/bin/exiftool")
	t.Setenv("PHOTOMAP_BROWSER_OPEN", "false")
	t.Setenv("PHOTOMAP_MAPS_PRECISION", "2")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/exiftool", cfg.Exiftool.Path)
	assert.False(t, cfg.Browser.Open)
	assert.Equal(t, 2, cfg.Maps.Precision)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, "maps:\n  precision: -1\n")

	_, err := Load(path)
	require.ErrorContains(t, err, "maps.precision")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty exiftool path", func(c *Config) { c.Exiftool.Path = " " }, "exiftool.path"},
		{"negative timeout", func(c *Config) { c.Exiftool.Timeout = -time.Second }, "exiftool.timeout"},
		{"empty base url", func(c *Config) { c.Maps.BaseURL = "" }, "maps.base_url"},
		{"negative precision", func(c *Config) { c.Maps.Precision = -2 }, "maps.precision"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}

	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()

	l := cfg.NewLogger(&buf)
	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")

	buf.Reset()
	cfg.Log = LogConfig{Level: "debug", Format: "json"}
	cfg.NewLogger(&buf).Debug("detail")
	assert.Contains(t, buf.String(), `"msg":"detail"`)
}
