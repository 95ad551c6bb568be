// Package maps builds map-search URLs for coordinates and hands them to
// the system's URL handler.
package maps

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/electronjoe/photomap/internal/config"
	"github.com/electronjoe/photomap/internal/gps"
)

// Launcher formats and opens map URLs.
type Launcher struct {
	BaseURL   string
	Precision int
	Command   string
	Args      []string
	Open      bool
	Starter   Starter
	Out       io.Writer
}

// NewLauncher builds a Launcher from the maps and browser settings. The
// opener falls back to the platform default when none is configured.
func NewLauncher(m config.MapsConfig, b config.BrowserConfig, out io.Writer) *Launcher {
	command, args := b.Command, b.Args
	if command == "" {
		command, args = OpenerCommand(runtime.GOOS)
	}
	return &Launcher{
		BaseURL:   m.BaseURL,
		Precision: m.Precision,
		Command:   command,
		Args:      args,
		Open:      b.Open,
		Starter:   ExecStarter{},
		Out:       out,
	}
}

// URL returns the map-search URL for c, latitude first.
func (l *Launcher) URL(c gps.Coordinate) string {
	return l.BaseURL + FormatDegrees(c.Latitude, l.Precision) + "," + FormatDegrees(c.Longitude, l.Precision)
}

// Launch prints the URL for c and, when opening is enabled, starts the URL
// handler on it without waiting. The URL is returned even when the handler
// could not be started.
func (l *Launcher) Launch(c gps.Coordinate) (string, error) {
	u := l.URL(c)
	if l.Out != nil {
		fmt.Fprintf(l.Out, "Opening the following URL:\n%s\n", u)
	}
	if !l.Open {
		return u, nil
	}

	args := make([]string, 0, len(l.Args)+1)
	args = append(args, l.Args...)
	args = append(args, u)
	return u, l.Starter.Start(l.Command, args...)
}

// FormatDegrees renders v with at most precision decimals, dropping
// trailing zeros.
func FormatDegrees(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
