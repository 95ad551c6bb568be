// Package locate runs the whole photomap pipeline for one image: read the
// metadata, parse the GPS position and open it on a map.
package locate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/electronjoe/photomap/internal/exiftool"
	"github.com/electronjoe/photomap/internal/gps"
	"github.com/electronjoe/photomap/internal/log"
)

// NotFoundMessage is printed to the error stream when no coordinate could
// be extracted.
const NotFoundMessage = "No GPS data found in the image."

// MetadataReader returns the metadata tool's text output for an image.
type MetadataReader interface {
	Read(ctx context.Context, imagePath string) (string, error)
}

// MapLauncher prints and opens the map URL for a coordinate.
type MapLauncher interface {
	Launch(c gps.Coordinate) (string, error)
}

// Outcome tells whether a coordinate was found.
type Outcome int

const (
	NotFound Outcome = iota
	Found
)

// Result describes one run of the pipeline.
type Result struct {
	Outcome    Outcome
	Coordinate gps.Coordinate
	URL        string
}

// Service wires the pipeline steps together.
type Service struct {
	Reader   MetadataReader
	Launcher MapLauncher
	Out      io.Writer // diagnostic output (stdout)
	Err      io.Writer // user-facing error messages (stderr)
	Logger   *slog.Logger

	// CorruptFatal makes an unparsable numeric token abort the run instead
	// of being treated as "no GPS data".
	CorruptFatal bool
}

// Run extracts the GPS position of imagePath and opens it on a map.
//
// Only failures that must stop the program are returned: the metadata tool
// could not be started, or (when CorruptFatal is set) the GPS line held a
// token that is not a number. Every other failure is reported and yields a
// NotFound result.
func (s *Service) Run(ctx context.Context, imagePath string) (Result, error) {
	c, err := s.extract(ctx, imagePath)
	if err != nil {
		if errors.Is(err, errNotFound) {
			fmt.Fprintln(s.errOut(), NotFoundMessage)
			return Result{Outcome: NotFound}, nil
		}
		return Result{}, err
	}

	fmt.Fprintf(s.out(), "GPS Coordinates: %s\n", c)
	log.Info(ctx, s.Logger, "gps position found", log.Path(imagePath), slog.String("coordinate", c.String()))
	if !c.InRange() {
		log.Warn(ctx, s.Logger, "coordinate out of range",
			slog.Float64("latitude", c.Latitude),
			slog.Float64("longitude", c.Longitude),
		)
	}

	u, err := s.Launcher.Launch(c)
	if err != nil {
		fmt.Fprintf(s.errOut(), "Failed to open URL in the browser: %v\n", err)
		log.Debug(ctx, s.Logger, "opener failed", log.Err("error", err))
	}
	return Result{Outcome: Found, Coordinate: c, URL: u}, nil
}

var errNotFound = errors.New("no coordinate")

func (s *Service) extract(ctx context.Context, imagePath string) (gps.Coordinate, error) {
	text, err := s.Reader.Read(ctx, imagePath)
	if err != nil {
		var toolErr *exiftool.ToolError
		if errors.As(err, &toolErr) {
			fmt.Fprintf(s.errOut(), "Error running exiftool: %s\n", toolErr.Stderr)
			log.Debug(ctx, s.Logger, "exiftool failed",
				log.Path(imagePath),
				slog.Int("exit_code", toolErr.ExitCode),
			)
			return gps.Coordinate{}, errNotFound
		}
		return gps.Coordinate{}, err
	}

	fmt.Fprintf(s.out(), "Full exiftool output:\n%s\n", text)

	c, err := gps.Parse(text, s.out())
	if err == nil {
		return c, nil
	}

	var formatErr *gps.FormatError
	var corrupt *gps.CorruptMetadataError
	switch {
	case errors.Is(err, gps.ErrNoGPSData):
		fmt.Fprintln(s.errOut(), "No GPS data found.")
	case errors.As(err, &formatErr):
		fmt.Fprintf(s.errOut(), "Unexpected %s format: %q\n", formatErr.Axis, formatErr.Tokens)
	case errors.Is(err, gps.ErrUnexpectedFormat):
		fmt.Fprintln(s.errOut(), "Unexpected GPS format.")
	case errors.As(err, &corrupt):
		if s.CorruptFatal {
			return gps.Coordinate{}, fmt.Errorf("corrupt metadata in %s: %w", imagePath, err)
		}
		log.Warn(ctx, s.Logger, "ignoring corrupt GPS metadata", log.Path(imagePath), log.Err("error", err))
	default:
		return gps.Coordinate{}, err
	}
	return gps.Coordinate{}, errNotFound
}

func (s *Service) out() io.Writer {
	if s.Out == nil {
		return io.Discard
	}
	return s.Out
}

func (s *Service) errOut() io.Writer {
	if s.Err == nil {
		return io.Discard
	}
	return s.Err
}
