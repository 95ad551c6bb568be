// Package exiftool captures the text output of the exiftool command for
// one image.
package exiftool

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/electronjoe/photomap/internal/config"
)

// ToolError reports that exiftool ran but exited with a non-zero status.
type ToolError struct {
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("exiftool exited with status %d", e.ExitCode)
	}
	return fmt.Sprintf("exiftool exited with status %d: %s", e.ExitCode, msg)
}

// Reader invokes the metadata tool for a single file.
type Reader struct {
	Runner  Runner
	Path    string
	Args    []string
	Timeout time.Duration
}

// NewReader builds a Reader backed by os/exec from the exiftool settings.
func NewReader(cfg config.ExiftoolConfig) *Reader {
	return &Reader{
		Runner:  ExecRunner{},
		Path:    cfg.Path,
		Args:    cfg.Args,
		Timeout: cfg.Timeout,
	}
}

// Read runs the tool against imagePath and returns its standard output.
// Bytes that are not valid UTF-8 are replaced with U+FFFD.
//
// A *ToolError is returned when the tool exits non-zero. Any other error
// means the tool could not be run at all.
func (r *Reader) Read(ctx context.Context, imagePath string) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	args := make([]string, 0, len(r.Args)+1)
	args = append(args, r.Args...)
	args = append(args, imagePath)

	res, err := r.Runner.Run(ctx, r.Path, args...)
	if err != nil {
		return "", fmt.Errorf("failed to execute %s: %w", r.Path, err)
	}
	if res.ExitCode != 0 {
		return "", &ToolError{ExitCode: res.ExitCode, Stderr: lossy(res.Stderr)}
	}
	return lossy(res.Stdout), nil
}

func lossy(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
