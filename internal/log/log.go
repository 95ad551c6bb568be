// Package log wraps log/slog with statically typed attribute helpers.
// Debug, Info and Warn take a context, a message and slog.Attr
// values and log them through the given logger (or slog.Default when
// the logger is nil), keeping the caller's source position.
package log

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// Debug logs msg and attrs at the debug level.
func Debug(ctx context.Context, l *slog.Logger, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, l, slog.LevelDebug, msg, attrs...)
}

// Info logs msg and attrs at the info level.
func Info(ctx context.Context, l *slog.Logger, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, l, slog.LevelInfo, msg, attrs...)
}

// Warn logs msg and attrs at the warning level.
func Warn(ctx context.Context, l *slog.Logger, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, l, slog.LevelWarn, msg, attrs...)
}

// logAttrs must only be called by the exported helpers above, since it
// skips exactly one frame of this package when recording the caller.
func logAttrs(
	ctx context.Context,
	l *slog.Logger,
	level slog.Level,
	msg string,
	attrs ...slog.Attr,
) {
	if l == nil {
		l = slog.Default()
	}
	if !l.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	// runtime.Callers, logAttrs and the exported helper
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(ctx, r)
}

// Err returns an Attr holding err.Error(), or "no-error" for nil.
func Err(key string, err error) slog.Attr {
	if err == nil {
		return slog.String(key, "no-error")
	}
	return slog.String(key, err.Error())
}

// Path returns an Attr for a file-system path.
func Path(path string) slog.Attr {
	return slog.String("path", path)
}
