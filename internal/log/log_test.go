package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	assert.Equal(t, "no-error", Err("error", nil).Value.String())
	assert.Equal(t, "boom", Err("error", errors.New("boom")).Value.String())
}

func TestLevelsAndSource(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo, AddSource: true}))
	ctx := context.Background()

	Debug(ctx, l, "dropped")
	Info(ctx, l, "kept", Path("/tmp/a.jpg"))
	Warn(ctx, l, "warned")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "msg=kept path=/tmp/a.jpg")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "msg=warned")
	assert.Contains(t, out, "log_test.go")
}
