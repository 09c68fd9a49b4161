package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestWithAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Format: "json", Output: &buf}).With("component", "session")

	log.Info("enrolled", "slot", 3)
	log.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, `"component":"session"`)
	assert.Contains(t, out, `"slot":3`)
	assert.NotContains(t, out, "hidden")
}
