package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/msalah0e/devdeck/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestPrettyHandler(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	log := New(&buf, config.LogConfig{Level: "debug", Format: "pretty"})
	log.With("view", "architecture").WithGroup("drag").Debug("drag start", "node", "api")

	line := buf.String()
	assert.Contains(t, line, "DEBUG drag start")
	assert.Contains(t, line, "view=architecture")
	assert.Contains(t, line, "drag.node=api")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestPrettyHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, config.LogConfig{Level: "warn"})
	log.Info("hidden")
	assert.Empty(t, buf.String())
	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, config.LogConfig{Level: "info", Format: "json"})
	log.Info("listening", "addr", ":8080")
	assert.Contains(t, buf.String(), `"msg":"listening"`)
	assert.Contains(t, buf.String(), `"addr":":8080"`)
}
