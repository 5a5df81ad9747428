package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"Debug", LevelDebug},
		{"dEbUg", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatJSON, ParseFormat("Json"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat("yaml"))
	assert.Equal(t, FormatText, ParseFormat(""))
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelWarn, Format: FormatText, Output: &buf})

	log.Info("hidden")
	log.Warn("shown", "path", "a/b")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "path=a/b")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	Component(New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf}), "bruno").Info("parsed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "parsed", entry["msg"])
	assert.Equal(t, "bruno", entry["component"])
}

func TestOpen_TeesToFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "run.log")

	log, closeLog, err := Open(Config{Level: LevelInfo, Output: &console, File: path})
	require.NoError(t, err)
	log.With("run", "r1").Warn("folder not found", "folder", "Legacy")
	require.NoError(t, closeLog())

	assert.Contains(t, console.String(), "folder=Legacy")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "folder not found", entry["msg"])
	assert.Equal(t, "r1", entry["run"])
}

func TestOpen_NoFile(t *testing.T) {
	var console bytes.Buffer
	log, closeLog, err := Open(Config{Level: LevelInfo, Output: &console})
	require.NoError(t, err)
	log.Info("hello")
	assert.NoError(t, closeLog())
	assert.Contains(t, console.String(), "hello")
}

func TestNop(t *testing.T) {
	assert.False(t, Nop().Enabled(context.Background(), LevelError))
	assert.NotNil(t, Component(nil, "x"))
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("disk full") }

func TestMultiHandler(t *testing.T) {
	var debug, warn bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: LevelDebug}),
		slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: LevelWarn}),
	)
	log := slog.New(h).WithGroup("g").With("k", "v")

	assert.True(t, h.Enabled(context.Background(), LevelDebug))
	log.Debug("detail")
	log.Warn("problem")

	assert.Equal(t, 2, strings.Count(debug.String(), "g.k=v"))
	assert.NotContains(t, warn.String(), "detail")
	assert.Contains(t, warn.String(), "problem")
}

func TestMultiHandler_JoinsErrors(t *testing.T) {
	var buf bytes.Buffer
	ok := slog.NewTextHandler(&buf, nil)
	h := NewMultiHandler(failingHandler{ok}, ok)

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), LevelInfo, "m", 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, buf.String(), "msg=m")
}
