package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"preset": "material", "format": "css"})
	log.Info("theme generated")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "theme generated", entry["message"])
	require.Equal(t, "material", entry["preset"])
	require.Equal(t, "css", entry["format"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log.Debug("this should not appear")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"file": "delvui.theme.yaml"})
	log.Error(errors.New("boom"), "rebuild failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "rebuild failed", entry["message"])
	require.Equal(t, "delvui.theme.yaml", entry["file"])
	require.Equal(t, "boom", entry["error"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestOptionsFor(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}

	opts, err := OptionsFor("warn", "json", false, buf)
	require.NoError(t, err)
	require.False(t, opts.HumanReadable)
	require.Equal(t, "warn", opts.Level)

	opts, err = OptionsFor("info", "", true, buf)
	require.NoError(t, err)
	require.True(t, opts.HumanReadable)
	require.True(t, opts.NoColor, "buffers are never terminals")
	require.Equal(t, "debug", opts.Level)

	_, err = OptionsFor("info", "xml", false, buf)
	require.Error(t, err)
}

func TestConsoleOutputIsHumanReadable(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	opts, err := OptionsFor("info", "console", false, buf)
	require.NoError(t, err)

	log, err := New(opts)
	require.NoError(t, err)
	log.Info("watching")

	require.Contains(t, buf.String(), "watching")
	require.False(t, json.Valid(buf.Bytes()))
}

func TestNilAndNopLoggersAreSafe(t *testing.T) {
	t.Parallel()

	var log *Logger
	log.Info("ignored")
	log.Error(errors.New("x"), "ignored")
	require.Nil(t, log.WithFields(map[string]any{"a": 1}))

	Nop().Warn("discarded")
}
