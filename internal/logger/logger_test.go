package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLogger_RoleField verifies that every entry carries the role field.
func TestNewLogger_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&buf, "info", "session")
	require.NoError(t, err)

	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "session", entry["role"])
	assert.Equal(t, "hello", entry["message"])
	_, hasTime := entry["time"]
	assert.True(t, hasTime, "expected 'time' field in log entry")
}

// TestNewLogger_LevelFilters verifies that entries below the level are dropped.
func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&buf, "warn", "session")
	require.NoError(t, err)

	l.Info().Msg("dropped")
	assert.Empty(t, buf.String())

	l.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

// TestNewLogger_DefaultLevel verifies that an empty level means warn.
func TestNewLogger_DefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&buf, "", "session")
	require.NoError(t, err)

	l.Debug().Msg("dropped")
	assert.Empty(t, buf.String())
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(&bytes.Buffer{}, "loud", "session")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestNewConsoleLogger_HumanReadable(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewConsoleLogger(&buf, "debug", "stream")
	require.NoError(t, err)

	l.Info().Msg("subscribed")

	assert.Contains(t, buf.String(), "subscribed")
	assert.False(t, json.Valid(buf.Bytes()), "console output should not be JSON")
}

func TestWithField_AddsField(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&buf, "info", "session")
	require.NoError(t, err)

	l.WithField("op_id", "abc").Info().Msg("submit")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc", entry["op_id"])
}

// TestNop_DiscardsOutput verifies that a Nop logger produces no output.
func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String(), "Nop logger should produce no output")
}
