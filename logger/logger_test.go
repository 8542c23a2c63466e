package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(buf *bytes.Buffer) *ZeroLogger {
	l := zerolog.New(buf).Level(zerolog.DebugLevel)
	return &ZeroLogger{zlog: &l}
}

func TestNewFallsBackToInfoOnBadLevel(t *testing.T) {
	l := New("not-a-level", false)
	require.NotNil(t, l)
	assert.Equal(t, zerolog.InfoLevel, l.zlog.GetLevel())
}

func TestLogEventFields(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	l.Info().
		Str("query", "SELECT 1").
		Int("rows", 3).
		Int64("elapsed_ns", 42).
		Bool("cached", false).
		Msg("query complete")

	out := buf.String()
	assert.Contains(t, out, `"query":"SELECT 1"`)
	assert.Contains(t, out, `"rows":3`)
	assert.Contains(t, out, `"cached":false`)
	assert.Contains(t, out, "query complete")
}

func TestSensitiveFieldsAreRedacted(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	l.Warn().
		Str("password", "hunter2").
		Str("username", "alice").
		Msg("credentials seen")

	out := buf.String()
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, redactedValue)
	assert.Contains(t, out, "alice")
}

func TestWithFieldsRedacts(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	child := l.WithFields(map[string]any{"token": "abc123", "host": "db1"})
	child.Info().Msg("connected")

	out := buf.String()
	assert.NotContains(t, out, "abc123")
	assert.Contains(t, out, "db1")
}

func TestWithContextWithoutLoggerReturnsSelf(t *testing.T) {
	l := New("debug", false)
	assert.Same(t, l, l.WithContext(context.Background()))
	assert.Same(t, l, l.WithContext("not a context"))
}
