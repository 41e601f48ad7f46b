package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"":      zapcore.InfoLevel,
		"INFO":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for input, want := range cases {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", &buf)
	require.NoError(t, err)

	logger.Info("registered abstract type", "type", "duration")
	logger.V(1).Info("hidden at info")
	require.NoError(t, logger.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "registered abstract type", entry[MessageKey])
	assert.Equal(t, "duration", entry["type"])
	assert.Contains(t, entry, TimeStampKey)
}

func TestNew_DebugEnablesVerbosity(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("debug", &buf)
	require.NoError(t, err)

	logger.V(1).Info("session detail")
	require.NoError(t, logger.Sync())
	assert.Contains(t, buf.String(), "session detail")
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", &buf)
	require.NoError(t, err)

	ctx := WithLogger(context.Background(), logger.Logger)
	FromContext(ctx).Info("from context")
	require.NoError(t, logger.Sync())
	assert.Contains(t, buf.String(), "from context")

	assert.False(t, FromContext(context.Background()).Enabled())
}
