package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/medtrack/internal/config"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.Log{Level: "warn", Format: "text"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "medicine_id", "m1")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "medicine_id=m1")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.Log{Level: "DEBUG", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("queued", "medicine_id", "m1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "queued", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "m1", rec["medicine_id"])
}

func TestNewRejectsUnknown(t *testing.T) {
	_, err := New(config.Log{Level: "loud"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown log level")

	_, err = New(config.Log{Level: "info", Format: "xml"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown log format")
}
