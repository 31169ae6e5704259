package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "warn", FormatJSON)
	require.NoError(t, err)

	l = Component(l, "catalog")
	l.Info().Msg("dropped")
	l.Warn().Str("id", "abc").Msg("kept")

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "warn", event["level"])
	assert.Equal(t, "catalog", event["component"])
	assert.Equal(t, "abc", event["id"])
	assert.Equal(t, "kept", event["message"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "", FormatConsole)
	require.NoError(t, err)

	l.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", FormatJSON)
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}
