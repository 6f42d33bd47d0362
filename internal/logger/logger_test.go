package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	_, err := New(&bytes.Buffer{}, "loud")
	require.Error(t, err)
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l, err := New(&buf, "warn")
	require.NoError(t, err)

	l.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	l.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNamed_AddsComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	root, err := NewJSON(&buf, "info")
	require.NoError(t, err)

	l := root.Named("layered")
	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Contains(t, buf.String(), `"component":"layered"`)
}

func TestNop_DiscardsOutput(t *testing.T) {
	t.Parallel()

	l := Nop()
	require.NotNil(t, l)
	l.Error().Msg("nothing")
}

func TestOpen(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l, err := Open(&buf, "debug", FormatJSON)
	require.NoError(t, err)

	l.Debug().Str("slot", "passphrase1").Msg("decrypted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "passphrase1", entry["slot"])

	buf.Reset()

	l, err = Open(&buf, "info", FormatConsole)
	require.NoError(t, err)

	l.Info().Msg("console line")
	assert.Contains(t, buf.String(), "console line")
	assert.False(t, json.Valid(buf.Bytes()))

	_, err = Open(&buf, "info", "xml")
	require.Error(t, err)

	_, err = Open(&buf, "loud", FormatJSON)
	require.Error(t, err)
}
