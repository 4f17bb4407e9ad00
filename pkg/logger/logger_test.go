package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithWriter_AddsServiceField(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("admin-service", "debug", &buf)

	Info().Str("resource", "brands").Msg("list loaded")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "admin-service", entry["service"])
	assert.Equal(t, "brands", entry["resource"])
	assert.Equal(t, "info", entry["level"])
}

func TestInitWithWriter_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("admin-service", "loud", &buf)

	Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	Info().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestView_CarriesViewContext(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("admin-service", "info", &buf)

	l := View("v-1", "list", "orders")
	l.Info().Msg("mounted")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "v-1", entry["view_id"])
	assert.Equal(t, "list", entry["view_kind"])
	assert.Equal(t, "orders", entry["resource"])
}
