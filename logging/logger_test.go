package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "test"})
	t.Cleanup(func() { Configure(Config{}) })

	l := WithComponent("bola")
	l.Info().Float64("v", 0.93).Msg("parameters")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "bola", entry["component"])
	assert.Equal(t, "test", entry["service"])
	assert.Equal(t, "parameters", entry["message"])
	assert.InDelta(t, 0.93, entry["v"], 1e-9)
}

func TestDebugPrint(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf})
	t.Cleanup(func() { Configure(Config{}) })

	DebugPrint(false, "DEBUG: ", "dropped")
	assert.Zero(t, buf.Len())

	DebugPrint(true, "DEBUG: ", "kept")
	assert.Contains(t, buf.String(), `"message":"kept"`)
	assert.Contains(t, buf.String(), `"prefix":"DEBUG: "`)
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "warn", Output: &buf})
	t.Cleanup(func() { Configure(Config{}) })

	l := Base()
	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())
	l.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
