package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	assert.NoError(t, os.Setenv("APP_ENV", "dev"))
	defer func() { assert.NoError(t, os.Unsetenv("APP_ENV")) }()
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Infow("info", map[string]any{"k": 2})
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLoggerWithWriter("engine", &buf, zerolog.InfoLevel)
	l.Debugf("hidden")
	l.Infow("run done", map[string]any{"bookings": 3})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "engine", entry["component"])
	assert.Equal(t, "run done", entry["message"])
	assert.Equal(t, float64(3), entry["bookings"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestConfigure(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	Configure("warn", false)
	defer Configure("info", false)

	l, ok := NewZerologLogger("cfg").(*ZerologLogger)
	require.True(t, ok)
	assert.Equal(t, zerolog.WarnLevel, l.log.GetLevel())

	t.Setenv("LOG_LEVEL", "debug")
	l, ok = NewZerologLogger("cfg").(*ZerologLogger)
	require.True(t, ok)
	assert.Equal(t, zerolog.DebugLevel, l.log.GetLevel())
}
