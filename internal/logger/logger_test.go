package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true, time.UTC)

	l.Debug().Msg("hidden")
	db := Component(l, "database")
	db.Info().Str("event", "db_migration_skip").Msg("schema already exists")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "database", entry["component"])
	assert.Equal(t, "db_migration_skip", entry["event"])
	assert.NotEmpty(t, entry["ts"])
}

func TestNew_TimestampInLocation(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true, time.FixedZone("WIB", 7*3600))

	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	ts, ok := entry["ts"].(string)
	require.True(t, ok)
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	require.NoError(t, err)
	_, offset := parsed.Zone()
	assert.Equal(t, 7*3600, offset)
}

func TestNew_LeavesGlobalsAlone(t *testing.T) {
	field, format := zerolog.TimestampFieldName, zerolog.TimeFieldFormat

	New(&bytes.Buffer{}, true, time.FixedZone("X", 3600))
	New(&bytes.Buffer{}, false, nil)

	assert.Equal(t, field, zerolog.TimestampFieldName)
	assert.Equal(t, format, zerolog.TimeFieldFormat)
}

func TestNew_DevelopmentIsConsole(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false, nil)

	l.Debug().Msg("visible")

	assert.Contains(t, buf.String(), "visible")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
