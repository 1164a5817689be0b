// Package logger builds the zerolog logger shared by the API and its jobs.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// TimestampField is the field every entry carries its timestamp in.
const TimestampField = "ts"

// New returns a logger writing JSON lines to w in production and a
// human-readable console format otherwise. Timestamps use the "ts" field
// rendered in loc. zerolog's package-level settings are left untouched.
func New(w io.Writer, production bool, loc *time.Location) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	if loc == nil {
		loc = time.UTC
	}

	level := zerolog.DebugLevel
	if production {
		level = zerolog.InfoLevel
	} else {
		w = zerolog.ConsoleWriter{
			Out:           w,
			PartsOrder:    []string{TimestampField, zerolog.LevelFieldName, zerolog.CallerFieldName, zerolog.MessageFieldName},
			FieldsExclude: []string{TimestampField},
		}
	}

	return zerolog.New(w).Level(level).Hook(timestampHook(loc))
}

func timestampHook(loc *time.Location) zerolog.HookFunc {
	return func(e *zerolog.Event, _ zerolog.Level, _ string) {
		e.Str(TimestampField, time.Now().In(loc).Format(time.RFC3339Nano))
	}
}

// Component returns a child logger tagged with the given component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
