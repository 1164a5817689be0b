// Package jobs runs background maintenance: the retention sweep of stored artifacts.
package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"qrcut/internal/storage"
)

// Prefixes swept by Cleanup.
var SweptPrefixes = []string{"uploads", "processed"}

// Cleanup deletes stored artifacts older than the retention window.
type Cleanup struct {
	store     storage.Storage
	retention time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewCleanup(store storage.Storage, retention time.Duration, log zerolog.Logger) *Cleanup {
	return &Cleanup{
		store:     store,
		retention: retention,
		log:       log.With().Str("component", "cleanup").Logger(),
		now:       time.Now,
	}
}

// Run sweeps every prefix once and returns the number of removed artifacts.
// A failing prefix is logged and does not stop the others.
func (c *Cleanup) Run(ctx context.Context) int {
	start := time.Now()
	cutoff := c.now().Add(-c.retention)
	total := 0
	for _, prefix := range SweptPrefixes {
		n, err := c.store.Sweep(ctx, prefix, cutoff)
		total += n
		if err != nil {
			c.log.Error().Err(err).Str("event", "sweep_failed").Str("prefix", prefix).Msg("retention sweep failed")
			continue
		}
		c.log.Debug().Str("event", "sweep_prefix").Str("prefix", prefix).Int("removed", n).Msg("prefix swept")
	}
	c.log.Info().
		Str("event", "sweep_done").
		Int("removed", total).
		Time("cutoff", cutoff).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("retention sweep finished")
	return total
}
