package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	storeMocks "qrcut/internal/storage/mocks"
)

func TestCleanup_Run(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-24 * time.Hour)

	t.Run("sweeps both prefixes", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		c := NewCleanup(mStore, 24*time.Hour, zerolog.Nop())
		c.now = func() time.Time { return now }

		mStore.On("Sweep", ctx, "uploads", cutoff).Return(3, nil).Once()
		mStore.On("Sweep", ctx, "processed", cutoff).Return(2, nil).Once()

		assert.Equal(t, 5, c.Run(ctx))
		mStore.AssertExpectations(t)
	})

	t.Run("failing prefix does not stop the rest", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		c := NewCleanup(mStore, 24*time.Hour, zerolog.Nop())
		c.now = func() time.Time { return now }

		mStore.On("Sweep", ctx, "uploads", cutoff).Return(1, errors.New("list failed")).Once()
		mStore.On("Sweep", ctx, "processed", cutoff).Return(4, nil).Once()

		assert.Equal(t, 5, c.Run(ctx))
		mStore.AssertExpectations(t)
	})
}

func TestScheduler(t *testing.T) {
	t.Run("empty schedule is idle", func(t *testing.T) {
		s := NewScheduler(NewCleanup(new(storeMocks.MockStorage), time.Hour, zerolog.Nop()), "", zerolog.Nop())
		require.NoError(t, s.Start())
		assert.Empty(t, s.cron.Entries())
		s.Stop(time.Second)
	})

	t.Run("invalid schedule", func(t *testing.T) {
		s := NewScheduler(NewCleanup(new(storeMocks.MockStorage), time.Hour, zerolog.Nop()), "not a schedule", zerolog.Nop())
		assert.Error(t, s.Start())
	})

	t.Run("runs the sweep", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		swept := make(chan struct{}, 4)
		mStore.On("Sweep", mock.Anything, "uploads", mock.Anything).Return(0, nil)
		mStore.On("Sweep", mock.Anything, "processed", mock.Anything).Run(func(mock.Arguments) {
			swept <- struct{}{}
		}).Return(0, nil)

		s := NewScheduler(NewCleanup(mStore, time.Hour, zerolog.Nop()), "* * * * * *", zerolog.Nop())
		require.NoError(t, s.Start())
		defer s.Stop(time.Second)

		select {
		case <-swept:
		case <-time.After(3 * time.Second):
			t.Fatal("sweep did not run")
		}
	})
}
