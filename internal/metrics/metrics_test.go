package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessing(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewProcessing(reg)
	require.NoError(t, err)

	m.ObserveImage("PNG", 2, 30*time.Millisecond)
	m.ObserveImage("PNG", 0, 10*time.Millisecond)
	m.ObserveImage("JPEG", 1, 10*time.Millisecond)
	m.ObserveBatch(OutcomeSuccess)
	m.ObserveBatch(OutcomeFailed)
	m.ObserveBatch(OutcomeFailed)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.imagesProcessed.WithLabelValues("PNG")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.imagesProcessed.WithLabelValues("JPEG")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.regionsDetected))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.batches.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestProcessing_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewProcessing(reg)
	require.NoError(t, err)

	_, err = NewProcessing(reg)
	assert.Error(t, err)
}

func TestProcessing_NilIsNoop(t *testing.T) {
	var m *Processing
	assert.NotPanics(t, func() {
		m.ObserveImage("PNG", 1, time.Millisecond)
		m.ObserveBatch(OutcomeSuccess)
	})
}
