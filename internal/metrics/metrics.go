// Package metrics holds the Prometheus collectors describing image processing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Batch outcomes recorded by ObserveBatch.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Processing groups the domain collectors. A nil *Processing is valid and
// records nothing, which keeps tests free of registry plumbing.
type Processing struct {
	imagesProcessed *prometheus.CounterVec
	regionsDetected prometheus.Counter
	batches         *prometheus.CounterVec
	duration        prometheus.Histogram
}

// NewProcessing creates the collectors and registers them with reg.
func NewProcessing(reg prometheus.Registerer) (*Processing, error) {
	m := &Processing{
		imagesProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrcut_images_processed_total",
				Help: "Total number of images processed, by output format.",
			},
			[]string{"format"},
		),
		regionsDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qrcut_qr_regions_detected_total",
			Help: "Total number of QR regions detected and masked.",
		}),
		batches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrcut_batches_total",
				Help: "Total number of processing batches, by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "qrcut_image_processing_seconds",
			Help:    "Time spent decoding, detecting, masking and encoding one image.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{m.imagesProcessed, m.regionsDetected, m.batches, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveImage records one processed image.
func (m *Processing) ObserveImage(format string, regions int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.imagesProcessed.WithLabelValues(format).Inc()
	m.regionsDetected.Add(float64(regions))
	m.duration.Observe(elapsed.Seconds())
}

// ObserveBatch records the outcome of one request.
func (m *Processing) ObserveBatch(outcome string) {
	if m == nil {
		return
	}
	m.batches.WithLabelValues(outcome).Inc()
}
