// Package metrics exposes Prometheus collectors for sync activity.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ccfrost/climbsync/internal/lib"
)

const namespace = "climbsync"

// Metrics implements lib.SyncObserver. A nil *Metrics records nothing.
type Metrics struct {
	uploads     *prometheus.CounterVec
	runs        *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
	pending     prometheus.Gauge
	lastSuccess prometheus.Gauge
}

var _ lib.SyncObserver = (*Metrics)(nil)

// MustNewMetrics registers the collectors with reg and panics on a conflict.
// A nil reg uses the default registerer.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "uploads_total",
				Help:      "Upload attempts by result (success or error kind).",
			},
			[]string{"result"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_runs_total",
				Help:      "Finished sync runs by status.",
			},
			[]string{"status"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "sync_duration_seconds",
				Help:      "Wall time of sync runs.",
				Buckets:   []float64{0.1, 1, 10, 60, 300, 900, 3600},
			},
			[]string{"status"},
		),
		pending: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "pending_videos",
				Help:      "Videos waiting to be uploaded when the last run listed the folder.",
			},
		),
		lastSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the last run that succeeded or had nothing to do.",
			},
		),
	}
	reg.MustRegister(m.uploads, m.runs, m.runDuration, m.pending, m.lastSuccess)
	return m
}

// ObserveUpload counts one upload attempt.
func (m *Metrics) ObserveUpload(kind string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(kind).Inc()
}

// ObservePending records how many videos a run is about to upload.
func (m *Metrics) ObservePending(n int) {
	if m == nil {
		return
	}
	m.pending.Set(float64(n))
}

// ObserveRun records a finished run.
func (m *Metrics) ObserveRun(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(status).Inc()
	m.runDuration.WithLabelValues(status).Observe(d.Seconds())
	if status != lib.StatusFailed.String() {
		m.lastSuccess.SetToCurrentTime()
	}
}
