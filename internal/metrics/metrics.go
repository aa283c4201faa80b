// Package metrics defines the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reasons a hashtag row is removed.
const (
	ReasonReconcile = "reconcile"
	ReasonSweep     = "sweep"
)

type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	HashtagsDeleted    *prometheus.CounterVec
	SweepRunsTotal     *prometheus.CounterVec
	SweepLastSuccessTS prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "noticeboard_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "noticeboard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route", "status"}),

		RequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "noticeboard_http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		}),

		HashtagsDeleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "noticeboard_hashtags_deleted_total",
			Help: "Orphaned hashtags removed, by reason (reconcile, sweep)",
		}, []string{"reason"}),

		SweepRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "noticeboard_hashtag_sweep_runs_total",
			Help: "Orphaned hashtag sweep runs by status (success, failure)",
		}, []string{"status"}),

		SweepLastSuccessTS: factory.NewGauge(prometheus.GaugeOpts{
			Name: "noticeboard_hashtag_sweep_last_success_timestamp",
			Help: "Unix timestamp of the last successful hashtag sweep",
		}),
	}
}

func (m *Metrics) RecordHashtagsDeleted(reason string, n int64) {
	if n <= 0 {
		return
	}
	m.HashtagsDeleted.WithLabelValues(reason).Add(float64(n))
}

// RecordSweep counts one sweep run and, on success, stamps the last success time.
func (m *Metrics) RecordSweep(err error) {
	if err != nil {
		m.SweepRunsTotal.WithLabelValues("failure").Inc()
		return
	}
	m.SweepRunsTotal.WithLabelValues("success").Inc()
	m.SweepLastSuccessTS.SetToCurrentTime()
}
