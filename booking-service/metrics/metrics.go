// Package metrics exports reservation telemetry to prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	reservations   *prometheus.CounterVec
	commitAttempts *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	gatherer       prometheus.Gatherer
}

// New registers the reservation collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		reservations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trainbooking_reservations_total",
				Help: "Reservation requests by outcome",
			},
			[]string{"outcome"},
		),
		commitAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trainbooking_commit_attempts_total",
				Help: "Reserve calls against the train data service by result",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trainbooking_reserve_duration_seconds",
				Help:    "End to end duration of reservation requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		gatherer: reg,
	}

	reg.MustRegister(m.reservations, m.commitAttempts, m.duration)
	return m
}

func (m *Metrics) CommitAttempt(result string) {
	m.commitAttempts.WithLabelValues(result).Inc()
}

func (m *Metrics) Reservation(outcome string, d time.Duration) {
	m.reservations.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(d.Seconds())
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
