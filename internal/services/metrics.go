package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
	statusEmpty   = "error_empty_response"
)

var (
	completionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pokearena_completion_requests_total",
			Help: "Total number of completion requests, by arena mode and outcome.",
		},
		[]string{"mode", "status"},
	)
	completionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pokearena_completion_duration_seconds",
			Help:    "Histogram of completion request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)
)

func observeCompletion(mode Mode, status string, d time.Duration) {
	completionRequests.WithLabelValues(string(mode), status).Inc()
	completionDuration.WithLabelValues(string(mode)).Observe(d.Seconds())
}
