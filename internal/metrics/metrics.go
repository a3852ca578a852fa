package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fetch_duration_seconds",
			Help:    "Duration of the users API request in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	fetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetch_errors_total",
			Help: "Total number of failed users API requests labeled by reason",
		},
		[]string{"reason"},
	)
	usersLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "users_loaded",
			Help: "Number of users held by the dashboard",
		},
	)
	viewRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "view_renders_total",
			Help: "Total number of dashboard view renders labeled by view",
		},
		[]string{"view"},
	)
)

// ObserveFetch records the duration of one fetch.
func ObserveFetch(d time.Duration) {
	fetchDurationSeconds.Observe(d.Seconds())
}

// RecordFetchError increments the fetch error counter.
func RecordFetchError(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	fetchErrorsTotal.WithLabelValues(reason).Inc()
}

// SetUsersLoaded updates the loaded users gauge.
func SetUsersLoaded(n int) {
	usersLoaded.Set(float64(n))
}

// RecordRender increments the render counter for a view slug.
func RecordRender(view string) {
	if view == "" {
		view = "unknown"
	}
	viewRendersTotal.WithLabelValues(view).Inc()
}
