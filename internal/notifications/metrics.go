package notifications

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	emailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "forama",
			Subsystem: "newsletter",
			Name:      "emails_sent_total",
			Help:      "Newsletter emails attempted, by delivery status",
		},
		[]string{"status"},
	)

	dispatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "forama",
			Subsystem: "newsletter",
			Name:      "dispatch_duration_seconds",
			Help:      "Wall time of a full notification dispatch run",
			Buckets:   []float64{.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	notificationRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "forama",
			Subsystem: "newsletter",
			Name:      "runs_total",
			Help:      "Completed notification dispatch runs",
		},
	)
)
