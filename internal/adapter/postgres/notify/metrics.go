package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// subscribersActive is the number of open change subscriptions.
	subscribersActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "querycloud",
		Subsystem: "notify",
		Name:      "subscribers_active",
		Help:      "Open change feed subscriptions",
	})

	// eventsReceived counts notifications read from the database.
	// Labels: collection, op
	eventsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "querycloud",
		Subsystem: "notify",
		Name:      "events_total",
		Help:      "Change notifications received from PostgreSQL",
	}, []string{"collection", "op"})

	// eventsDropped counts deliveries skipped because a subscriber buffer was full.
	eventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "querycloud",
		Subsystem: "notify",
		Name:      "dropped_total",
		Help:      "Change events not delivered because the subscriber was behind",
	})

	// reconnects counts lost LISTEN connections.
	reconnects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "querycloud",
		Subsystem: "notify",
		Name:      "reconnects_total",
		Help:      "LISTEN connections re-established after a failure",
	})
)
