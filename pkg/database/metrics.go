package database

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.mongodb.org/mongo-driver/event"
)

var (
	mongoConnectionsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mongodb_pool_connections_open",
		Help: "Number of open connections in the MongoDB pool",
	})

	mongoConnectionsInUse = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mongodb_pool_connections_in_use",
		Help: "Number of pool connections currently checked out",
	})

	mongoCheckoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mongodb_pool_checkouts_total",
		Help: "Total number of successful connection checkouts",
	})

	mongoCheckoutFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mongodb_pool_checkout_failures_total",
		Help: "Total number of failed connection checkouts",
	})

	mongoPoolCleared = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mongodb_pool_cleared_total",
		Help: "Total number of times the connection pool was cleared",
	})
)

// poolMonitor returns an event.PoolMonitor that exports connection pool
// activity as Prometheus metrics.
func poolMonitor() *event.PoolMonitor {
	return &event.PoolMonitor{
		Event: func(evt *event.PoolEvent) {
			switch evt.Type {
			case event.ConnectionCreated:
				mongoConnectionsOpen.Inc()
			case event.ConnectionClosed:
				mongoConnectionsOpen.Dec()
			case event.GetSucceeded:
				mongoCheckoutsTotal.Inc()
				mongoConnectionsInUse.Inc()
			case event.GetFailed:
				mongoCheckoutFailures.Inc()
			case event.ConnectionReturned:
				mongoConnectionsInUse.Dec()
			case event.PoolCleared:
				mongoPoolCleared.Inc()
			}
		},
	}
}
