package observ

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cartChanges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_changes_total",
		Help: "Total number of cart mutations observed on the change bus",
	})

	ordersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of successfully placed orders",
	})
)

// CartChanged is registered as a change-bus observer at startup.
func CartChanged() { cartChanges.Inc() }

// OrderPlaced is recorded after a checkout fully succeeds.
func OrderPlaced() { ordersPlaced.Inc() }
