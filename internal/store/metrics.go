package store

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vyrodovalexey/itemserver/internal/model"
)

// Prometheus metrics.
var (
	itemsStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "items_stored",
			Help: "Number of items currently held in the store",
		},
	)

	itemsCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "items_capacity",
			Help: "Maximum number of items the store accepts",
		},
	)

	storeOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "item_store_operations_total",
			Help: "Total number of item store operations by result",
		},
		[]string{"operation", "result"},
	)
)

// observeOperation records the outcome of a store operation.
func observeOperation(operation string, err error) {
	storeOperationsTotal.WithLabelValues(operation, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, model.ErrInvalidName):
		return "invalid_name"
	default:
		return "error"
	}
}
