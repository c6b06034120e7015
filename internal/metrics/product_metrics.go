package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProductsCreated is a Prometheus counter for tracking the total number of products created.
	ProductsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "The total number of products created",
	})

	// ProductsUpdated is a Prometheus counter for tracking the total number of products updated.
	ProductsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_updated_total",
		Help: "The total number of products updated",
	})

	// ProductsDeleted is a Prometheus counter for tracking the total number of products deleted.
	ProductsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_deleted_total",
		Help: "The total number of products deleted",
	})

	// DatabaseFailures counts storage errors surfaced by product operations, by operation name.
	DatabaseFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "products_database_failures_total",
		Help: "The total number of failed product storage calls",
	}, []string{"operation"})
)
