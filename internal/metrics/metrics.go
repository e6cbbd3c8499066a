// Package metrics holds the service's prometheus collectors. They register
// with the default registry on import and are served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by method, route and status.
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration records request latency in seconds.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// LoginCounter counts login attempts; result is "success" or "failure".
	LoginCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_total",
			Help: "Total number of login attempts by role and result",
		},
		[]string{"role", "result"},
	)

	// TenantPools is the number of tenant pools currently held by the registry.
	TenantPools = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tenant_pools_open",
			Help: "Number of open tenant connection pools",
		},
	)

	// ProvisionCounter counts tenant store provisioning attempts by result.
	ProvisionCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenant_provision_total",
			Help: "Total number of tenant store provisioning attempts",
		},
		[]string{"result"},
	)
)

// RecordLogin increments the login counter.
func RecordLogin(role string, ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	LoginCounter.WithLabelValues(role, result).Inc()
}

// RecordProvision increments the provisioning counter.
func RecordProvision(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	ProvisionCounter.WithLabelValues(result).Inc()
}
