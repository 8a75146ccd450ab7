//go:generate mockgen -source=metrics.go -destination=../../internal/mock/metrics_manager_mock.go -package=mock

package interfaces

import "github.com/prometheus/client_golang/prometheus"

// MetricsManager registers named metric collectors for the service.
type MetricsManager interface {
	// Register adds collector under name. Tags are added to the collector
	// as constant labels.
	Register(name string, collector prometheus.Collector, tags map[string]string) error
	Unregister(name string)
	IsRegistered(name string) bool
	// Gatherer exposes the registered metrics for scraping and reporting.
	Gatherer() prometheus.Gatherer
}
