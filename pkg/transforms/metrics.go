package transforms

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/app-functions-sdk-go/internal/metrics"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

// exportSizeBuckets cover payloads from 64 bytes to 4 MiB.
var exportSizeBuckets = prometheus.ExponentialBuckets(64, 4, 9)

// exportMetrics counts the failures and the payload sizes of one export
// destination.
type exportMetrics struct {
	errors prometheus.Counter
	size   prometheus.Histogram
}

func newExportMetrics(errorsName, sizeName, help string) exportMetrics {
	return exportMetrics{
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: errorsName,
			Help: "Number of failed " + help + " exports.",
		}),
		size: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    sizeName,
			Help:    "Size in bytes of the data sent by " + help + " exports.",
			Buckets: exportSizeBuckets,
		}),
	}
}

// register adds the collectors for destination unless they are already
// registered. Failures are logged, the export still runs.
func (m exportMetrics) register(ctx interfaces.AppFunctionContext, errorsName, sizeName, destination string) {
	manager := ctx.MetricsManager()
	if manager == nil {
		return
	}

	tags := map[string]string{metrics.ExportDestTag: destination}
	for name, collector := range map[string]prometheus.Collector{
		metrics.RegistrationName(errorsName, destination): m.errors,
		metrics.RegistrationName(sizeName, destination):   m.size,
	} {
		if manager.IsRegistered(name) {
			continue
		}
		if err := manager.Register(name, collector, tags); err != nil {
			ctx.LoggingClient().Warn().Err(err).Str("metric", name).Msg("unable to register export metric")
		}
	}
}
