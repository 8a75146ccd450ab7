package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/internal/messaging"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

const DefaultReportInterval = 30 * time.Second

// Reporter publishes the enabled metrics of a Manager as models.Metric
// messages.
type Reporter struct {
	serviceKey string
	gatherer   prometheus.Gatherer
	client     messaging.MessageClient
	config     func() *config.StructuredConfig
	log        *logger.Logger
}

// NewReporter creates a reporter. cfg is called on every report so writable
// changes apply without a restart.
func NewReporter(serviceKey string, manager *Manager, client messaging.MessageClient,
	cfg func() *config.StructuredConfig, log *logger.Logger) *Reporter {
	return &Reporter{
		serviceKey: serviceKey,
		gatherer:   manager.Gatherer(),
		client:     client,
		config:     cfg,
		log:        log,
	}
}

// Interval parses Writable.Telemetry.Interval. An empty or invalid value
// falls back to DefaultReportInterval.
func (r *Reporter) Interval() time.Duration {
	interval, err := time.ParseDuration(r.config().Writable.Telemetry.Interval)
	if err != nil || interval <= 0 {
		return DefaultReportInterval
	}
	return interval
}

// Report gathers the metrics and publishes each enabled one.
func (r *Reporter) Report(ctx context.Context) error {
	cfg := r.config()
	telemetry := cfg.Writable.Telemetry

	families, err := r.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGatheringMetrics, err)
	}

	published := 0
	for _, family := range families {
		name := family.GetName()
		if !telemetry.Metrics[name] {
			continue
		}

		for _, metric := range family.GetMetric() {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			payload, err := json.Marshal(r.toMetric(name, family.GetType(), metric, telemetry.Tags))
			if err != nil {
				return fmt.Errorf("%w %s: %w", ErrPublishingMetric, name, err)
			}

			envelope := models.NewMessageEnvelope(payload, ctx)
			topic := messaging.BuildTopic(cfg.MessageBus.BaseTopicPrefix, models.MetricsPublishTopic, r.serviceKey, name)
			if err = r.client.Publish(envelope, topic); err != nil {
				return fmt.Errorf("%w %s: %w", ErrPublishingMetric, name, err)
			}
			published++
		}
	}

	r.log.Debug().Str("func", "*Reporter.Report").Int("published", published).Msg("telemetry reported")
	return nil
}

func (r *Reporter) toMetric(name string, kind dto.MetricType, metric *dto.Metric, tags map[string]string) models.Metric {
	var fields []models.MetricField
	switch kind {
	case dto.MetricType_COUNTER:
		fields = []models.MetricField{{Name: "count", Value: metric.GetCounter().GetValue()}}
	case dto.MetricType_GAUGE:
		fields = []models.MetricField{{Name: "value", Value: metric.GetGauge().GetValue()}}
	case dto.MetricType_HISTOGRAM:
		histogram := metric.GetHistogram()
		count := histogram.GetSampleCount()
		mean := 0.0
		if count > 0 {
			mean = histogram.GetSampleSum() / float64(count)
		}
		fields = []models.MetricField{
			{Name: "count", Value: count},
			{Name: "sum", Value: histogram.GetSampleSum()},
			{Name: "mean", Value: mean},
		}
	default:
		fields = []models.MetricField{{Name: "value", Value: metric.GetUntyped().GetValue()}}
	}

	metricTags := []models.MetricTag{{Name: ServiceTag, Value: r.serviceKey}}
	for _, label := range metric.GetLabel() {
		metricTags = append(metricTags, models.MetricTag{Name: label.GetName(), Value: label.GetValue()})
	}
	for key, value := range tags {
		metricTags = append(metricTags, models.MetricTag{Name: key, Value: value})
	}

	return models.NewMetric(name, fields, metricTags)
}
