package metrics

import "errors"

var (
	ErrEmptyMetricName     = errors.New("metric name is empty")
	ErrDuplicateMetricName = errors.New("metric name already registered")
	ErrRegisteringMetric   = errors.New("failed to register metric")
	ErrGatheringMetrics    = errors.New("failed to gather metrics")
	ErrPublishingMetric    = errors.New("failed to publish metric")
)
