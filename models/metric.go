package models

import "time"

// Metric is a telemetry sample published to the message bus.
type Metric struct {
	ApiVersion string        `json:"apiVersion"`
	Name       string        `json:"name"`
	Fields     []MetricField `json:"fields"`
	Tags       []MetricTag   `json:"tags,omitempty"`
	Timestamp  int64         `json:"timestamp"`
}

type MetricField struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type MetricTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func NewMetric(name string, fields []MetricField, tags []MetricTag) Metric {
	return Metric{
		ApiVersion: ApiVersion,
		Name:       name,
		Fields:     fields,
		Tags:       tags,
		Timestamp:  time.Now().UnixNano(),
	}
}
