package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

func newCounter(name string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: "test counter"})
}

func TestManager_RegisterAndUnregister(t *testing.T) {
	m := NewManager(logger.Nop())

	require.NoError(t, m.Register("MyCounter", newCounter("MyCounter"), nil))
	assert.True(t, m.IsRegistered("MyCounter"))

	families, err := m.Gatherer().Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "MyCounter", families[0].GetName())

	m.Unregister("MyCounter")
	assert.False(t, m.IsRegistered("MyCounter"))

	families, err = m.Gatherer().Gather()
	require.NoError(t, err)
	assert.Empty(t, families)

	// unknown names are ignored
	m.Unregister("MyCounter")
}

func TestManager_Register_Errors(t *testing.T) {
	m := NewManager(logger.Nop())

	assert.ErrorIs(t, m.Register(" ", newCounter("A"), nil), ErrEmptyMetricName)

	require.NoError(t, m.Register("A", newCounter("A"), nil))
	assert.ErrorIs(t, m.Register("A", newCounter("A"), nil), ErrDuplicateMetricName)

	// same collector name without distinguishing labels
	assert.ErrorIs(t, m.Register("B", newCounter("A"), nil), ErrRegisteringMetric)
	assert.False(t, m.IsRegistered("B"))
}

func TestManager_TagsBecomeLabels(t *testing.T) {
	m := NewManager(logger.Nop())

	first := newCounter(PipelineMessagesProcessedName)
	second := newCounter(PipelineMessagesProcessedName)
	require.NoError(t, m.Register(RegistrationName(PipelineMessagesProcessedName, "one"), first, map[string]string{PipelineIdTag: "one"}))
	require.NoError(t, m.Register(RegistrationName(PipelineMessagesProcessedName, "two"), second, map[string]string{PipelineIdTag: "two"}))
	first.Inc()

	families, err := m.Gatherer().Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	require.Len(t, families[0].GetMetric(), 2)

	values := map[string]float64{}
	for _, metric := range families[0].GetMetric() {
		require.Len(t, metric.GetLabel(), 1)
		values[metric.GetLabel()[0].GetValue()] = metric.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"one": 1, "two": 0}, values)

	m.Unregister(RegistrationName(PipelineMessagesProcessedName, "one"))
	families, err = m.Gatherer().Gather()
	require.NoError(t, err)
	assert.Len(t, families[0].GetMetric(), 1)
}

func TestRegistrationName(t *testing.T) {
	assert.Equal(t, "PipelineProcessingErrors-p1", RegistrationName(PipelineProcessingErrorsName, "p1"))
	assert.Equal(t, StoreForwardQueueSizeName, RegistrationName(StoreForwardQueueSizeName, ""))
}
