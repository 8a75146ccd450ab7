package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

func newTestApp() *sampleApp {
	a := &sampleApp{lc: logger.Nop(), deviceNames: []string{"Random-Float-Device"}}
	a.setConfig(AppCustomConfig{
		ResourceNames: "Float32",
		MQTTExport:    MQTTExportInfo{BrokerAddress: "tcp://localhost:1883", Topic: "export"},
	})
	return a
}

func TestSampleApp_ResourceHandler(t *testing.T) {
	a := newTestApp()

	rec := httptest.NewRecorder()
	a.resourceHandler(rec, httptest.NewRequest(http.MethodGet, resourceRoute, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var response resourceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, []string{"Random-Float-Device"}, response.DeviceNames)
	assert.Equal(t, "export", response.AppCustom.MQTTExport.Topic)
}

func TestSampleApp_OnConfigChanged(t *testing.T) {
	a := newTestApp()
	first := a.sender

	a.onConfigChanged(map[string]any{
		"MQTTExport": map[string]any{"BrokerAddress": "tcp://other:1883", "Topic": "changed"},
	})
	assert.Equal(t, "changed", a.config.MQTTExport.Topic)
	assert.NotSame(t, first, a.sender)

	second := a.sender
	a.onConfigChanged(map[string]any{"MQTTExport": map[string]any{"Topic": "no broker"}})
	assert.Equal(t, "changed", a.config.MQTTExport.Topic)
	assert.Same(t, second, a.sender)
}
