package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppCustomConfig_UpdateFromRaw(t *testing.T) {
	valid := map[string]any{
		"ResourceNames": "Float32",
		"MQTTExport": map[string]any{
			"BrokerAddress": "tcp://localhost:1883",
			"Topic":         "export/{devicename}",
			"ClientId":      "sample",
			"QoS":           1,
		},
	}

	tests := []struct {
		name string
		raw  any
		ok   bool
	}{
		{"valid section", valid, true},
		{"missing broker", map[string]any{"MQTTExport": map[string]any{"Topic": "t"}}, false},
		{"missing topic", map[string]any{"MQTTExport": map[string]any{"BrokerAddress": "tcp://b:1883"}}, false},
		{"qos out of range", map[string]any{"MQTTExport": map[string]any{"BrokerAddress": "tcp://b:1883", "Topic": "t", "QoS": 3}}, false},
		{"wrong type", map[string]any{"MQTTExport": "broker"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AppCustomConfig{ResourceNames: "unchanged"}
			assert.Equal(t, tt.ok, cfg.UpdateFromRaw(tt.raw))
			if !tt.ok {
				assert.Equal(t, "unchanged", cfg.ResourceNames)
				return
			}
			assert.Equal(t, "Float32", cfg.ResourceNames)
			assert.Equal(t, "tcp://localhost:1883", cfg.MQTTExport.BrokerAddress)
			assert.Equal(t, byte(1), cfg.MQTTExport.QoS)
		})
	}
}
