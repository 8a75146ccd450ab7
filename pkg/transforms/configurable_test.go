package transforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

func TestConfigurable_Function(t *testing.T) {
	configurable := NewConfigurable(logger.Nop())

	for _, name := range []string{
		"FilterByProfileName", "FilterByDeviceName", "FilterBySourceName", "FilterByResourceName",
		"Transform", "Compress", "Encrypt", "MQTTExport", "HTTPExport", "AddTags", "SetResponseData", "PushToCore",
	} {
		fn, ok := configurable.Function(name)
		assert.True(t, ok, name)
		assert.NotNil(t, fn, name)
	}

	_, ok := configurable.Function("Batch")
	assert.False(t, ok)
}

func TestConfigurable_Builders(t *testing.T) {
	tests := []struct {
		name       string
		function   string
		parameters map[string]string
		valid      bool
	}{
		{"filter for", "FilterByDeviceName", map[string]string{"FilterValues": "Random-.*, Other"}, true},
		{"filter out case-insensitive keys", "FilterByProfileName", map[string]string{"filtervalues": "p1", "filterout": "true"}, true},
		{"filter missing values", "FilterBySourceName", map[string]string{}, false},
		{"filter bad boolean", "FilterByResourceName", map[string]string{"FilterValues": "r", "FilterOut": "maybe"}, false},
		{"filter bad pattern", "FilterByDeviceName", map[string]string{"FilterValues": "[unclosed"}, false},

		{"transform xml", "Transform", map[string]string{"Type": "XML"}, true},
		{"transform json", "Transform", map[string]string{"Type": "json"}, true},
		{"transform unknown", "Transform", map[string]string{"Type": "yaml"}, false},
		{"transform missing type", "Transform", nil, false},

		{"compress gzip", "Compress", map[string]string{"Algorithm": "gzip"}, true},
		{"compress zlib", "Compress", map[string]string{"Algorithm": "ZLIB"}, true},
		{"compress unknown", "Compress", map[string]string{"Algorithm": "lz4"}, false},

		{"encrypt", "Encrypt", map[string]string{"Algorithm": "aes256", "SecretName": "aes", "SecretValueKey": "key"}, true},
		{"encrypt default algorithm", "Encrypt", map[string]string{"SecretName": "aes", "SecretValueKey": "key"}, true},
		{"encrypt unknown algorithm", "Encrypt", map[string]string{"Algorithm": "des", "SecretName": "aes", "SecretValueKey": "key"}, false},
		{"encrypt missing key", "Encrypt", map[string]string{"SecretName": "aes"}, false},

		{"mqtt export", "MQTTExport", map[string]string{"BrokerAddress": "tcp://broker:1883", "Topic": "out", "Qos": "1", "Retain": "true"}, true},
		{"mqtt export missing topic", "MQTTExport", map[string]string{"BrokerAddress": "tcp://broker:1883"}, false},
		{"mqtt export bad qos", "MQTTExport", map[string]string{"BrokerAddress": "tcp://broker:1883", "Topic": "out", "Qos": "3"}, false},
		{"mqtt export bad interval", "MQTTExport", map[string]string{"BrokerAddress": "tcp://b:1883", "Topic": "out", "PreConnectRetryInterval": "soon"}, false},

		{"http export post", "HTTPExport", map[string]string{"Method": "post", "Url": "http://localhost/api"}, true},
		{"http export put", "HTTPExport", map[string]string{"Method": "PUT", "Url": "http://localhost/api", "MimeType": "text/plain"}, true},
		{"http export header", "HTTPExport", map[string]string{"Method": "post", "Url": "http://h", "HeaderName": "Authorization", "SecretName": "http", "SecretValueKey": "token"}, true},
		{"http export header without secret", "HTTPExport", map[string]string{"Method": "post", "Url": "http://h", "HeaderName": "Authorization"}, false},
		{"http export bad method", "HTTPExport", map[string]string{"Method": "delete", "Url": "http://h"}, false},
		{"http export missing url", "HTTPExport", map[string]string{"Method": "post"}, false},

		{"add tags", "AddTags", map[string]string{"Tags": "site:plant-1, line : 4"}, true},
		{"add tags malformed", "AddTags", map[string]string{"Tags": "site"}, false},
		{"add tags empty", "AddTags", map[string]string{}, false},

		{"set response data", "SetResponseData", nil, true},

		{"push to core simple", "PushToCore", map[string]string{"ProfileName": "p", "DeviceName": "d", "ResourceName": "r", "ValueType": "int32"}, true},
		{"push to core binary", "PushToCore", map[string]string{"ProfileName": "p", "DeviceName": "d", "ResourceName": "r", "ValueType": "Binary", "MediaType": "image/png"}, true},
		{"push to core binary no media type", "PushToCore", map[string]string{"ProfileName": "p", "DeviceName": "d", "ResourceName": "r", "ValueType": "Binary"}, false},
		{"push to core object", "PushToCore", map[string]string{"ProfileName": "p", "DeviceName": "d", "ResourceName": "r", "ValueType": "Object"}, true},
		{"push to core bad value type", "PushToCore", map[string]string{"ProfileName": "p", "DeviceName": "d", "ResourceName": "r", "ValueType": "Decimal"}, false},
	}

	configurable := NewConfigurable(logger.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			build, ok := configurable.Function(tt.function)
			require.True(t, ok)

			fn := build(tt.parameters)
			if tt.valid {
				assert.NotNil(t, fn)
				return
			}
			assert.Nil(t, fn)
		})
	}
}

func TestConfigurable_AddTags_ParsesPairs(t *testing.T) {
	fn := NewConfigurable(logger.Nop()).AddTags(map[string]string{"Tags": "site:plant-1, line : 4"})
	require.NotNil(t, fn)

	ok, result := fn(newTestContext(t), newTestEvent())
	require.True(t, ok)

	tags := result.(models.Event).Tags
	assert.Equal(t, "plant-1", tags["site"])
	assert.Equal(t, "4", tags["line"])
}

func TestConfigurable_SetResponseData_ContentType(t *testing.T) {
	fn := NewConfigurable(logger.Nop()).SetResponseData(map[string]string{"ResponseContentType": "text/plain"})
	require.NotNil(t, fn)

	ctx := newTestContext(t)
	ok, _ := fn(ctx, "done")
	require.True(t, ok)
	assert.Equal(t, []byte("done"), ctx.ResponseData())
	assert.Equal(t, "text/plain", ctx.ResponseContentType())
}
