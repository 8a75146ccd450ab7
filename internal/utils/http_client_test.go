package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient()

	require.NotNil(t, client)
	require.NotNil(t, client.Client)
	assert.Equal(t, defaultHTTPTimeout, client.GetClient().Timeout)
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient()
	client2 := NewHTTPClient()

	assert.NotSame(t, client1.Client, client2.Client)
}

func TestNewHTTPClientForService(t *testing.T) {
	tests := []struct {
		name        string
		baseURL     string
		timeout     time.Duration
		wantBaseURL string
		wantTimeout time.Duration
	}{
		{"trailing slash is trimmed", "http://localhost:59880/", time.Second, "http://localhost:59880", time.Second},
		{"zero timeout uses default", "http://core-data:59880", 0, "http://core-data:59880", defaultHTTPTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewHTTPClientForService(tt.baseURL, tt.timeout)
			assert.Equal(t, tt.wantBaseURL, client.BaseURL)
			assert.Equal(t, tt.wantTimeout, client.GetClient().Timeout)
		})
	}
}
