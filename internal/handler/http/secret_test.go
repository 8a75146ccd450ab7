package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/app-functions-sdk-go/models"
)

func TestAddSecret(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "stored",
			body:       `{"apiVersion":"v3","requestId":"r-1","secretName":"mqtt","secretData":[{"key":"username","value":"u"},{"key":"password","value":"p"}]}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid json",
			body:       `{"apiVersion":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrong api version",
			body:       `{"apiVersion":"v2","secretName":"mqtt","secretData":[{"key":"k","value":"v"}]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing secret name",
			body:       `{"apiVersion":"v3","secretData":[{"key":"k","value":"v"}]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty secret data",
			body:       `{"apiVersion":"v3","secretName":"mqtt","secretData":[]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty value",
			body:       `{"apiVersion":"v3","secretName":"mqtt","secretData":[{"key":"k","value":""}]}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, nil)

			rr := serve(h, http.MethodPost, models.ApiSecretRoute, tt.body, nil)
			require.Equal(t, tt.wantStatus, rr.Code)

			var response models.BaseResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
			assert.Equal(t, tt.wantStatus, response.StatusCode)
			if tt.wantStatus != http.StatusCreated {
				assert.NotEmpty(t, response.Message)
			}
		})
	}
}

func TestAddSecret_UpdatesProvider(t *testing.T) {
	h := newTestHandler(t, nil)
	before := h.dic.SecretProvider.SecretsLastUpdated()

	body := `{"apiVersion":"v3","requestId":"r-1","secretName":"mqtt","secretData":[{"key":"username","value":"u"}]}`
	rr := serve(h, http.MethodPost, models.ApiSecretRoute, body, nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	var response models.BaseResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "r-1", response.RequestId)

	secrets, err := h.dic.SecretProvider.GetSecret("mqtt", "username")
	require.NoError(t, err)
	assert.Equal(t, "u", secrets["username"])
	assert.True(t, h.dic.SecretProvider.SecretsLastUpdated().After(before))
}

func TestAddSecret_NoSecretProvider(t *testing.T) {
	h := newTestHandler(t, nil)
	h.dic.SecretProvider = nil

	body := `{"apiVersion":"v3","secretName":"mqtt","secretData":[{"key":"k","value":"v"}]}`
	rr := serve(h, http.MethodPost, models.ApiSecretRoute, body, nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
