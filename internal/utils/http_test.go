package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingResponse struct {
	ApiVersion  string `json:"apiVersion"`
	ServiceName string `json:"serviceName"`
}

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name       string
		data       any
		statusCode int
		wantBody   string
	}{
		{"response dto", pingResponse{ApiVersion: "v3", ServiceName: "app-sample"}, http.StatusOK, `{"apiVersion":"v3","serviceName":"app-sample"}`},
		{"multi status", []pingResponse{{ApiVersion: "v3"}}, http.StatusMultiStatus, `[{"apiVersion":"v3","serviceName":""}]`},
		{"nil", nil, http.StatusOK, `null`},
		{"created", map[string]int{"statusCode": 201}, http.StatusCreated, `{"statusCode":201}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.statusCode)
			require.NoError(t, err)
			assert.Equal(t, len(tt.wantBody), n)
			assert.Equal(t, tt.statusCode, w.Code)
			assert.Equal(t, contentTypeJSON, w.Header().Get(contentTypeHeader))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestWriteJSON_EncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()

	n, err := WriteJSON(w, make(chan int), http.StatusOK)
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, contentTypeJSON, w.Header().Get(contentTypeHeader))
	assert.JSONEq(t, marshalFailureBody, w.Body.String())
}

func TestWriteBytes(t *testing.T) {
	t.Run("with content type", func(t *testing.T) {
		w := httptest.NewRecorder()

		n, err := WriteBytes(w, []byte("<Event/>"), "application/xml", http.StatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, 8, n)
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, "application/xml", w.Header().Get(contentTypeHeader))
	})

	t.Run("without content type", func(t *testing.T) {
		w := httptest.NewRecorder()

		_, err := WriteBytes(w, []byte{0xa1}, "", http.StatusOK)
		require.NoError(t, err)
		assert.Empty(t, w.Header().Get(contentTypeHeader))
		assert.Equal(t, []byte{0xa1}, w.Body.Bytes())
	})
}
