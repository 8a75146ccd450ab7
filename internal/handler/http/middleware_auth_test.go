package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

func TestAuth_CustomRoute(t *testing.T) {
	validToken, err := utils.GenerateJWT("edgex", "operator", time.Hour, testSigningKey)
	require.NoError(t, err)
	foreignToken, err := utils.GenerateJWT("edgex", "operator", time.Hour, "another-key")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not a bearer token", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized},
		{name: "wrong signing key", header: "Bearer " + foreignToken, wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + validToken, wantStatus: http.StatusOK},
	}

	h := newTestHandler(t, nil)
	require.NoError(t, h.AddCustomRoute("/api/v3/protected", interfaces.Authenticated, okHandler("secret stuff")))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}

			rr := serve(h, http.MethodGet, "/api/v3/protected", "", headers)
			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "secret stuff", rr.Body.String())
			}
		})
	}
}

func TestAuth_KeyStoredAtRuntime(t *testing.T) {
	h := newTestHandler(t, nil)
	require.NoError(t, h.AddCustomRoute("/api/v3/protected", interfaces.Authenticated, okHandler("ok")))

	require.NoError(t, h.dic.SecretProvider.StoreSecret("jwt", map[string]string{SigningKeySecretKey: "rotated"}))
	token, err := utils.GenerateJWT("edgex", "operator", time.Hour, "rotated")
	require.NoError(t, err)

	rr := serve(h, http.MethodGet, "/api/v3/protected", "", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuth_MissingSigningKey(t *testing.T) {
	h := newTestHandler(t, nil)
	h.dic.SecretProvider = nil
	require.NoError(t, h.AddCustomRoute("/api/v3/protected", interfaces.Authenticated, okHandler("ok")))

	token, err := utils.GenerateJWT("edgex", "operator", time.Hour, testSigningKey)
	require.NoError(t, err)

	rr := serve(h, http.MethodGet, "/api/v3/protected", "", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_UnauthenticatedRouteIsOpen(t *testing.T) {
	h := newTestHandler(t, nil)
	require.NoError(t, h.AddCustomRoute("/api/v3/open", interfaces.Unauthenticated, okHandler("open")))

	rr := serve(h, http.MethodGet, "/api/v3/open", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "open", rr.Body.String())
}
