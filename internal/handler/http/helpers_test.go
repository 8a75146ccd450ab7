package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/internal/container"
	"github.com/MKhiriev/app-functions-sdk-go/internal/metrics"
	"github.com/MKhiriev/app-functions-sdk-go/internal/secret"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

const (
	testServiceKey = "app-test"
	testSigningKey = "top-secret-signing-key"
)

// newTestHandler builds a handler over a container with insecure secrets and
// a metrics manager. mutate may adjust the configuration first.
func newTestHandler(t *testing.T, mutate func(cfg *config.StructuredConfig)) *Handler {
	t.Helper()

	cfg := &config.StructuredConfig{
		Service: config.ServiceInfo{
			Host:           "localhost",
			Port:           59700,
			RequestTimeout: "5s",
		},
		HttpServer: config.HttpServerInfo{AuthSecretName: "jwt"},
		Writable: config.WritableInfo{
			LogLevel: "INFO",
			InsecureSecrets: map[string]config.SecretData{
				"jwt": {SecretName: "jwt", SecretData: map[string]string{SigningKeySecretKey: testSigningKey}},
			},
		},
	}
	if mutate != nil {
		mutate(cfg)
	}

	secrets, err := secret.NewInsecureProvider(cfg.Writable.InsecureSecrets, logger.Nop())
	require.NoError(t, err)

	dic := container.NewContainer(cfg, logger.Nop())
	dic.SecretProvider = secrets
	dic.MetricsManager = metrics.NewManager(logger.Nop())

	return NewHandler(dic, testServiceKey, models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123"), "4.0.0")
}

func serve(h *Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	h.Router().ServeHTTP(rr, req)
	return rr
}

func okHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}
}
