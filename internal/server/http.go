package server

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

// Default names of the certificate and key inside HttpServer.SecretName.
const (
	DefaultHTTPSCertName = "cert"
	DefaultHTTPSKeyName  = "key"
)

const readHeaderTimeout = 10 * time.Second

type httpServer struct {
	server *http.Server
	useTLS bool
}

func newHTTPServer(handler http.Handler, cfg *config.StructuredConfig, secrets interfaces.SecretProvider) (*httpServer, error) {
	s := &httpServer{
		server: &http.Server{
			Addr:              cfg.ListenAddress(),
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}

	if cfg.HttpServer.Protocol != "https" {
		return s, nil
	}

	certificate, err := loadCertificate(cfg.HttpServer, secrets)
	if err != nil {
		return nil, err
	}

	s.server.TLSConfig = &tls.Config{
		Certificates: []tls.Certificate{certificate},
		MinVersion:   tls.VersionTLS12,
	}
	s.useTLS = true
	return s, nil
}

func loadCertificate(cfg config.HttpServerInfo, secrets interfaces.SecretProvider) (tls.Certificate, error) {
	if secrets == nil {
		return tls.Certificate{}, fmt.Errorf("%w: %w", ErrTLSCertificate, ErrNoSecrets)
	}

	certName := cfg.HTTPSCertName
	if certName == "" {
		certName = DefaultHTTPSCertName
	}
	keyName := cfg.HTTPSKeyName
	if keyName == "" {
		keyName = DefaultHTTPSKeyName
	}

	pair, err := secrets.GetSecret(cfg.SecretName, certName, keyName)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("%w: %w", ErrTLSCertificate, err)
	}

	certificate, err := tls.X509KeyPair([]byte(pair[certName]), []byte(pair[keyName]))
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("%w: %w", ErrTLSCertificate, err)
	}
	return certificate, nil
}

// serve blocks until the server is shut down. Shutdown is not an error.
func (h *httpServer) serve() error {
	var err error
	if h.useTLS {
		err = h.server.ListenAndServeTLS("", "")
	} else {
		err = h.server.ListenAndServe()
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrServerListening, err)
}
