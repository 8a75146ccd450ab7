package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/app-functions-sdk-go/internal/container"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

func NewServer(handler http.Handler, dic *container.Container) (Server, error) {
	dic.Logger.Info().Msg("creating new server...")
	if handler == nil {
		return nil, ErrNoHandler
	}

	httpServer, err := newHTTPServer(handler, dic.Config(), dic.SecretProvider)
	if err != nil {
		return nil, err
	}

	return &server{httpServer: httpServer, logger: dic.Logger}, nil
}

func (s *server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("address", s.httpServer.server.Addr).
			Bool("tls", s.httpServer.useTLS).
			Msg("launching HTTP server")
		serveErr <- s.httpServer.serve()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			s.logger.Err(err).Msg("HTTP server failed")
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serveErr; err != nil {
		return err
	}

	s.logger.Info().Msg("server shut down gracefully")
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("HTTP server shutdown")
	if err := s.httpServer.server.Shutdown(ctx); err != nil {
		s.logger.Err(err).Msg("HTTP server shutdown")
		return err
	}
	return nil
}
