package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/models"
)

const defaultRequestTimeout = 5 * time.Second

func (h *Handler) Init() *chi.Mux {
	cfg := h.dic.Config().Service

	router := chi.NewRouter()
	router.Use(h.withCorrelationID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)

	if cfg.MaxRequestSize > 0 {
		router.Use(middleware.RequestSize(cfg.MaxRequestSize * 1024))
	}

	timeout, err := time.ParseDuration(cfg.RequestTimeout)
	if err != nil || timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	router.Use(middleware.Timeout(timeout))

	if c := cfg.CORSConfiguration; c.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   utils.SplitAndTrim(c.CORSAllowedOrigin),
			AllowedMethods:   utils.SplitAndTrim(c.CORSAllowedMethods),
			AllowedHeaders:   utils.SplitAndTrim(c.CORSAllowedHeaders),
			ExposedHeaders:   utils.SplitAndTrim(c.CORSExposeHeaders),
			AllowCredentials: c.CORSAllowCredentials,
			MaxAge:           c.CORSMaxAge,
		}))
	}

	router.Get(models.ApiPingRoute, h.ping)
	router.Get(models.ApiVersionRoute, h.version)
	router.Get(models.ApiConfigRoute, h.config)
	router.Post(models.ApiSecretRoute, h.addSecret)

	if h.dic.MetricsManager != nil {
		router.Handle(models.ApiMetricsRoute, promhttp.HandlerFor(h.dic.MetricsManager.Gatherer(), promhttp.HandlerOpts{}))
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
