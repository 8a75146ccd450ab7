package trigger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/MKhiriev/app-functions-sdk-go/internal/container"
	"github.com/MKhiriev/app-functions-sdk-go/internal/runtime"
	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// RouteRegistrar adds routes to the service HTTP server.
type RouteRegistrar interface {
	AddRoute(route string, handler http.HandlerFunc, methods ...string) error
}

// RequestProcessor runs the default pipeline for an HTTP request.
type RequestProcessor func(ctx interfaces.AppFunctionContext, envelope models.MessageEnvelope) error

// HttpTrigger runs the default pipeline for every POST to the trigger route.
type HttpTrigger struct {
	dic     *container.Container
	config  interfaces.TriggerConfig
	router  RouteRegistrar
	process RequestProcessor
	log     *logger.Logger
}

func NewHttpTrigger(dic *container.Container, tc interfaces.TriggerConfig, router RouteRegistrar, process RequestProcessor) *HttpTrigger {
	return &HttpTrigger{
		dic:     dic,
		config:  tc,
		router:  router,
		process: process,
		log:     dic.Logger,
	}
}

func (t *HttpTrigger) Initialize(_ context.Context, _ *sync.WaitGroup) (interfaces.Deferred, error) {
	if t.router == nil {
		return nil, ErrRouterNotConfigured
	}

	t.log.Info().Str("route", models.ApiTriggerRoute).Msg("initializing HTTP trigger")
	if err := t.router.AddRoute(models.ApiTriggerRoute, t.requestHandler, http.MethodPost); err != nil {
		return nil, fmt.Errorf("unable to add HTTP trigger route: %w", err)
	}
	return nil, nil
}

func (t *HttpTrigger) requestHandler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		status := http.StatusBadRequest
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			status = http.StatusRequestEntityTooLarge
		}
		log.Err(err).Msg("unable to read HTTP trigger request body")
		http.Error(w, ErrReadRequestBody.Error(), status)
		return
	}

	contentType := r.Header.Get(models.ContentType)
	if contentType == "" {
		contentType = models.ContentTypeJSON
	}

	correlationID := utils.CorrelationIDOrNew(r.Header.Get(models.CorrelationHeader))

	envelope := models.MessageEnvelope{
		ApiVersion:    models.ApiVersion,
		CorrelationID: correlationID,
		Payload:       body,
		ContentType:   contentType,
	}

	log.Debug().
		Str("correlationID", correlationID).
		Str("contentType", contentType).
		Int("size", len(body)).
		Msg("request received by HTTP trigger")

	appContext := t.config.ContextBuilder(envelope)
	w.Header().Set(models.CorrelationHeader, correlationID)

	if err := t.process(appContext, envelope); err != nil {
		var messageErr *runtime.MessageError
		if errors.As(err, &messageErr) {
			http.Error(w, messageErr.Err.Error(), messageErr.ErrorCode)
			return
		}
		log.Err(err).Msg("HTTP trigger request failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := utils.WriteBytes(w, appContext.ResponseData(), appContext.ResponseContentType(), http.StatusOK); err != nil {
		log.Err(err).Msg("unable to write HTTP trigger response")
	}
}
