package http

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/app-functions-sdk-go/internal/container"
	"github.com/MKhiriev/app-functions-sdk-go/internal/validators"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// Handler serves the REST API of one application service. Routes may be
// added until the server starts.
type Handler struct {
	dic        *container.Container
	serviceKey string
	buildInfo  models.AppBuildInfo
	sdkVersion string

	secretValidator validators.Validator

	mu     sync.Mutex
	router *chi.Mux

	logger *logger.Logger
}

func NewHandler(dic *container.Container, serviceKey string, buildInfo models.AppBuildInfo, sdkVersion string) *Handler {
	dic.Logger.Info().Msg("http handler created")
	h := &Handler{
		dic:        dic,
		serviceKey: serviceKey,
		buildInfo:  buildInfo,
		sdkVersion: sdkVersion,
		logger:     dic.Logger,

		secretValidator: validators.NewSecretRequestValidator(),
	}
	h.router = h.Init()
	return h
}

// Router returns the router serving every added route.
func (h *Handler) Router() http.Handler {
	return h.router
}

// AddRoute serves handler on route for methods, GET when none are given.
func (h *Handler) AddRoute(route string, handler http.HandlerFunc, methods ...string) error {
	return h.addRoute(route, handler, false, methods)
}

// AddCustomRoute is AddRoute with an optional bearer token check.
func (h *Handler) AddCustomRoute(route string, authentication interfaces.Authentication, handler http.HandlerFunc, methods ...string) error {
	return h.addRoute(route, handler, bool(authentication), methods)
}

func (h *Handler) addRoute(route string, handler http.HandlerFunc, authenticated bool, methods []string) error {
	if strings.TrimSpace(route) == "" {
		return ErrEmptyRoute
	}
	if handler == nil {
		return fmt.Errorf("%w: %s", ErrNilRouteHandler, route)
	}
	if len(methods) == 0 {
		methods = []string{http.MethodGet}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var r chi.Router = h.router
	if authenticated {
		r = h.router.With(h.auth)
	}

	for _, method := range methods {
		method = strings.ToUpper(strings.TrimSpace(method))
		if !validMethod(method) {
			return fmt.Errorf("%w: %q for %s", ErrInvalidRouteMethod, method, route)
		}
		r.MethodFunc(method, route, handler)
	}

	h.logger.Info().
		Str("route", route).
		Strs("methods", methods).
		Bool("authenticated", authenticated).
		Msg("route added")
	return nil
}

func validMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodOptions, http.MethodConnect, http.MethodTrace:
		return true
	}
	return false
}
