// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app implements the application service: it bootstraps the
// dependencies from the configuration, owns the functions pipelines and
// runs the trigger, the REST API and the background workers.
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/MKhiriev/app-functions-sdk-go/internal/appfunction"
	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/internal/container"
	httphandler "github.com/MKhiriev/app-functions-sdk-go/internal/handler/http"
	"github.com/MKhiriev/app-functions-sdk-go/internal/metrics"
	"github.com/MKhiriev/app-functions-sdk-go/internal/runtime"
	"github.com/MKhiriev/app-functions-sdk-go/internal/secret"
	"github.com/MKhiriev/app-functions-sdk-go/internal/trigger"
	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/internal/workers"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// Service is the interfaces.ApplicationService built by NewService.
type Service struct {
	serviceKey string
	targetType any
	buildInfo  models.AppBuildInfo
	sdkVersion string

	dic     *container.Container
	lc      *logger.Logger
	loader  *config.Loader
	watcher *config.Watcher

	secrets   *secret.InsecureProvider
	metrics   *metrics.Manager
	runtime   *runtime.FunctionsPipelineRuntime
	processor *runtime.MessageProcessor
	handler   *httphandler.Handler
	triggers  *trigger.Builder

	storeForward *workers.StoreForward

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	running      bool
	configurable bool
	deferred     []interfaces.Deferred
}

var _ interfaces.ApplicationService = (*Service)(nil)

// Options carries what the caller knows about the binary being run.
type Options struct {
	// Args are the command-line arguments without the program name.
	Args []string

	// TargetType is the type received messages are decoded into. Nil means
	// *models.Event.
	TargetType any

	BuildInfo  models.AppBuildInfo
	SDKVersion string
}

// NewService loads the configuration and creates every dependency of the
// service. The service does nothing until Run is called.
func NewService(serviceKey string, opts Options) (*Service, error) {
	s := &Service{
		serviceKey: serviceKey,
		targetType: opts.TargetType,
		buildInfo:  opts.BuildInfo,
		sdkVersion: opts.SDKVersion,
		lc:         logger.NewLogger(serviceKey),
		loader:     config.NewLoader(opts.Args),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	if err := s.bootstrap(); err != nil {
		s.cancel()
		s.runDeferred()
		return nil, fmt.Errorf("%w: %w", ErrBootstrap, err)
	}
	return s, nil
}

func (s *Service) AppContext() context.Context {
	return s.ctx
}

func (s *Service) LoggingClient() *logger.Logger {
	return s.lc
}

func (s *Service) AddCustomRoute(route string, authentication interfaces.Authentication, handler http.HandlerFunc, methods ...string) error {
	return s.handler.AddCustomRoute(route, authentication, handler, methods...)
}

func (s *Service) SetDefaultFunctionsPipeline(transforms ...interfaces.AppFunction) error {
	if len(transforms) == 0 {
		return ErrNoTransforms
	}
	s.runtime.SetDefaultFunctionsPipeline(transforms...)
	s.lc.Info().Int("functions", len(transforms)).Msg("default pipeline set")
	return nil
}

func (s *Service) AddFunctionsPipelineForTopics(id string, topics []string, transforms ...interfaces.AppFunction) error {
	if len(transforms) == 0 {
		return ErrNoTransforms
	}
	topics = utils.DeleteEmptyAndTrim(topics)
	if len(topics) == 0 {
		return fmt.Errorf("%w: %s", ErrNoPipelineTopics, id)
	}

	return s.runtime.AddFunctionsPipeline(id, topics, transforms...)
}

func (s *Service) RemoveAllFunctionPipelines() {
	s.runtime.RemoveAllFunctionPipelines()
}

func (s *Service) RegisterCustomTriggerFactory(name string, factory interfaces.TriggerFactory) error {
	return s.triggers.RegisterCustomTriggerFactory(name, factory)
}

func (s *Service) EventClient() interfaces.EventClient {
	return s.dic.EventClient
}

func (s *Service) ReadingClient() interfaces.ReadingClient {
	return s.dic.ReadingClient
}

func (s *Service) CommandClient() interfaces.CommandClient {
	return s.dic.CommandClient
}

func (s *Service) DeviceClient() interfaces.DeviceClient {
	return s.dic.DeviceClient
}

func (s *Service) DeviceProfileClient() interfaces.DeviceProfileClient {
	return s.dic.DeviceProfileClient
}

func (s *Service) DeviceServiceClient() interfaces.DeviceServiceClient {
	return s.dic.DeviceServiceClient
}

func (s *Service) SecretProvider() interfaces.SecretProvider {
	return s.dic.SecretProvider
}

func (s *Service) MetricsManager() interfaces.MetricsManager {
	return s.dic.MetricsManager
}

// BuildContext creates a context for calling pipeline functions outside of
// a trigger. An empty correlationID gets a generated one.
func (s *Service) BuildContext(correlationID string, contentType string) interfaces.AppFunctionContext {
	return appfunction.NewContextWithParent(s.ctx, utils.CorrelationIDOrNew(correlationID), s.dic, contentType)
}

// Publish sends data to Trigger.PublishTopic. Placeholders in the topic
// can not be resolved here, so such a topic fails.
func (s *Service) Publish(data any, contentType string) error {
	if s.dic.MessageClient == nil {
		return ErrNoMessageBusForPublish
	}
	return s.BuildContext("", contentType).Publish(data, contentType)
}

func (s *Service) PublishWithTopic(topic string, data any, contentType string) error {
	if s.dic.MessageClient == nil {
		return ErrNoMessageBusForPublish
	}
	return s.BuildContext("", contentType).PublishWithTopic(topic, data, contentType)
}

// Stop cancels AppContext, which makes Run return.
func (s *Service) Stop() {
	s.cancel()
}

func (s *Service) addDeferred(d interfaces.Deferred) {
	if d == nil {
		return
	}
	s.mu.Lock()
	s.deferred = append(s.deferred, d)
	s.mu.Unlock()
}

// runDeferred calls the deferred funcs in reverse order of registration.
func (s *Service) runDeferred() {
	s.mu.Lock()
	deferred := s.deferred
	s.deferred = nil
	s.mu.Unlock()

	for i := len(deferred) - 1; i >= 0; i-- {
		deferred[i]()
	}
}
