// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package runtime decodes received messages and runs them through the
// functions pipelines whose topics match.
package runtime

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/app-functions-sdk-go/internal/appfunction"
	"github.com/MKhiriev/app-functions-sdk-go/internal/container"
	"github.com/MKhiriev/app-functions-sdk-go/internal/metrics"
	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

const pipelineHashPrefix = "Pipeline-functions: "

// FunctionsPipelineRuntime owns the functions pipelines of a service.
type FunctionsPipelineRuntime struct {
	ServiceKey string
	// TargetType is the type received messages are decoded into.
	TargetType any

	dic *container.Container
	log *logger.Logger

	mu        sync.RWMutex
	pipelines map[string]*interfaces.FunctionPipeline

	StoreForward *StoreForward
}

// NewFunctionsPipelineRuntime creates a runtime decoding messages into
// targetType. A nil targetType means *models.Event.
func NewFunctionsPipelineRuntime(serviceKey string, targetType any, dic *container.Container) *FunctionsPipelineRuntime {
	if targetType == nil {
		targetType = &models.Event{}
	}

	r := &FunctionsPipelineRuntime{
		ServiceKey: serviceKey,
		TargetType: targetType,
		dic:        dic,
		log:        dic.Logger,
		pipelines:  make(map[string]*interfaces.FunctionPipeline),
	}
	r.StoreForward = newStoreForward(r, dic, serviceKey)
	return r
}

// AddFunctionsPipeline adds a pipeline for topics. The id must be unique.
func (r *FunctionsPipelineRuntime) AddFunctionsPipeline(id string, topics []string, transforms ...interfaces.AppFunction) error {
	r.mu.Lock()
	if _, ok := r.pipelines[id]; ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: Id='%s'", ErrPipelineExists, id)
	}
	pipeline := newFunctionPipeline(id, topics, transforms)
	r.pipelines[id] = pipeline
	r.mu.Unlock()

	r.registerPipelineMetrics(pipeline)
	r.log.Info().Str("pipeline", id).Strs("topics", topics).Int("transforms", len(transforms)).Msg("pipeline added")
	return nil
}

// SetDefaultFunctionsPipeline sets the transforms of the default pipeline,
// creating it on topic "#" when needed.
func (r *FunctionsPipelineRuntime) SetDefaultFunctionsPipeline(transforms ...interfaces.AppFunction) {
	r.mu.Lock()
	_, exists := r.pipelines[interfaces.DefaultPipelineId]
	if !exists {
		pipeline := newFunctionPipeline(interfaces.DefaultPipelineId, []string{models.TopicWildcard}, nil)
		r.pipelines[pipeline.Id] = pipeline
		r.mu.Unlock()
		r.registerPipelineMetrics(pipeline)
	} else {
		r.mu.Unlock()
	}

	// the pipeline was just created under the lock, so it can't be missing
	_ = r.SetFunctionsPipelineTransforms(interfaces.DefaultPipelineId, transforms...)
}

// SetFunctionsPipelineTransforms replaces the transforms of a pipeline and
// recomputes its hash. Running executions keep the previous transforms.
func (r *FunctionsPipelineRuntime) SetFunctionsPipelineTransforms(id string, transforms ...interfaces.AppFunction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pipeline, ok := r.pipelines[id]
	if !ok {
		r.log.Warn().Str("pipeline", id).Msg("unable to set transforms: pipeline not found")
		return fmt.Errorf("%w: Id='%s'", ErrPipelineNotFound, id)
	}

	updated := *pipeline
	updated.Transforms = transforms
	updated.Hash = CalculatePipelineHash(transforms...)
	r.pipelines[id] = &updated

	r.log.Info().Str("pipeline", id).Int("transforms", len(transforms)).Msg("transforms set")
	return nil
}

// RemoveAllFunctionPipelines removes every pipeline and unregisters its
// metrics.
func (r *FunctionsPipelineRuntime) RemoveAllFunctionPipelines() {
	r.mu.Lock()
	removed := r.pipelines
	r.pipelines = make(map[string]*interfaces.FunctionPipeline)
	r.mu.Unlock()

	for id := range removed {
		r.unregisterPipelineMetrics(id)
	}
}

// GetPipelineById returns nil when the pipeline does not exist.
func (r *FunctionsPipelineRuntime) GetPipelineById(id string) *interfaces.FunctionPipeline {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pipelines[id]
}

// GetMatchingPipelines returns the pipelines subscribed to topic.
func (r *FunctionsPipelineRuntime) GetMatchingPipelines(topic string) []*interfaces.FunctionPipeline {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*interfaces.FunctionPipeline
	for _, pipeline := range r.pipelines {
		if TopicMatches(topic, pipeline.Topics) {
			matches = append(matches, pipeline)
		}
	}
	return matches
}

// ProcessMessage runs data through pipeline and records its metrics.
func (r *FunctionsPipelineRuntime) ProcessMessage(appContext *appfunction.Context, data any, pipeline *interfaces.FunctionPipeline) *MessageError {
	log := appContext.LoggingClient()
	if len(pipeline.Transforms) == 0 {
		log.Debug().Str("pipeline", pipeline.Id).Msg("pipeline has no transforms")
		return nil
	}

	appContext.AddValue(interfaces.PIPELINEID, pipeline.Id)
	log.Debug().Str("pipeline", pipeline.Id).Int("transforms", len(pipeline.Transforms)).Msg("processing message")

	timer := prometheus.NewTimer(pipeline.MessageProcessingTime)
	defer timer.ObserveDuration()
	pipeline.MessagesProcessed.Inc()

	return r.ExecutePipeline(appContext, data, pipeline, 0, false)
}

// ExecutePipeline runs the transforms of pipeline starting at
// startPosition. Each function receives the result of the previous one.
func (r *FunctionsPipelineRuntime) ExecutePipeline(appContext *appfunction.Context, data any,
	pipeline *interfaces.FunctionPipeline, startPosition int, isRetry bool) *MessageError {
	var result any
	log := appContext.LoggingClient()

	for position := startPosition; position < len(pipeline.Transforms); position++ {
		appContext.SetRetryData(nil)

		input := data
		if result != nil {
			input = result
		}

		var continuePipeline bool
		continuePipeline, result = pipeline.Transforms[position](appContext, input)

		if !continuePipeline {
			if err, ok := result.(error); ok {
				log.Err(err).
					Str("func", "*FunctionsPipelineRuntime.ExecutePipeline").
					Str("pipeline", pipeline.Id).
					Int("position", position).
					Msg("pipeline function resulted in error")

				if retryData := appContext.RetryData(); retryData != nil && !isRetry {
					r.StoreForward.StoreForLaterRetry(retryData, appContext, pipeline, position)
				}

				pipeline.ProcessingErrors.Inc()
				return &MessageError{
					Err:       fmt.Errorf("%w: pipeline '%s' function #%d: %w", ErrPipelineFunction, pipeline.Id, position, err),
					ErrorCode: http.StatusUnprocessableEntity,
				}
			}
			break
		}

		if !isRetry && appContext.IsRetryTriggered() {
			appContext.ClearRetryTriggerFlag()
			go r.StoreForward.TriggerRetry()
		}
	}

	return nil
}

// CalculatePipelineHash identifies a pipeline by the names of its
// functions.
func CalculatePipelineHash(transforms ...interfaces.AppFunction) string {
	names := make([]string, 0, len(transforms))
	for _, transform := range transforms {
		names = append(names, utils.FunctionName(transform))
	}
	return pipelineHashPrefix + strings.Join(names, ",")
}

func newFunctionPipeline(id string, topics []string, transforms []interfaces.AppFunction) *interfaces.FunctionPipeline {
	return &interfaces.FunctionPipeline{
		Id:         id,
		Topics:     topics,
		Transforms: transforms,
		Hash:       CalculatePipelineHash(transforms...),
		MessagesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metrics.PipelineMessagesProcessedName,
			Help: "Number of messages processed by the functions pipeline",
		}),
		MessageProcessingTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metrics.PipelineMessageProcessingTimeName,
			Help:    "Time spent processing a message in the functions pipeline, in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		ProcessingErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metrics.PipelineProcessingErrorsName,
			Help: "Number of errors returned by the functions pipeline",
		}),
	}
}

func (r *FunctionsPipelineRuntime) registerPipelineMetrics(pipeline *interfaces.FunctionPipeline) {
	manager := r.dic.MetricsManager
	if manager == nil {
		return
	}

	tags := map[string]string{metrics.PipelineIdTag: pipeline.Id}
	collectors := map[string]prometheus.Collector{
		metrics.PipelineMessagesProcessedName:     pipeline.MessagesProcessed,
		metrics.PipelineMessageProcessingTimeName: pipeline.MessageProcessingTime,
		metrics.PipelineProcessingErrorsName:      pipeline.ProcessingErrors,
	}

	for baseName, collector := range collectors {
		name := metrics.RegistrationName(baseName, pipeline.Id)
		if err := manager.Register(name, collector, tags); err != nil {
			r.log.Warn().Err(err).Str("metric", name).Msg("unable to register metric, it will not be reported")
			continue
		}
		r.log.Debug().Str("metric", name).Msg("metric registered and will be reported (if enabled)")
	}
}

func (r *FunctionsPipelineRuntime) unregisterPipelineMetrics(id string) {
	manager := r.dic.MetricsManager
	if manager == nil {
		return
	}

	for _, baseName := range []string{
		metrics.PipelineMessagesProcessedName,
		metrics.PipelineMessageProcessingTimeName,
		metrics.PipelineProcessingErrorsName,
	} {
		manager.Unregister(metrics.RegistrationName(baseName, id))
	}
}
