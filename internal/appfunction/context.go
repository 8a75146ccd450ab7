// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package appfunction implements the context passed to every pipeline
// function.
package appfunction

import (
	"context"
	"fmt"
	"maps"
	"regexp"
	"strings"
	"sync"

	"github.com/MKhiriev/app-functions-sdk-go/internal/container"
	"github.com/MKhiriev/app-functions-sdk-go/internal/messaging"
	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/util"
)

var placeholderRegex = regexp.MustCompile(`\{[^}]*\}`)

// Context is the AppFunctionContext of one message.
type Context struct {
	ctx              context.Context
	correlationID    string
	inputContentType string
	dic              *container.Container

	mu                  sync.RWMutex
	responseData        []byte
	responseContentType string
	retryData           []byte
	retryTriggered      bool
	contextData         map[string]string
}

// NewContext creates a context for the message identified by
// correlationID.
func NewContext(correlationID string, dic *container.Container, inputContentType string) *Context {
	return NewContextWithParent(context.Background(), correlationID, dic, inputContentType)
}

func NewContextWithParent(parent context.Context, correlationID string, dic *container.Container, inputContentType string) *Context {
	return &Context{
		ctx:              utils.WithCorrelationID(parent, correlationID),
		correlationID:    correlationID,
		inputContentType: inputContentType,
		dic:              dic,
		contextData:      make(map[string]string),
	}
}

func (c *Context) Context() context.Context {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ctx
}

// Clone copies the values and the response of the context. The retry
// trigger is not copied.
func (c *Context) Clone() interfaces.AppFunctionContext {
	return c.Copy()
}

// Copy is Clone returning the concrete type.
func (c *Context) Copy() *Context {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return &Context{
		ctx:                 c.ctx,
		correlationID:       c.correlationID,
		inputContentType:    c.inputContentType,
		dic:                 c.dic,
		responseData:        c.responseData,
		responseContentType: c.responseContentType,
		retryData:           c.retryData,
		contextData:         maps.Clone(c.contextData),
	}
}

func (c *Context) CorrelationID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.correlationID
}

// SetCorrelationID replaces the correlation id, also in Context().
func (c *Context) SetCorrelationID(correlationID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.correlationID = correlationID
	c.ctx = utils.WithCorrelationID(c.ctx, correlationID)
}

func (c *Context) InputContentType() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inputContentType
}

func (c *Context) SetInputContentType(contentType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inputContentType = contentType
}

func (c *Context) SetResponseData(output []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responseData = output
}

func (c *Context) ResponseData() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.responseData
}

func (c *Context) SetResponseContentType(contentType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responseContentType = contentType
}

func (c *Context) ResponseContentType() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.responseContentType
}

func (c *Context) SetRetryData(payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retryData = payload
}

func (c *Context) RetryData() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.retryData
}

func (c *Context) TriggerRetryFailedData() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retryTriggered = true
}

// IsRetryTriggered reports whether a function asked for a retry of the
// stored data.
func (c *Context) IsRetryTriggered() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.retryTriggered
}

func (c *Context) ClearRetryTriggerFlag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retryTriggered = false
}

func (c *Context) SecretProvider() interfaces.SecretProvider {
	return c.dic.SecretProvider
}

// LoggingClient returns the service logger tagged with the correlation id.
func (c *Context) LoggingClient() *logger.Logger {
	return c.dic.Logger.WithCorrelationID(c.CorrelationID())
}

func (c *Context) MetricsManager() interfaces.MetricsManager {
	return c.dic.MetricsManager
}

func (c *Context) EventClient() interfaces.EventClient {
	return c.dic.EventClient
}

func (c *Context) ReadingClient() interfaces.ReadingClient {
	return c.dic.ReadingClient
}

func (c *Context) CommandClient() interfaces.CommandClient {
	return c.dic.CommandClient
}

func (c *Context) DeviceClient() interfaces.DeviceClient {
	return c.dic.DeviceClient
}

func (c *Context) DeviceProfileClient() interfaces.DeviceProfileClient {
	return c.dic.DeviceProfileClient
}

func (c *Context) DeviceServiceClient() interfaces.DeviceServiceClient {
	return c.dic.DeviceServiceClient
}

func (c *Context) PipelineId() string {
	id, _ := c.GetValue(interfaces.PIPELINEID)
	return id
}

func (c *Context) AddValue(key string, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contextData[strings.ToLower(key)] = value
}

func (c *Context) RemoveValue(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.contextData, strings.ToLower(key))
}

func (c *Context) GetValue(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.contextData[strings.ToLower(key)]
	return value, ok
}

// GetAllValues returns a copy of the context values.
func (c *Context) GetAllValues() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.contextData)
}

func (c *Context) ApplyValues(format string) (string, error) {
	var missing []string

	result := placeholderRegex.ReplaceAllStringFunc(format, func(placeholder string) string {
		key := strings.TrimSuffix(strings.TrimPrefix(placeholder, "{"), "}")
		value, ok := c.GetValue(key)
		if !ok {
			missing = append(missing, key)
			return placeholder
		}
		return value
	})

	if len(missing) > 0 {
		return format, fmt.Errorf("%w: %s", ErrMissingContextValue, strings.Join(missing, ", "))
	}
	return result, nil
}

func (c *Context) GetDeviceResource(profileName string, resourceName string) (models.DeviceResource, error) {
	client := c.dic.DeviceProfileClient
	if client == nil {
		return models.DeviceResource{}, fmt.Errorf("%w: DeviceProfileClient", ErrClientNotConfigured)
	}

	response, err := client.DeviceResourceByProfileNameAndResourceName(c.Context(), profileName, resourceName)
	if err != nil {
		return models.DeviceResource{}, err
	}
	return response.Resource, nil
}

func (c *Context) Publish(data any, contentType string) error {
	topic, err := c.ApplyValues(c.dic.Config().Trigger.PublishTopic)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublish, err)
	}
	return c.PublishWithTopic(topic, data, contentType)
}

func (c *Context) PublishWithTopic(topic string, data any, contentType string) error {
	client := c.dic.MessageClient
	if client == nil {
		return ErrNoMessageBus
	}

	payload, err := util.CoerceType(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublish, err)
	}

	envelope := models.NewMessageEnvelope(payload, utils.WithContentType(c.Context(), contentType))
	fullTopic := messaging.BuildTopic(c.dic.Config().MessageBus.BaseTopicPrefix, topic)

	if err = client.Publish(envelope, fullTopic); err != nil {
		return fmt.Errorf("%w: %w", ErrPublish, err)
	}

	c.LoggingClient().Debug().Str("topic", fullTopic).Int("size", len(payload)).Msg("published data")
	return nil
}
