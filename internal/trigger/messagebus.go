// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package trigger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/app-functions-sdk-go/internal/container"
	"github.com/MKhiriev/app-functions-sdk-go/internal/messaging"
	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

const channelBufferSize = 32

// MessageBusTrigger feeds envelopes received on the EdgeX message bus to the
// functions pipelines.
type MessageBusTrigger struct {
	dic    *container.Container
	config interfaces.TriggerConfig
	log    *logger.Logger
}

func NewMessageBusTrigger(dic *container.Container, tc interfaces.TriggerConfig) *MessageBusTrigger {
	return &MessageBusTrigger{
		dic:    dic,
		config: tc,
		log:    dic.Logger,
	}
}

// Initialize subscribes to the configured topics. The bus client must
// already be connected.
func (t *MessageBusTrigger) Initialize(ctx context.Context, wg *sync.WaitGroup) (interfaces.Deferred, error) {
	client := t.dic.MessageClient
	if client == nil {
		return nil, ErrNoMessageBus
	}

	cfg := t.dic.Config()
	topics := utils.SplitAndTrim(cfg.Trigger.SubscribeTopics)
	if len(topics) == 0 {
		return nil, ErrNoSubscribeTopics
	}

	channels := make([]messaging.TopicChannel, 0, len(topics))
	fullTopics := make([]string, 0, len(topics))
	for _, topic := range topics {
		full := messaging.BuildTopic(cfg.MessageBus.BaseTopicPrefix, topic)
		fullTopics = append(fullTopics, full)
		channels = append(channels, messaging.TopicChannel{
			Topic:    full,
			Messages: make(chan models.MessageEnvelope, channelBufferSize),
		})
		t.log.Info().Str("topic", full).Msg("subscribing to message bus topic")
	}

	messageErrors := make(chan error, channelBufferSize)
	if err := client.Subscribe(channels, messageErrors); err != nil {
		return nil, fmt.Errorf("%w to message bus topics: %w", ErrSubscribe, err)
	}

	for _, channel := range channels {
		wg.Add(1)
		go func(channel messaging.TopicChannel) {
			defer wg.Done()
			t.receive(ctx, wg, channel)
		}(channel)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case err := <-messageErrors:
				t.log.Err(err).Msg("message bus error")
			}
		}
	}()

	deferred := func() {
		t.log.Info().Msg("unsubscribing from message bus topics")
		if err := client.Unsubscribe(fullTopics...); err != nil {
			t.log.Err(err).Msg("unable to unsubscribe from message bus topics")
		}
	}

	return deferred, nil
}

// receive runs each envelope in its own goroutine, tracked by wg so that
// shutdown waits for pipelines in flight.
func (t *MessageBusTrigger) receive(ctx context.Context, wg *sync.WaitGroup, channel messaging.TopicChannel) {
	for {
		select {
		case <-ctx.Done():
			t.log.Info().Str("topic", channel.Topic).Msg("exiting message bus receive loop")
			return
		case envelope := <-channel.Messages:
			wg.Add(1)
			go func() {
				defer wg.Done()
				t.processMessage(envelope)
			}()
		}
	}
}

func (t *MessageBusTrigger) processMessage(envelope models.MessageEnvelope) {
	t.log.Debug().
		Str("topic", envelope.ReceivedTopic).
		Str("correlationID", envelope.CorrelationID).
		Str("contentType", envelope.ContentType).
		Msg("message received from message bus")

	appContext := t.config.ContextBuilder(envelope)
	if err := t.config.MessageReceived(appContext, envelope, t.responseHandler); err != nil {
		t.log.WithCorrelationID(envelope.CorrelationID).Debug().Err(err).Msg("message processing finished with errors")
	}
}

// responseHandler publishes the pipeline response data, when there is any,
// to the resolved publish topic under the base topic prefix.
func (t *MessageBusTrigger) responseHandler(appContext interfaces.AppFunctionContext, pipeline *interfaces.FunctionPipeline) error {
	data := appContext.ResponseData()
	if len(data) == 0 {
		return nil
	}

	cfg := t.dic.Config()
	if cfg.Trigger.PublishTopic == "" {
		return nil
	}

	topic, err := appContext.ApplyValues(cfg.Trigger.PublishTopic)
	if err != nil {
		return fmt.Errorf("%w for pipeline %s: %w", ErrPublishResponse, pipeline.Id, err)
	}

	client := t.dic.MessageClient
	if client == nil {
		return errors.Join(ErrPublishResponse, ErrNoMessageBus)
	}

	contentType := appContext.ResponseContentType()
	if contentType == "" {
		contentType = appContext.InputContentType()
	}

	ctx := utils.WithCorrelationID(appContext.Context(), appContext.CorrelationID())
	envelope := models.NewMessageEnvelope(data, utils.WithContentType(ctx, contentType))

	fullTopic := messaging.BuildTopic(cfg.MessageBus.BaseTopicPrefix, topic)
	if err = client.Publish(envelope, fullTopic); err != nil {
		return fmt.Errorf("%w to %s: %w", ErrPublishResponse, fullTopic, err)
	}

	appContext.LoggingClient().Debug().
		Str("pipeline", pipeline.Id).
		Str("topic", fullTopic).
		Msg("published pipeline response to message bus")
	return nil
}
