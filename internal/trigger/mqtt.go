package trigger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/internal/container"
	"github.com/MKhiriev/app-functions-sdk-go/internal/messaging"
	"github.com/MKhiriev/app-functions-sdk-go/internal/mqttfactory"
	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// External MQTT defaults.
const (
	DefaultMqttRetryDuration  = 600 * time.Second
	DefaultMqttRetryInterval  = 5 * time.Second
	DefaultMqttConnectTimeout = 30 * time.Second

	mqttDisconnectQuiesce = 250
)

// MqttTrigger subscribes to topics of an MQTT broker outside of EdgeX.
type MqttTrigger struct {
	dic    *container.Container
	config interfaces.TriggerConfig
	log    *logger.Logger

	factory   *mqttfactory.Factory
	newClient func(opts *mqtt.ClientOptions) mqtt.Client

	mu     sync.RWMutex
	client mqtt.Client
	qos    byte
	retain bool
	topics []string

	// inflight tracks pipelines started by messageHandler.
	inflight sync.WaitGroup
}

func NewMqttTrigger(dic *container.Container, tc interfaces.TriggerConfig) *MqttTrigger {
	return &MqttTrigger{
		dic:       dic,
		config:    tc,
		log:       dic.Logger,
		factory:   mqttfactory.NewFactory(dic.SecretProvider, dic.Logger),
		newClient: mqtt.NewClient,
	}
}

// Initialize connects to the broker, retrying for RetryDuration. Topics
// are subscribed on every (re)connect.
func (t *MqttTrigger) Initialize(ctx context.Context, _ *sync.WaitGroup) (interfaces.Deferred, error) {
	cfg := t.dic.Config().Trigger.ExternalMqtt

	topics := utils.SplitAndTrim(cfg.SubscribeTopics)
	if len(topics) == 0 {
		return nil, ErrNoSubscribeTopics
	}

	clientCfg, err := mqttClientConfig(cfg)
	if err != nil {
		return nil, err
	}

	opts, err := t.factory.ClientOptions(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create external MQTT client options: %w", err)
	}
	opts.SetOnConnectHandler(t.onConnect)

	client := t.newClient(opts)

	t.mu.Lock()
	t.client = client
	t.qos = cfg.QoS
	t.retain = cfg.Retain
	t.topics = topics
	t.mu.Unlock()

	policy := messaging.RetryPolicy{
		Interval: secondsOr(cfg.RetryInterval, DefaultMqttRetryInterval),
		Duration: secondsOr(cfg.RetryDuration, DefaultMqttRetryDuration),
	}

	t.log.Info().
		Str("broker", cfg.Url).
		Str("clientID", clientCfg.ClientID).
		Strs("topics", topics).
		Msg("connecting to external MQTT broker")

	err = messaging.ConnectWithRetry(ctx, cfg.Url, policy, t.log, func() error {
		token := client.Connect()
		if !token.WaitTimeout(clientCfg.ConnectTimeout) {
			return messaging.ErrTimeout
		}
		return token.Error()
	})
	if err != nil {
		return nil, err
	}

	deferred := func() {
		t.log.Info().Str("broker", cfg.Url).Msg("disconnecting from external MQTT broker")
		client.Disconnect(mqttDisconnectQuiesce)
		t.inflight.Wait()
	}
	return deferred, nil
}

func (t *MqttTrigger) onConnect(client mqtt.Client) {
	t.mu.RLock()
	topics, qos := t.topics, t.qos
	t.mu.RUnlock()

	for _, topic := range topics {
		token := client.Subscribe(topic, qos, t.messageHandler)
		if token.Wait() && token.Error() != nil {
			t.log.Err(token.Error()).Str("topic", topic).Msg("unable to subscribe to external MQTT topic")
			continue
		}
		t.log.Info().Str("topic", topic).Msg("subscribed to external MQTT topic")
	}
}

func (t *MqttTrigger) messageHandler(_ mqtt.Client, message mqtt.Message) {
	payload := message.Payload()

	contentType := models.ContentTypeCBOR
	if len(payload) > 0 && (payload[0] == '{' || payload[0] == '[') {
		contentType = models.ContentTypeJSON
	}

	envelope := models.MessageEnvelope{
		ApiVersion:    models.ApiVersion,
		CorrelationID: utils.NewCorrelationID(),
		ReceivedTopic: message.Topic(),
		Payload:       payload,
		ContentType:   contentType,
	}

	t.log.Debug().
		Str("topic", envelope.ReceivedTopic).
		Str("correlationID", envelope.CorrelationID).
		Str("contentType", contentType).
		Msg("message received from external MQTT broker")

	t.inflight.Add(1)
	go func() {
		defer t.inflight.Done()
		appContext := t.config.ContextBuilder(envelope)
		if err := t.config.MessageReceived(appContext, envelope, t.responseHandler); err != nil {
			t.log.WithCorrelationID(envelope.CorrelationID).Debug().Err(err).Msg("message processing finished with errors")
		}
	}()
}

func (t *MqttTrigger) responseHandler(appContext interfaces.AppFunctionContext, pipeline *interfaces.FunctionPipeline) error {
	data := appContext.ResponseData()
	if len(data) == 0 {
		return nil
	}

	publishTopic := t.dic.Config().Trigger.PublishTopic
	if publishTopic == "" {
		return nil
	}

	topic, err := appContext.ApplyValues(publishTopic)
	if err != nil {
		return fmt.Errorf("%w for pipeline %s: %w", ErrPublishResponse, pipeline.Id, err)
	}

	t.mu.RLock()
	client, qos, retain := t.client, t.qos, t.retain
	t.mu.RUnlock()
	if client == nil {
		return errors.Join(ErrPublishResponse, ErrNoMessageBus)
	}

	token := client.Publish(topic, qos, retain, data)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("%w to %s: %w", ErrPublishResponse, topic, token.Error())
	}

	appContext.LoggingClient().Debug().
		Str("pipeline", pipeline.Id).
		Str("topic", topic).
		Msg("published pipeline response to external MQTT broker")
	return nil
}

func mqttClientConfig(cfg config.ExternalMqttConfig) (mqttfactory.MQTTClientConfig, error) {
	if strings.TrimSpace(cfg.Url) == "" {
		return mqttfactory.MQTTClientConfig{}, fmt.Errorf("%w: Url is empty", ErrInvalidMqttConfig)
	}

	connectTimeout, err := durationOr(cfg.ConnectTimeout, DefaultMqttConnectTimeout)
	if err != nil {
		return mqttfactory.MQTTClientConfig{}, fmt.Errorf("%w: ConnectTimeout: %w", ErrInvalidMqttConfig, err)
	}
	keepAlive, err := durationOr(cfg.KeepAlive, 0)
	if err != nil {
		return mqttfactory.MQTTClientConfig{}, fmt.Errorf("%w: KeepAlive: %w", ErrInvalidMqttConfig, err)
	}

	clientID := cfg.ClientId
	if clientID == "" {
		clientID = "app-trigger-" + uuid.NewString()
	}

	return mqttfactory.MQTTClientConfig{
		BrokerAddress:  cfg.Url,
		SecretName:     cfg.SecretName,
		AuthMode:       cfg.AuthMode,
		ClientID:       clientID,
		QoS:            cfg.QoS,
		Retain:         cfg.Retain,
		AutoReconnect:  cfg.AutoReconnect,
		SkipVerify:     cfg.SkipCertVerify,
		KeepAlive:      keepAlive,
		ConnectTimeout: connectTimeout,
		Will: mqttfactory.WillConfig{
			Enabled:  cfg.Will.Enabled,
			Topic:    cfg.Will.Topic,
			Payload:  cfg.Will.Payload,
			Qos:      cfg.Will.Qos,
			Retained: cfg.Will.Retained,
		},
	}, nil
}

// durationOr parses a Go duration. A bare number is read as seconds.
func durationOr(value string, def time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return def, nil
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}
	return time.ParseDuration(value + "s")
}

func secondsOr(n int, def time.Duration) time.Duration {
	if n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}
