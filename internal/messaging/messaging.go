//go:generate mockgen -source=messaging.go -destination=../mock/message_client_mock.go -package=mock

// Package messaging connects application services to the EdgeX message
// bus. MQTT brokers and Redis pub/sub are supported.
package messaging

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/internal/mqttfactory"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// Optional MessageBus settings.
const (
	OptionalClientId       = "ClientId"
	OptionalQos            = "Qos"
	OptionalKeepAlive      = "KeepAlive"
	OptionalRetained       = "Retained"
	OptionalAutoReconnect  = "AutoReconnect"
	OptionalConnectTimeout = "ConnectTimeout"
	OptionalSkipCertVerify = "SkipCertVerify"
	OptionalDatabase       = "Database"
)

// TopicChannel receives the envelopes published to Topic.
type TopicChannel struct {
	Topic    string
	Messages chan models.MessageEnvelope
}

// MessageClient publishes and receives message envelopes.
type MessageClient interface {
	Connect() error
	Publish(message models.MessageEnvelope, topic string) error
	// Subscribe delivers envelopes received on each topic to its channel.
	// Decode and transport failures are sent to messageErrors.
	Subscribe(topics []TopicChannel, messageErrors chan error) error
	Unsubscribe(topics ...string) error
	Disconnect() error
}

// HostInfo locates the message broker.
type HostInfo struct {
	Protocol string
	Host     string
	Port     int
}

// URL returns protocol://host:port or an empty string when the host or the
// port is missing.
func (h HostInfo) URL() string {
	if h.IsEmpty() {
		return ""
	}
	return fmt.Sprintf("%s://%s:%d", h.Protocol, h.Host, h.Port)
}

func (h HostInfo) IsEmpty() bool {
	return h.Host == "" || h.Port == 0
}

// BuildTopic joins topic levels with the level separator, ignoring empty
// parts.
func BuildTopic(parts ...string) string {
	levels := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(part, models.TopicLevelSeparator)
		if part != "" {
			levels = append(levels, part)
		}
	}
	return strings.Join(levels, models.TopicLevelSeparator)
}

// NewMessageClient creates the client for cfg.MessageBus.Type. The client
// is not connected.
func NewMessageClient(cfg *config.StructuredConfig, secrets interfaces.SecretProvider, log *logger.Logger) (MessageClient, error) {
	bus := cfg.MessageBus
	host := HostInfo{Protocol: bus.Protocol, Host: bus.Host, Port: bus.Port}
	if host.IsEmpty() {
		return nil, ErrEmptyHostInfo
	}

	switch strings.ToLower(bus.Type) {
	case config.MessageBusMQTT:
		clientID := bus.Optional[OptionalClientId]
		if clientID == "" {
			clientID = "app-" + uuid.NewString()
		}
		mqttCfg := mqttfactory.MQTTClientConfig{
			BrokerAddress:  host.URL(),
			SecretName:     bus.SecretName,
			AuthMode:       bus.AuthMode,
			ClientID:       clientID,
			QoS:            byte(cfg.OptionalInt(OptionalQos, 0)),
			Retain:         cfg.OptionalBool(OptionalRetained, false),
			AutoReconnect:  cfg.OptionalBool(OptionalAutoReconnect, true),
			SkipVerify:     cfg.OptionalBool(OptionalSkipCertVerify, false),
			KeepAlive:      seconds(cfg.OptionalInt(OptionalKeepAlive, 0)),
			ConnectTimeout: seconds(cfg.OptionalInt(OptionalConnectTimeout, 5)),
		}
		client, err := mqttfactory.NewFactory(secrets, log).Create(mqttCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create MQTT message bus client: %w", err)
		}
		return NewMQTTMessageClient(client, mqttCfg.QoS, mqttCfg.Retain, mqttCfg.ConnectTimeout, log), nil

	case config.MessageBusRedis:
		opts, err := redisOptions(cfg, host, secrets)
		if err != nil {
			return nil, err
		}
		return NewRedisMessageClient(opts, log), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedBusType, bus.Type)
}
