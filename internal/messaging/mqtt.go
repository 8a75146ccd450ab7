package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

const (
	defaultOperationTimeout = 5 * time.Second
	disconnectQuiesce       = 250
)

type mqttMessageClient struct {
	client   mqtt.Client
	qos      byte
	retained bool
	timeout  time.Duration
	log      *logger.Logger

	// done is cancelled on Disconnect and releases handlers blocked on
	// a full subscriber channel.
	done   context.Context
	cancel context.CancelFunc
}

// NewMQTTMessageClient wraps a paho client. Envelopes travel as JSON.
func NewMQTTMessageClient(client mqtt.Client, qos byte, retained bool, timeout time.Duration, log *logger.Logger) MessageClient {
	if timeout <= 0 {
		timeout = defaultOperationTimeout
	}
	done, cancel := context.WithCancel(context.Background())
	return &mqttMessageClient{
		client:   client,
		qos:      qos,
		retained: retained,
		timeout:  timeout,
		log:      log,
		done:     done,
		cancel:   cancel,
	}
}

func (c *mqttMessageClient) Connect() error {
	if c.client.IsConnected() {
		return nil
	}
	if err := c.wait(c.client.Connect()); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	return nil
}

func (c *mqttMessageClient) Publish(message models.MessageEnvelope, topic string) error {
	if !c.client.IsConnected() {
		return ErrNotConnected
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode message envelope: %w", err)
	}

	if err := c.wait(c.client.Publish(topic, c.qos, c.retained, data)); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (c *mqttMessageClient) Subscribe(topics []TopicChannel, messageErrors chan error) error {
	for _, tc := range topics {
		handler := func(_ mqtt.Client, msg mqtt.Message) {
			var envelope models.MessageEnvelope
			if err := json.Unmarshal(msg.Payload(), &envelope); err != nil {
				deliver(c.done, messageErrors, fmt.Errorf("failed to decode message received on %s: %w", msg.Topic(), err))
				return
			}
			envelope.ReceivedTopic = msg.Topic()
			deliver(c.done, tc.Messages, envelope)
		}

		if err := c.wait(c.client.Subscribe(tc.Topic, c.qos, handler)); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", tc.Topic, err)
		}
		c.log.Debug().Str("topic", tc.Topic).Msg("subscribed to MQTT topic")
	}
	return nil
}

func (c *mqttMessageClient) Unsubscribe(topics ...string) error {
	if err := c.wait(c.client.Unsubscribe(topics...)); err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	return nil
}

func (c *mqttMessageClient) Disconnect() error {
	c.cancel()
	c.client.Disconnect(disconnectQuiesce)
	return nil
}

func (c *mqttMessageClient) wait(token mqtt.Token) error {
	if !token.WaitTimeout(c.timeout) {
		return ErrTimeout
	}
	return token.Error()
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
