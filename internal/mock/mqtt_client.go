package mock

import (
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTToken is a completed mqtt.Token carrying Err.
type MQTTToken struct {
	Err error
}

func (t *MQTTToken) Wait() bool                     { return true }
func (t *MQTTToken) WaitTimeout(time.Duration) bool { return true }
func (t *MQTTToken) Error() error                   { return t.Err }

func (t *MQTTToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// MQTTMessage is an in-memory mqtt.Message.
type MQTTMessage struct {
	TopicName string
	Body      []byte
	QoS       byte
	Retain    bool
}

func (m *MQTTMessage) Duplicate() bool   { return false }
func (m *MQTTMessage) Qos() byte         { return m.QoS }
func (m *MQTTMessage) Retained() bool    { return m.Retain }
func (m *MQTTMessage) Topic() string     { return m.TopicName }
func (m *MQTTMessage) MessageID() uint16 { return 0 }
func (m *MQTTMessage) Payload() []byte   { return m.Body }
func (m *MQTTMessage) Ack()              {}

// Published is a message recorded by MQTTClient.Publish.
type Published struct {
	Topic    string
	QoS      byte
	Retained bool
	Payload  []byte
}

// MQTTClient is an in-memory mqtt.Client. Publish records messages and
// Deliver feeds a message to the handler subscribed to its topic filter.
type MQTTClient struct {
	mu sync.Mutex

	Connected    bool
	ConnectErr   error
	PublishErr   error
	SubscribeErr error

	ConnectCalls    int
	DisconnectCalls int
	Messages        []Published
	Handlers        map[string]mqtt.MessageHandler
	Unsubscribed    []string
}

func NewMQTTClient() *MQTTClient {
	return &MQTTClient{Handlers: map[string]mqtt.MessageHandler{}}
}

func (c *MQTTClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Connected
}

func (c *MQTTClient) IsConnectionOpen() bool { return c.IsConnected() }

func (c *MQTTClient) Connect() mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ConnectCalls++
	if c.ConnectErr == nil {
		c.Connected = true
	}
	return &MQTTToken{Err: c.ConnectErr}
}

func (c *MQTTClient) Disconnect(uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DisconnectCalls++
	c.Connected = false
}

func (c *MQTTClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.PublishErr != nil {
		return &MQTTToken{Err: c.PublishErr}
	}

	var data []byte
	switch p := payload.(type) {
	case []byte:
		data = p
	case string:
		data = []byte(p)
	}
	c.Messages = append(c.Messages, Published{Topic: topic, QoS: qos, Retained: retained, Payload: data})
	return &MQTTToken{}
}

func (c *MQTTClient) Subscribe(topic string, _ byte, callback mqtt.MessageHandler) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SubscribeErr != nil {
		return &MQTTToken{Err: c.SubscribeErr}
	}
	c.Handlers[topic] = callback
	return &MQTTToken{}
}

func (c *MQTTClient) SubscribeMultiple(filters map[string]byte, callback mqtt.MessageHandler) mqtt.Token {
	for topic, qos := range filters {
		if token := c.Subscribe(topic, qos, callback); token.Error() != nil {
			return token
		}
	}
	return &MQTTToken{}
}

func (c *MQTTClient) Unsubscribe(topics ...string) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, topic := range topics {
		delete(c.Handlers, topic)
		c.Unsubscribed = append(c.Unsubscribed, topic)
	}
	return &MQTTToken{}
}

func (c *MQTTClient) AddRoute(topic string, callback mqtt.MessageHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Handlers[topic] = callback
}

func (c *MQTTClient) OptionsReader() mqtt.ClientOptionsReader {
	return mqtt.NewClient(mqtt.NewClientOptions()).OptionsReader()
}

// Deliver passes a message on topic to the handler registered for filter.
// It reports false when nothing is subscribed to filter.
func (c *MQTTClient) Deliver(filter, topic string, payload []byte) bool {
	c.mu.Lock()
	handler, ok := c.Handlers[filter]
	c.mu.Unlock()
	if !ok {
		return false
	}
	handler(c, &MQTTMessage{TopicName: topic, Body: payload})
	return true
}

// PublishedMessages returns a copy of the recorded messages.
func (c *MQTTClient) PublishedMessages() []Published {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Published(nil), c.Messages...)
}
