package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/internal/mqttfactory"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

type redisMessageClient struct {
	client *redis.Client
	log    *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	subs map[string]*redis.PubSub
	wg   sync.WaitGroup
}

// NewRedisMessageClient publishes envelopes as JSON over Redis pub/sub.
// MQTT topic filters are subscribed as PSUBSCRIBE patterns.
func NewRedisMessageClient(opts *redis.Options, log *logger.Logger) MessageClient {
	ctx, cancel := context.WithCancel(context.Background())
	return &redisMessageClient{
		client: redis.NewClient(opts),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
		subs:   make(map[string]*redis.PubSub),
	}
}

func redisOptions(cfg *config.StructuredConfig, host HostInfo, secrets interfaces.SecretProvider) (*redis.Options, error) {
	opts := &redis.Options{
		Addr:        net.JoinHostPort(host.Host, strconv.Itoa(host.Port)),
		DB:          cfg.OptionalInt(OptionalDatabase, 0),
		DialTimeout: seconds(cfg.OptionalInt(OptionalConnectTimeout, 5)),
	}

	if cfg.MessageBus.AuthMode == mqttfactory.AuthModeUsernamePassword {
		data, err := mqttfactory.GetSecretData(cfg.MessageBus.AuthMode, cfg.MessageBus.SecretName, secrets)
		if err != nil {
			return nil, err
		}
		opts.Username = data.Username
		opts.Password = data.Password
	}

	return opts, nil
}

// RedisPattern converts an MQTT topic filter into a glob pattern.
// Both wildcards become *, which also matches across levels.
func RedisPattern(topic string) string {
	levels := strings.Split(topic, models.TopicLevelSeparator)
	for i, level := range levels {
		if level == models.TopicWildcard || level == models.TopicSingleLevelWild {
			levels[i] = "*"
		}
	}
	return strings.Join(levels, models.TopicLevelSeparator)
}

func (c *redisMessageClient) Connect() error {
	if err := c.client.Ping(c.ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

func (c *redisMessageClient) Publish(message models.MessageEnvelope, topic string) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode message envelope: %w", err)
	}
	if err := c.client.Publish(c.ctx, topic, data).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (c *redisMessageClient) Subscribe(topics []TopicChannel, messageErrors chan error) error {
	for _, tc := range topics {
		pattern := RedisPattern(tc.Topic)
		pubsub := c.client.PSubscribe(c.ctx, pattern)
		if _, err := pubsub.Receive(c.ctx); err != nil {
			_ = pubsub.Close()
			return fmt.Errorf("failed to subscribe to %s: %w", tc.Topic, err)
		}

		c.mu.Lock()
		c.subs[tc.Topic] = pubsub
		c.mu.Unlock()

		c.wg.Add(1)
		go func(tc TopicChannel, ch <-chan *redis.Message) {
			defer c.wg.Done()
			for msg := range ch {
				var envelope models.MessageEnvelope
				if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
					if !deliver(c.ctx, messageErrors, fmt.Errorf("failed to decode message received on %s: %w", msg.Channel, err)) {
						return
					}
					continue
				}
				envelope.ReceivedTopic = msg.Channel
				if !deliver(c.ctx, tc.Messages, envelope) {
					return
				}
			}
		}(tc, pubsub.Channel())

		c.log.Debug().Str("topic", tc.Topic).Str("pattern", pattern).Msg("subscribed to Redis channel pattern")
	}
	return nil
}

func (c *redisMessageClient) Unsubscribe(topics ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, topic := range topics {
		pubsub, ok := c.subs[topic]
		if !ok {
			continue
		}
		if err := pubsub.Close(); err != nil {
			return fmt.Errorf("failed to unsubscribe from %s: %w", topic, err)
		}
		delete(c.subs, topic)
	}
	return nil
}

func (c *redisMessageClient) Disconnect() error {
	c.cancel()

	c.mu.Lock()
	for topic, pubsub := range c.subs {
		_ = pubsub.Close()
		delete(c.subs, topic)
	}
	c.mu.Unlock()

	c.wg.Wait()
	return c.client.Close()
}
