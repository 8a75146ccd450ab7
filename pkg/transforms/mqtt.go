package transforms

import (
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/jpillora/backoff"

	"github.com/MKhiriev/app-functions-sdk-go/internal/messaging"
	"github.com/MKhiriev/app-functions-sdk-go/internal/metrics"
	"github.com/MKhiriev/app-functions-sdk-go/internal/mqttfactory"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/util"
)

const (
	defaultMQTTConnectTimeout = 30 * time.Second
	mqttDisconnectQuiesce     = 250
)

// MQTTSecretConfig configures the MQTT export. Credentials are read from
// SecretName according to AuthMode.
type MQTTSecretConfig struct {
	BrokerAddress string
	ClientId      string

	// Topic may contain {key} placeholders resolved from the context values.
	Topic string

	SecretName     string
	AuthMode       string
	QoS            byte
	Retain         bool
	AutoReconnect  bool
	SkipCertVerify bool

	// KeepAlive and ConnectTimeout are Go durations.
	KeepAlive      string
	ConnectTimeout string
}

type mqttClientCreator func(secrets interfaces.SecretProvider, log *logger.Logger, cfg mqttfactory.MQTTClientConfig) (mqtt.Client, error)

func createMQTTClient(secrets interfaces.SecretProvider, log *logger.Logger, cfg mqttfactory.MQTTClientConfig) (mqtt.Client, error) {
	return mqttfactory.NewFactory(secrets, log).Create(cfg)
}

// MQTTSecretSender publishes pipeline data to an MQTT broker. The client is
// created on first use and re-created when the secrets change.
type MQTTSecretSender struct {
	mu                   sync.Mutex
	client               mqtt.Client
	config               MQTTSecretConfig
	persistOnError       bool
	secretsLastRetrieved time.Time
	createClient         mqttClientCreator

	metrics     exportMetrics
	destination string
}

func NewMQTTSecretSender(config MQTTSecretConfig, persistOnError bool) *MQTTSecretSender {
	if config.ClientId == "" {
		config.ClientId = "app-export-" + uuid.NewString()
	}

	return &MQTTSecretSender{
		config:         config,
		persistOnError: persistOnError,
		createClient:   createMQTTClient,
		metrics:        newExportMetrics(metrics.MqttExportErrorsName, metrics.MqttExportSizeName, "MQTT"),
		destination:    messaging.BuildTopic(config.BrokerAddress, config.Topic),
	}
}

func (sender *MQTTSecretSender) clientConfig() mqttfactory.MQTTClientConfig {
	keepAlive, _ := time.ParseDuration(sender.config.KeepAlive)
	connectTimeout, err := time.ParseDuration(sender.config.ConnectTimeout)
	if err != nil || connectTimeout <= 0 {
		connectTimeout = defaultMQTTConnectTimeout
	}

	return mqttfactory.MQTTClientConfig{
		BrokerAddress:  sender.config.BrokerAddress,
		Topic:          sender.config.Topic,
		SecretName:     sender.config.SecretName,
		AuthMode:       strings.ToLower(sender.config.AuthMode),
		ClientID:       sender.config.ClientId,
		QoS:            sender.config.QoS,
		Retain:         sender.config.Retain,
		AutoReconnect:  sender.config.AutoReconnect,
		SkipVerify:     sender.config.SkipCertVerify,
		KeepAlive:      keepAlive,
		ConnectTimeout: connectTimeout,
	}
}

// initializeClient (re)creates the client unless the current one was built
// after the last secrets update.
func (sender *MQTTSecretSender) initializeClient(log *logger.Logger, secrets interfaces.SecretProvider) error {
	sender.mu.Lock()
	defer sender.mu.Unlock()

	var lastUpdated time.Time
	if secrets != nil {
		lastUpdated = secrets.SecretsLastUpdated()
	}
	if sender.client != nil && !sender.secretsLastRetrieved.Before(lastUpdated) {
		return nil
	}

	log.Info().Str("broker", sender.config.BrokerAddress).Msg("initializing MQTT client for export")

	client, err := sender.createClient(secrets, log, sender.clientConfig())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMQTTClient, err)
	}

	if sender.client != nil && sender.client.IsConnected() {
		sender.client.Disconnect(mqttDisconnectQuiesce)
	}
	sender.client = client
	sender.secretsLastRetrieved = time.Now()
	return nil
}

func (sender *MQTTSecretSender) connectToBroker(log *logger.Logger) error {
	sender.mu.Lock()
	defer sender.mu.Unlock()

	if sender.client.IsConnected() {
		return nil
	}

	log.Info().Str("broker", sender.config.BrokerAddress).Msg("connecting to MQTT broker for export")
	token := sender.client.Connect()
	if !token.WaitTimeout(sender.clientConfig().ConnectTimeout) {
		return fmt.Errorf("connecting to %s: %w", sender.config.BrokerAddress, messaging.ErrTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("connecting to %s: %w", sender.config.BrokerAddress, err)
	}
	return nil
}

// PreConnectToBroker connects ahead of the first export. It makes at most
// retryCount attempts, waiting at least retryInterval between them. A
// failure is logged and the connect is attempted again on the first export.
func (sender *MQTTSecretSender) PreConnectToBroker(log *logger.Logger, secrets interfaces.SecretProvider, retryCount int, retryInterval time.Duration) {
	if err := sender.initializeClient(log, secrets); err != nil {
		log.Err(err).Msg("failed to pre-connect to MQTT broker, will try again on first export")
		return
	}

	b := &backoff.Backoff{Min: retryInterval, Max: 4 * retryInterval, Factor: 2}
	for attempt := 1; attempt <= retryCount; attempt++ {
		err := sender.connectToBroker(log)
		if err == nil {
			log.Info().Int("attempt", attempt).Msg("pre-connected to MQTT broker")
			return
		}

		wait := b.Duration()
		log.Warn().Err(err).Int("attempt", attempt).Dur("retryIn", wait).Msg("failed to pre-connect to MQTT broker")
		if attempt < retryCount {
			time.Sleep(wait)
		}
	}

	log.Error().Int("attempts", retryCount).Msg("failed to pre-connect to MQTT broker, will try again on first export")
}

// Disconnect closes the broker connection. The client is kept, so a send
// running concurrently fails or reconnects instead of seeing no client.
func (sender *MQTTSecretSender) Disconnect() {
	sender.mu.Lock()
	defer sender.mu.Unlock()

	if sender.client != nil && sender.client.IsConnected() {
		sender.client.Disconnect(mqttDisconnectQuiesce)
	}
}

// MQTTSend publishes data to the topic resolved from the context values.
// With persistOnError the data is stored for retry when the export fails.
func (sender *MQTTSecretSender) MQTTSend(ctx interfaces.AppFunctionContext, data any) (bool, any) {
	const function = "MQTTSend"
	log := ctx.LoggingClient()

	if data == nil {
		return false, noDataError(function, ctx)
	}

	exportData, err := util.CoerceType(data)
	if err != nil {
		return false, err
	}

	if err := sender.initializeClient(log, ctx.SecretProvider()); err != nil {
		log.Err(err).Str("pipeline", ctx.PipelineId()).Msg("failed to initialize MQTT client")
		return false, err
	}

	topic, err := ctx.ApplyValues(sender.config.Topic)
	if err != nil {
		return false, fmt.Errorf("function %s in pipeline '%s': %w", function, ctx.PipelineId(), err)
	}

	sender.metrics.register(ctx, metrics.MqttExportErrorsName, metrics.MqttExportSizeName, sender.destination)

	if err := sender.connectToBroker(log); err != nil {
		return false, sender.failed(ctx, exportData, err)
	}

	sender.mu.Lock()
	token := sender.client.Publish(topic, sender.config.QoS, sender.config.Retain, exportData)
	sender.mu.Unlock()

	token.Wait()
	if err := token.Error(); err != nil {
		return false, sender.failed(ctx, exportData, fmt.Errorf("publishing to %s: %w", topic, err))
	}

	if sender.persistOnError {
		ctx.TriggerRetryFailedData()
	}
	sender.metrics.size.Observe(float64(len(exportData)))

	log.Debug().
		Str("pipeline", ctx.PipelineId()).
		Str("topic", topic).
		Int("size", len(exportData)).
		Msg("sent data to MQTT broker")
	return true, nil
}

func (sender *MQTTSecretSender) failed(ctx interfaces.AppFunctionContext, exportData []byte, err error) error {
	sender.metrics.errors.Inc()
	if sender.persistOnError {
		ctx.SetRetryData(exportData)
	}

	err = fmt.Errorf("%w in pipeline '%s': %w", ErrExport, ctx.PipelineId(), err)
	ctx.LoggingClient().Err(err).Msg("MQTT export failed")
	return err
}
