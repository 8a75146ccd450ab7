package transforms

import (
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/app-functions-sdk-go/internal/mock"
	"github.com/MKhiriev/app-functions-sdk-go/internal/mqttfactory"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// newTestMQTTSender returns a sender whose clients are in-memory fakes. Every
// created client is appended to *created.
func newTestMQTTSender(cfg MQTTSecretConfig, persistOnError bool, created *[]*mock.MQTTClient) *MQTTSecretSender {
	sender := NewMQTTSecretSender(cfg, persistOnError)
	sender.createClient = func(interfaces.SecretProvider, *logger.Logger, mqttfactory.MQTTClientConfig) (mqtt.Client, error) {
		client := mock.NewMQTTClient()
		*created = append(*created, client)
		return client, nil
	}
	return sender
}

func TestMQTTSecretSender_MQTTSend(t *testing.T) {
	var clients []*mock.MQTTClient
	sender := newTestMQTTSender(MQTTSecretConfig{
		BrokerAddress: "tcp://broker:1883",
		Topic:         "export/{devicename}",
		QoS:           1,
		Retain:        true,
	}, true, &clients)

	ctx := newTestContext(t)
	ctx.AddValue("devicename", testDevice)

	ok, result := sender.MQTTSend(ctx, "payload")
	require.True(t, ok)
	assert.Nil(t, result)
	assert.True(t, ctx.IsRetryTriggered())

	require.Len(t, clients, 1)
	assert.Equal(t, []mock.Published{{
		Topic:    "export/" + testDevice,
		QoS:      1,
		Retained: true,
		Payload:  []byte("payload"),
	}}, clients[0].PublishedMessages())

	// the connected client is reused
	ok, _ = sender.MQTTSend(ctx, "again")
	require.True(t, ok)
	assert.Len(t, clients, 1)
	assert.Equal(t, 1, clients[0].ConnectCalls)
}

func TestMQTTSecretSender_RecreatesClientAfterSecretsUpdate(t *testing.T) {
	var clients []*mock.MQTTClient
	sender := newTestMQTTSender(MQTTSecretConfig{BrokerAddress: "tcp://broker:1883", Topic: "export"}, false, &clients)
	ctx := newTestContext(t)

	ok, _ := sender.MQTTSend(ctx, "one")
	require.True(t, ok)

	time.Sleep(time.Millisecond)
	require.NoError(t, ctx.SecretProvider().StoreSecret("mqtt", map[string]string{"username": "u", "password": "p"}))

	ok, _ = sender.MQTTSend(ctx, "two")
	require.True(t, ok)

	require.Len(t, clients, 2)
	assert.Equal(t, 1, clients[0].DisconnectCalls)
	assert.Len(t, clients[1].PublishedMessages(), 1)
}

func TestMQTTSecretSender_ConnectFailure(t *testing.T) {
	var clients []*mock.MQTTClient
	sender := newTestMQTTSender(MQTTSecretConfig{BrokerAddress: "tcp://broker:1883", Topic: "export"}, true, &clients)
	ctx := newTestContext(t)

	// prime the client, then make its connect fail
	require.NoError(t, sender.initializeClient(logger.Nop(), ctx.SecretProvider()))
	clients[0].ConnectErr = assert.AnError

	ok, result := sender.MQTTSend(ctx, "payload")
	assert.False(t, ok)
	assert.ErrorIs(t, result.(error), ErrExport)
	assert.ErrorIs(t, result.(error), assert.AnError)
	assert.Equal(t, []byte("payload"), ctx.RetryData())
	assert.False(t, ctx.IsRetryTriggered())
}

func TestMQTTSecretSender_PublishFailure(t *testing.T) {
	var clients []*mock.MQTTClient
	sender := newTestMQTTSender(MQTTSecretConfig{BrokerAddress: "tcp://broker:1883", Topic: "export"}, false, &clients)
	ctx := newTestContext(t)

	require.NoError(t, sender.initializeClient(logger.Nop(), ctx.SecretProvider()))
	clients[0].PublishErr = assert.AnError

	ok, result := sender.MQTTSend(ctx, "payload")
	assert.False(t, ok)
	assert.ErrorIs(t, result.(error), assert.AnError)
	assert.Nil(t, ctx.RetryData())
}

func TestMQTTSecretSender_InvalidInput(t *testing.T) {
	var clients []*mock.MQTTClient
	sender := newTestMQTTSender(MQTTSecretConfig{BrokerAddress: "tcp://broker:1883", Topic: "export/{missing}"}, false, &clients)

	ok, result := sender.MQTTSend(newTestContext(t), nil)
	assert.False(t, ok)
	assert.ErrorIs(t, result.(error), ErrNoData)

	ok, result = sender.MQTTSend(newTestContext(t), "payload")
	assert.False(t, ok)
	assert.Error(t, result.(error))
}

func TestMQTTSecretSender_PreConnectToBroker(t *testing.T) {
	var clients []*mock.MQTTClient
	sender := newTestMQTTSender(MQTTSecretConfig{BrokerAddress: "tcp://broker:1883", Topic: "export"}, false, &clients)

	sender.PreConnectToBroker(logger.Nop(), newTestContainer(t).SecretProvider, 3, time.Millisecond)

	require.Len(t, clients, 1)
	assert.True(t, clients[0].IsConnected())
	assert.Equal(t, 1, clients[0].ConnectCalls)
}

func TestMQTTSecretSender_PreConnectToBroker_GivesUp(t *testing.T) {
	sender := NewMQTTSecretSender(MQTTSecretConfig{BrokerAddress: "tcp://broker:1883", Topic: "export"}, false)
	client := mock.NewMQTTClient()
	client.ConnectErr = assert.AnError
	sender.createClient = func(interfaces.SecretProvider, *logger.Logger, mqttfactory.MQTTClientConfig) (mqtt.Client, error) {
		return client, nil
	}

	sender.PreConnectToBroker(logger.Nop(), newTestContainer(t).SecretProvider, 3, time.Millisecond)
	assert.Equal(t, 3, client.ConnectCalls)
	assert.False(t, client.IsConnected())
}

func TestMQTTSecretSender_ClientConfig(t *testing.T) {
	sender := NewMQTTSecretSender(MQTTSecretConfig{
		BrokerAddress:  "tcps://broker:8883",
		AuthMode:       "UsernamePassword",
		KeepAlive:      "20s",
		ConnectTimeout: "bogus",
	}, false)

	cfg := sender.clientConfig()
	assert.NotEmpty(t, cfg.ClientID)
	assert.Equal(t, "usernamepassword", cfg.AuthMode)
	assert.Equal(t, 20*time.Second, cfg.KeepAlive)
	assert.Equal(t, defaultMQTTConnectTimeout, cfg.ConnectTimeout)
}

func TestMQTTSecretSender_Disconnect(t *testing.T) {
	var clients []*mock.MQTTClient
	sender := newTestMQTTSender(MQTTSecretConfig{BrokerAddress: "tcp://broker:1883", Topic: "export"}, false, &clients)

	// nothing to close yet
	sender.Disconnect()

	ctx := newTestContext(t)
	ok, _ := sender.MQTTSend(ctx, "payload")
	require.True(t, ok)

	sender.Disconnect()
	require.Len(t, clients, 1)
	assert.Equal(t, 1, clients[0].DisconnectCalls)

	// the same client connects again
	ok, _ = sender.MQTTSend(ctx, "payload")
	require.True(t, ok)
	assert.Len(t, clients, 1)
	assert.Equal(t, 2, clients[0].ConnectCalls)
}

func TestMQTTSecretSender_DisconnectDuringSend(t *testing.T) {
	var clients []*mock.MQTTClient
	sender := newTestMQTTSender(MQTTSecretConfig{BrokerAddress: "tcp://broker:1883", Topic: "export"}, false, &clients)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 25 {
				ctx := newTestContext(t)
				assert.NotPanics(t, func() { sender.MQTTSend(ctx, "payload") })
			}
		}()
		go func() {
			defer wg.Done()
			for range 25 {
				sender.Disconnect()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, clients, 1)
}
