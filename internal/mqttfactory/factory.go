// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mqttfactory builds paho MQTT clients from configuration and the
// credentials held by the secret provider.
package mqttfactory

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// Auth modes.
const (
	AuthModeNone             = "none"
	AuthModeUsernamePassword = "usernamepassword"
	AuthModeCert             = "clientcert"
	AuthModeCA               = "cacert"
)

// Secret keys read for each auth mode.
const (
	SecretUsernameKey   = "username"
	SecretPasswordKey   = "password"
	SecretClientCertKey = "clientcert"
	SecretClientKeyKey  = "clientkey"
	SecretCACertKey     = "cacert"
)

// WillConfig is the last will the broker publishes when the client drops.
type WillConfig struct {
	Enabled  bool
	Topic    string
	Payload  string
	Qos      byte
	Retained bool
}

// MQTTClientConfig describes one MQTT client connection.
type MQTTClientConfig struct {
	// BrokerAddress is a URL such as tcp://localhost:1883 or ssl://host:8883.
	BrokerAddress string
	Topic         string
	SecretName    string
	// AuthMode is one of none, usernamepassword, clientcert or cacert. A CA
	// certificate found in the secret is used by every mode except none.
	AuthMode       string
	ClientID       string
	QoS            byte
	Retain         bool
	AutoReconnect  bool
	SkipVerify     bool
	KeepAlive      time.Duration
	ConnectTimeout time.Duration
	Will           WillConfig
}

// SecretData holds the credentials read for an auth mode.
type SecretData struct {
	Username     string
	Password     string
	CertPemBlock []byte
	KeyPemBlock  []byte
	CaPemBlock   []byte
}

// Factory creates MQTT clients.
type Factory struct {
	secrets interfaces.SecretProvider
	log     *logger.Logger

	// newClient is swapped in tests.
	newClient func(opts *mqtt.ClientOptions) mqtt.Client
}

func NewFactory(secrets interfaces.SecretProvider, log *logger.Logger) *Factory {
	return &Factory{
		secrets:   secrets,
		log:       log,
		newClient: mqtt.NewClient,
	}
}

// Create builds a client for cfg. The client is not connected.
func (f *Factory) Create(cfg MQTTClientConfig) (mqtt.Client, error) {
	opts, err := f.ClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	return f.newClient(opts), nil
}

// ClientOptions builds the paho options for cfg, reading and validating
// the credentials for its auth mode.
func (f *Factory) ClientOptions(cfg MQTTClientConfig) (*mqtt.ClientOptions, error) {
	if cfg.AuthMode == "" {
		cfg.AuthMode = AuthModeNone
		f.log.Warn().Str("func", "*mqttfactory.Factory.ClientOptions").Msg("AuthMode is not set, defaulting to none")
	}

	secretData, err := GetSecretData(cfg.AuthMode, cfg.SecretName, f.secrets)
	if err != nil {
		return nil, err
	}
	if secretData != nil {
		if err := ValidateSecretData(cfg.AuthMode, cfg.SecretName, secretData); err != nil {
			return nil, err
		}
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.BrokerAddress)
	opts.SetClientID(cfg.ClientID)
	opts.SetAutoReconnect(cfg.AutoReconnect)
	if cfg.KeepAlive > 0 {
		opts.SetKeepAlive(cfg.KeepAlive)
	}
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}
	if cfg.Will.Enabled {
		opts.SetWill(cfg.Will.Topic, cfg.Will.Payload, cfg.Will.Qos, cfg.Will.Retained)
	}

	if secretData != nil {
		if cfg.AuthMode == AuthModeUsernamePassword {
			opts.SetUsername(secretData.Username)
			opts.SetPassword(secretData.Password)
		}
		tlsConfig, err := newTLSConfig(cfg.AuthMode, cfg.SkipVerify, secretData)
		if err != nil {
			return nil, err
		}
		if tlsConfig != nil {
			opts.SetTLSConfig(tlsConfig)
		}
	} else if cfg.SkipVerify {
		opts.SetTLSConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec
	}

	return opts, nil
}

// GetSecretData reads the credentials of authMode from secretName. It
// returns nil for the none mode.
func GetSecretData(authMode, secretName string, secrets interfaces.SecretProvider) (*SecretData, error) {
	switch authMode {
	case AuthModeNone:
		return nil, nil
	case AuthModeUsernamePassword, AuthModeCert, AuthModeCA:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAuthMode, authMode)
	}

	if secrets == nil {
		return nil, ErrNoSecretProvider
	}

	values, err := secrets.GetSecret(secretName)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret %s: %w", secretName, err)
	}

	return &SecretData{
		Username:     values[SecretUsernameKey],
		Password:     values[SecretPasswordKey],
		CertPemBlock: []byte(values[SecretClientCertKey]),
		KeyPemBlock:  []byte(values[SecretClientKeyKey]),
		CaPemBlock:   []byte(values[SecretCACertKey]),
	}, nil
}

// ValidateSecretData checks that the keys authMode needs are present.
func ValidateSecretData(authMode, secretName string, data *SecretData) error {
	switch authMode {
	case AuthModeUsernamePassword:
		if data.Username == "" || data.Password == "" {
			return fmt.Errorf("%w: %s needs %s and %s", ErrMissingSecretData, secretName, SecretUsernameKey, SecretPasswordKey)
		}
	case AuthModeCert:
		if len(data.CertPemBlock) == 0 || len(data.KeyPemBlock) == 0 {
			return fmt.Errorf("%w: %s needs %s and %s", ErrMissingSecretData, secretName, SecretClientCertKey, SecretClientKeyKey)
		}
	case AuthModeCA:
		if len(data.CaPemBlock) == 0 {
			return fmt.Errorf("%w: %s needs %s", ErrMissingSecretData, secretName, SecretCACertKey)
		}
	}
	return nil
}

func newTLSConfig(authMode string, skipVerify bool, data *SecretData) (*tls.Config, error) {
	if authMode == AuthModeUsernamePassword && len(data.CaPemBlock) == 0 && !skipVerify {
		return nil, nil
	}

	tlsConfig := &tls.Config{InsecureSkipVerify: skipVerify} //nolint:gosec

	if len(data.CaPemBlock) > 0 {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(data.CaPemBlock) {
			return nil, fmt.Errorf("%w: CA certificate could not be parsed", ErrInvalidTLSData)
		}
		tlsConfig.RootCAs = pool
	}

	if authMode == AuthModeCert {
		cert, err := tls.X509KeyPair(data.CertPemBlock, data.KeyPemBlock)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTLSData, err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}
