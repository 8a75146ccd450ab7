// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// StructuredConfig is the top-level configuration of an application
// service. It is populated by merging environment variables, command-line
// flags, the service configuration file and the common configuration file.
//
// Struct tags:
//   - yaml: section and key names in the configuration files.
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Writable holds the settings that may change while the service runs.
	Writable WritableInfo `yaml:"Writable" envPrefix:"WRITABLE_"`

	// Service holds the REST listener and request limits.
	Service ServiceInfo `yaml:"Service" envPrefix:"SERVICE_"`

	// HttpServer selects plain HTTP or HTTPS and the secrets backing it.
	HttpServer HttpServerInfo `yaml:"HttpServer" envPrefix:"HTTPSERVER_"`

	// Clients maps core service keys to their endpoints.
	Clients map[string]ClientInfo `yaml:"Clients"`

	// MessageBus configures the connection to the EdgeX message bus.
	MessageBus MessageBusInfo `yaml:"MessageBus" envPrefix:"MESSAGEBUS_"`

	// Trigger selects what invokes the functions pipelines.
	Trigger TriggerInfo `yaml:"Trigger" envPrefix:"TRIGGER_"`

	// ApplicationSettings are free-form string settings for the service.
	ApplicationSettings map[string]string `yaml:"ApplicationSettings"`

	// Database backs store-and-forward.
	Database DatabaseInfo `yaml:"Database" envPrefix:"DATABASE_"`

	// Sources locates the configuration files. It is filled from flags and
	// environment only.
	Sources Sources `yaml:"-" envPrefix:"EDGEX_"`

	// Custom collects every top-level section not listed above.
	Custom map[string]any `yaml:",inline"`
}

// WritableInfo holds the settings reloaded when the configuration file
// changes.
type WritableInfo struct {
	// Env: WRITABLE_LOGLEVEL
	LogLevel string `yaml:"LogLevel" env:"LOGLEVEL"`

	StoreAndForward StoreAndForwardInfo `yaml:"StoreAndForward" envPrefix:"STOREANDFORWARD_"`

	// InsecureSecrets are served by the insecure secret provider.
	InsecureSecrets map[string]SecretData `yaml:"InsecureSecrets"`

	Telemetry TelemetryInfo `yaml:"Telemetry" envPrefix:"TELEMETRY_"`

	// Pipeline describes the configurable functions pipelines.
	Pipeline PipelineInfo `yaml:"Pipeline"`
}

// StoreAndForwardInfo controls persistence of failed exports for retry.
type StoreAndForwardInfo struct {
	Enabled bool `yaml:"Enabled" env:"ENABLED"`

	// RetryInterval is a Go duration string (e.g. "5m").
	RetryInterval string `yaml:"RetryInterval" env:"RETRYINTERVAL"`

	// MaxRetryCount of 0 retries forever.
	MaxRetryCount int `yaml:"MaxRetryCount" env:"MAXRETRYCOUNT"`
}

// SecretData is a named group of secret key/value pairs.
type SecretData struct {
	SecretName string            `yaml:"SecretName"`
	SecretData map[string]string `yaml:"SecretData"`
}

// TelemetryInfo controls which metrics are published and how often.
type TelemetryInfo struct {
	Interval string `yaml:"Interval" env:"INTERVAL"`

	// Metrics enables reporting per metric base name.
	Metrics map[string]bool `yaml:"Metrics"`

	// Tags are added to every reported metric.
	Tags map[string]string `yaml:"Tags"`
}

// PipelineInfo describes the configurable pipelines built from function
// names.
type PipelineInfo struct {
	// ExecutionOrder is the comma separated function list of the default
	// pipeline.
	ExecutionOrder string `yaml:"ExecutionOrder"`

	PerTopicPipelines map[string]TopicPipeline `yaml:"PerTopicPipelines"`

	// Functions holds the parameters of every configurable function, keyed
	// by its name as used in an execution order.
	Functions map[string]PipelineFunction `yaml:"Functions"`
}

// TopicPipeline is a configurable pipeline bound to its own topics.
type TopicPipeline struct {
	Id             string `yaml:"Id"`
	Topics         string `yaml:"Topics"`
	ExecutionOrder string `yaml:"ExecutionOrder"`
}

// PipelineFunction holds the string parameters of one configurable function.
type PipelineFunction struct {
	Parameters map[string]string `yaml:"Parameters"`
}

// ServiceInfo configures the REST listener.
type ServiceInfo struct {
	Host string `yaml:"Host" env:"HOST"`
	Port int    `yaml:"Port" env:"PORT"`

	// ServerBindAddr overrides Host as the listen address when set.
	ServerBindAddr string `yaml:"ServerBindAddr" env:"SERVERBINDADDR"`

	StartupMsg string `yaml:"StartupMsg" env:"STARTUPMSG"`

	// MaxRequestSize limits request bodies in kilobytes. 0 disables the limit.
	MaxRequestSize int64 `yaml:"MaxRequestSize" env:"MAXREQUESTSIZE"`

	// RequestTimeout is a Go duration string.
	RequestTimeout string `yaml:"RequestTimeout" env:"REQUESTTIMEOUT"`

	CORSConfiguration CORSConfigurationInfo `yaml:"CORSConfiguration" envPrefix:"CORSCONFIGURATION_"`
}

// CORSConfigurationInfo mirrors the CORS headers the service may emit.
type CORSConfigurationInfo struct {
	EnableCORS           bool   `yaml:"EnableCORS" env:"ENABLECORS"`
	CORSAllowCredentials bool   `yaml:"CORSAllowCredentials" env:"CORSALLOWCREDENTIALS"`
	CORSAllowedOrigin    string `yaml:"CORSAllowedOrigin" env:"CORSALLOWEDORIGIN"`
	CORSAllowedMethods   string `yaml:"CORSAllowedMethods" env:"CORSALLOWEDMETHODS"`
	CORSAllowedHeaders   string `yaml:"CORSAllowedHeaders" env:"CORSALLOWEDHEADERS"`
	CORSExposeHeaders    string `yaml:"CORSExposeHeaders" env:"CORSEXPOSEHEADERS"`
	CORSMaxAge           int    `yaml:"CORSMaxAge" env:"CORSMAXAGE"`
}

// HttpServerInfo selects the listener protocol.
type HttpServerInfo struct {
	// Protocol is "http" or "https".
	Protocol string `yaml:"Protocol" env:"PROTOCOL"`

	// SecretName holds the certificate and key for HTTPS.
	SecretName    string `yaml:"SecretName" env:"SECRETNAME"`
	HTTPSCertName string `yaml:"HTTPSCertName" env:"HTTPSCERTNAME"`
	HTTPSKeyName  string `yaml:"HTTPSKeyName" env:"HTTPSKEYNAME"`

	// AuthSecretName holds the JWT signing key for authenticated routes.
	AuthSecretName string `yaml:"AuthSecretName" env:"AUTHSECRETNAME"`
}

// ClientInfo is the endpoint of a core service.
type ClientInfo struct {
	Protocol string `yaml:"Protocol"`
	Host     string `yaml:"Host"`
	Port     int    `yaml:"Port"`
}

// URL returns protocol://host:port, defaulting the protocol to http.
func (c ClientInfo) URL() string {
	protocol := c.Protocol
	if protocol == "" {
		protocol = "http"
	}
	return fmt.Sprintf("%s://%s:%d", protocol, c.Host, c.Port)
}

// MessageBusInfo configures the EdgeX message bus connection.
type MessageBusInfo struct {
	Disabled bool `yaml:"Disabled" env:"DISABLED"`

	// Type is "mqtt" or "redis".
	Type     string `yaml:"Type" env:"TYPE"`
	Protocol string `yaml:"Protocol" env:"PROTOCOL"`
	Host     string `yaml:"Host" env:"HOST"`
	Port     int    `yaml:"Port" env:"PORT"`

	// AuthMode is one of none, usernamepassword, clientcert or cacert.
	AuthMode   string `yaml:"AuthMode" env:"AUTHMODE"`
	SecretName string `yaml:"SecretName" env:"SECRETNAME"`

	BaseTopicPrefix string `yaml:"BaseTopicPrefix" env:"BASETOPICPREFIX"`

	// Optional carries client specific settings such as ClientId, Qos,
	// KeepAlive, Retained, AutoReconnect, ConnectTimeout and SkipCertVerify.
	Optional map[string]string `yaml:"Optional"`
}

// TriggerInfo selects and configures the pipeline trigger.
type TriggerInfo struct {
	// Type is edgex-messagebus, external-mqtt, http or a custom trigger name.
	Type string `yaml:"Type" env:"TYPE"`

	// SubscribeTopics is a comma separated list of topics.
	SubscribeTopics string `yaml:"SubscribeTopics" env:"SUBSCRIBETOPICS"`

	// PublishTopic may contain {key} placeholders resolved per message.
	PublishTopic string `yaml:"PublishTopic" env:"PUBLISHTOPIC"`

	ExternalMqtt ExternalMqttConfig `yaml:"ExternalMqtt" envPrefix:"EXTERNALMQTT_"`
}

// ExternalMqttConfig configures the external MQTT trigger.
type ExternalMqttConfig struct {
	Url             string `yaml:"Url" env:"URL"`
	SubscribeTopics string `yaml:"SubscribeTopics" env:"SUBSCRIBETOPICS"`
	ClientId        string `yaml:"ClientId" env:"CLIENTID"`
	ConnectTimeout  string `yaml:"ConnectTimeout" env:"CONNECTTIMEOUT"`
	AutoReconnect   bool   `yaml:"AutoReconnect" env:"AUTORECONNECT"`
	KeepAlive       string `yaml:"KeepAlive" env:"KEEPALIVE"`
	QoS             byte   `yaml:"QoS" env:"QOS"`
	Retain          bool   `yaml:"Retain" env:"RETAIN"`
	SkipCertVerify  bool   `yaml:"SkipCertVerify" env:"SKIPCERTVERIFY"`
	SecretName      string `yaml:"SecretName" env:"SECRETNAME"`
	AuthMode        string `yaml:"AuthMode" env:"AUTHMODE"`

	// RetryDuration and RetryInterval are in seconds.
	RetryDuration int `yaml:"RetryDuration" env:"RETRYDURATION"`
	RetryInterval int `yaml:"RetryInterval" env:"RETRYINTERVAL"`

	Will WillConfig `yaml:"Will" envPrefix:"WILL_"`
}

// WillConfig is the MQTT last will published by the broker on disconnect.
type WillConfig struct {
	Enabled  bool   `yaml:"Enabled" env:"ENABLED"`
	Payload  string `yaml:"Payload" env:"PAYLOAD"`
	Qos      byte   `yaml:"Qos" env:"QOS"`
	Retained bool   `yaml:"Retained" env:"RETAINED"`
	Topic    string `yaml:"Topic" env:"TOPIC"`
}

// DatabaseInfo configures the store-and-forward database.
type DatabaseInfo struct {
	// Type is sqlite, postgres or redisdb.
	Type string `yaml:"Type" env:"TYPE"`
	Host string `yaml:"Host" env:"HOST"`
	Port int    `yaml:"Port" env:"PORT"`

	// Name is the database name, or the file path for sqlite.
	Name string `yaml:"Name" env:"NAME"`

	// Timeout is a Go duration string applied to connect and queries.
	Timeout string `yaml:"Timeout" env:"TIMEOUT"`

	// SecretName holds username and password, when the database needs them.
	SecretName string `yaml:"SecretName" env:"SECRETNAME"`
}

// Sources locates the configuration files.
type Sources struct {
	// Env: EDGEX_CONFIG_FILE
	ConfigFile string `env:"CONFIG_FILE"`
	// Env: EDGEX_CONFIG_DIR
	ConfigDir string `env:"CONFIG_DIR"`
	// Env: EDGEX_PROFILE
	Profile string `env:"PROFILE"`
	// Env: EDGEX_COMMON_CONFIG
	CommonConfig string `env:"COMMON_CONFIG"`

	Overwrite bool `env:"OVERWRITE"`
	DevMode   bool `env:"DEV_MODE"`
}

// MessageBusURL returns protocol://host:port of the message bus.
func (c *StructuredConfig) MessageBusURL() string {
	u := url.URL{
		Scheme: c.MessageBus.Protocol,
		Host:   c.MessageBus.Host + ":" + strconv.Itoa(c.MessageBus.Port),
	}
	return u.String()
}

// ListenAddress returns the address the REST server binds to.
func (c *StructuredConfig) ListenAddress() string {
	host := c.Service.ServerBindAddr
	if host == "" {
		host = c.Service.Host
	}
	return host + ":" + strconv.Itoa(c.Service.Port)
}

// OptionalBool reads a boolean from MessageBus.Optional.
func (c *StructuredConfig) OptionalBool(key string, def bool) bool {
	v, ok := c.MessageBus.Optional[key]
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

// OptionalInt reads an integer from MessageBus.Optional.
func (c *StructuredConfig) OptionalInt(key string, def int) int {
	v, ok := c.MessageBus.Optional[key]
	if !ok {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

// GetStructuredConfig loads, merges, and validates the service
// configuration. Sources are applied in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables (a .env file is loaded first)
//  2. Command-line flags
//  3. The service configuration file
//  4. The common configuration file given with -cc
//  5. Built-in defaults
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withFiles().
		build()
}
