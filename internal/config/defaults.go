package config

import "github.com/MKhiriev/app-functions-sdk-go/models"

// Default values applied to settings left empty by every source.
const (
	DefaultLogLevel          = "INFO"
	DefaultServicePort       = 59700
	DefaultRequestTimeout    = "5s"
	DefaultRetryInterval     = "5m"
	DefaultTelemetryInterval = "30s"
	DefaultMessageBusType    = "mqtt"
	DefaultMessageBusHost    = "localhost"
	DefaultMessageBusPort    = 1883
	DefaultProtocol          = "tcp"
	DefaultTriggerType       = "edgex-messagebus"
	DefaultDatabaseType      = "sqlite"
	DefaultDatabaseName      = "app-service.db"
	DefaultDatabaseTimeout   = "5s"
	DefaultAuthMode          = "none"
	DefaultHTTPProtocol      = "http"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		Writable: WritableInfo{
			LogLevel: DefaultLogLevel,
			StoreAndForward: StoreAndForwardInfo{
				RetryInterval: DefaultRetryInterval,
			},
			Telemetry: TelemetryInfo{
				Interval: DefaultTelemetryInterval,
			},
		},
		Service: ServiceInfo{
			Host:           "localhost",
			Port:           DefaultServicePort,
			RequestTimeout: DefaultRequestTimeout,
		},
		HttpServer: HttpServerInfo{
			Protocol: DefaultHTTPProtocol,
		},
		MessageBus: MessageBusInfo{
			Type:            DefaultMessageBusType,
			Protocol:        DefaultProtocol,
			Host:            DefaultMessageBusHost,
			Port:            DefaultMessageBusPort,
			AuthMode:        DefaultAuthMode,
			BaseTopicPrefix: models.DefaultBaseTopic,
		},
		Trigger: TriggerInfo{
			Type: DefaultTriggerType,
		},
		Database: DatabaseInfo{
			Type:    DefaultDatabaseType,
			Name:    DefaultDatabaseName,
			Timeout: DefaultDatabaseTimeout,
		},
	}
}

// applyDevMode points every remote host at localhost.
func (cfg *StructuredConfig) applyDevMode() {
	if !cfg.Sources.DevMode {
		return
	}

	cfg.Service.Host = "localhost"
	cfg.MessageBus.Host = "localhost"
	if cfg.Database.Host != "" {
		cfg.Database.Host = "localhost"
	}
	for key, client := range cfg.Clients {
		client.Host = "localhost"
		cfg.Clients[key] = client
	}
}
