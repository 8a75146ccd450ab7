package app

import (
	"fmt"
	"time"

	"github.com/MKhiriev/app-functions-sdk-go/internal/clients"
	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/internal/container"
	httphandler "github.com/MKhiriev/app-functions-sdk-go/internal/handler/http"
	"github.com/MKhiriev/app-functions-sdk-go/internal/messaging"
	"github.com/MKhiriev/app-functions-sdk-go/internal/metrics"
	"github.com/MKhiriev/app-functions-sdk-go/internal/runtime"
	"github.com/MKhiriev/app-functions-sdk-go/internal/secret"
	"github.com/MKhiriev/app-functions-sdk-go/internal/store"
	"github.com/MKhiriev/app-functions-sdk-go/internal/trigger"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// Message bus connect retry policy used at startup.
const (
	busConnectInterval = time.Second
	busConnectDuration = 30 * time.Second
)

func (s *Service) bootstrap() error {
	cfg, err := s.loader.Load()
	if err != nil {
		return err
	}

	if err = logger.SetLevel(cfg.Writable.LogLevel); err != nil {
		return err
	}
	if cfg.Sources.Overwrite {
		s.lc.Info().Msg("overwrite flag accepted, the configuration is always read from files")
	}

	s.dic = container.NewContainer(cfg, s.lc)

	s.secrets, err = secret.NewInsecureProvider(cfg.Writable.InsecureSecrets, s.lc)
	if err != nil {
		return err
	}
	s.dic.SecretProvider = s.secrets

	s.metrics = metrics.NewManager(s.lc)
	s.dic.MetricsManager = s.metrics

	if err = s.bootstrapMessageBus(cfg); err != nil {
		return err
	}
	if err = s.bootstrapStore(cfg); err != nil {
		return err
	}

	if err = clients.Configure(s.dic, cfg.Clients, requestTimeout(cfg), s.lc); err != nil {
		return fmt.Errorf("failed to configure clients: %w", err)
	}

	s.runtime = runtime.NewFunctionsPipelineRuntime(s.serviceKey, s.targetType, s.dic)
	s.processor = runtime.NewMessageProcessor(s.runtime, s.lc)
	s.handler = httphandler.NewHandler(s.dic, s.serviceKey, s.buildInfo, s.sdkVersion)
	s.triggers = trigger.NewBuilder(s.dic, s.processor, s.handler)
	s.watcher = config.NewWatcher(cfg, s.loader, s.lc)
	s.watcher.OnChange(s.onConfigChange)

	s.lc.Info().
		Str("serviceKey", s.serviceKey).
		Str("trigger", cfg.Trigger.Type).
		Bool("messageBus", s.dic.MessageClient != nil).
		Bool("storeAndForward", cfg.Writable.StoreAndForward.Enabled).
		Msg("application service bootstrapped")
	return nil
}

func (s *Service) bootstrapMessageBus(cfg *config.StructuredConfig) error {
	if cfg.MessageBus.Disabled {
		s.lc.Info().Msg("message bus disabled")
		return nil
	}

	client, err := messaging.NewMessageClient(cfg, s.secrets, s.lc)
	if err != nil {
		return err
	}

	policy := messaging.RetryPolicy{Interval: busConnectInterval, Duration: busConnectDuration}
	if err = messaging.ConnectWithRetry(s.ctx, cfg.MessageBusURL(), policy, s.lc, client.Connect); err != nil {
		return err
	}

	s.dic.MessageClient = client
	s.addDeferred(func() {
		if err := client.Disconnect(); err != nil {
			s.lc.Err(err).Msg("failed to disconnect from the message bus")
		}
	})
	s.lc.Info().Str("type", cfg.MessageBus.Type).Str("url", cfg.MessageBusURL()).Msg("connected to the message bus")
	return nil
}

func (s *Service) bootstrapStore(cfg *config.StructuredConfig) error {
	if !cfg.Writable.StoreAndForward.Enabled {
		return nil
	}

	client, err := store.NewStoreClient(s.ctx, cfg.Database, s.secrets, s.lc)
	if err != nil {
		return err
	}

	s.dic.StoreClient = client
	s.addDeferred(func() {
		if err := client.Disconnect(); err != nil {
			s.lc.Err(err).Msg("failed to disconnect from the store")
		}
	})
	s.lc.Info().Str("type", cfg.Database.Type).Msg("store and forward database connected")
	return nil
}

func requestTimeout(cfg *config.StructuredConfig) time.Duration {
	timeout, err := time.ParseDuration(cfg.Service.RequestTimeout)
	if err != nil || timeout <= 0 {
		timeout, _ = time.ParseDuration(config.DefaultRequestTimeout)
	}
	return timeout
}
