package app

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/internal/metrics"
	"github.com/MKhiriev/app-functions-sdk-go/internal/server"
	"github.com/MKhiriev/app-functions-sdk-go/internal/workers"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

const telemetryWorkerName = "telemetry"

// Run starts the trigger, the background workers and the REST API, and
// blocks until a termination signal arrives or Stop is called. Everything
// started is released in reverse order before Run returns.
func (s *Service) Run() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()

	defer s.runDeferred()

	var triggerWg sync.WaitGroup
	if err := s.startTrigger(&triggerWg); err != nil {
		s.cancel()
		return err
	}

	bgWorkers := s.buildWorkers()
	bgWorkers.Run(s.ctx)

	srv, err := server.NewServer(s.handler.Router(), s.dic)
	if err == nil {
		cfg := s.dic.Config()
		if cfg.Service.StartupMsg != "" {
			s.lc.Info().Msg(cfg.Service.StartupMsg)
		}
		err = srv.Run(s.ctx)
	}

	s.cancel()
	bgWorkers.Wait()
	triggerWg.Wait()

	if err != nil {
		s.lc.Err(err).Msg("application service stopped with error")
		return err
	}
	s.lc.Info().Msg("application service stopped")
	return nil
}

func (s *Service) startTrigger(wg *sync.WaitGroup) error {
	t, err := s.triggers.Build()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTriggerSetup, err)
	}

	deferred, err := t.Initialize(s.ctx, wg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTriggerSetup, err)
	}
	s.addDeferred(deferred)

	s.lc.Info().Str("type", s.dic.Config().Trigger.Type).Msg("trigger initialized")
	return nil
}

func (s *Service) buildWorkers() *workers.Workers {
	s.storeForward = workers.NewStoreForward(s.runtime.StoreForward, func() bool {
		return s.dic.Config().Writable.StoreAndForward.Enabled
	}, s.lc)

	bgWorkers := workers.NewWorkers(s.storeForward, workers.NewWatcher(s.watcher))

	if s.dic.MessageClient != nil {
		reporter := metrics.NewReporter(s.serviceKey, s.metrics, s.dic.MessageClient, s.dic.Config, s.lc)
		bgWorkers.Add(workers.NewTicker(telemetryWorkerName, reporter.Interval, reporter.Report, s.lc))
	} else {
		s.lc.Info().Msg("telemetry reporting disabled without a message bus")
	}
	return bgWorkers
}

// onConfigChange applies a reloaded configuration. Only the writable and
// the custom sections take effect without a restart.
func (s *Service) onConfigChange(cfg *config.StructuredConfig) {
	previous := s.dic.Config()
	s.dic.UpdateWritable(cfg.Writable)
	s.dic.UpdateCustom(cfg.Custom)

	if previous.Writable.LogLevel != cfg.Writable.LogLevel {
		if err := logger.SetLevel(cfg.Writable.LogLevel); err != nil {
			s.lc.Err(err).Msg("log level not changed")
		} else {
			s.lc.Info().Str("level", cfg.Writable.LogLevel).Msg("log level changed")
		}
	}

	if !reflect.DeepEqual(previous.Writable.InsecureSecrets, cfg.Writable.InsecureSecrets) {
		s.secrets.UpdateInsecure(cfg.Writable.InsecureSecrets)
		s.lc.Info().Msg("insecure secrets updated")
	}

	if previous.Writable.StoreAndForward != cfg.Writable.StoreAndForward {
		if cfg.Writable.StoreAndForward.Enabled && s.dic.StoreClient == nil {
			s.lc.Warn().Msg("store and forward enabled without a database connection, restart the service to connect")
		}
		if s.storeForward != nil {
			s.storeForward.Restart()
		}
	}

	s.reloadConfigurablePipelines(previous.Writable.Pipeline, cfg.Writable.Pipeline)
}
