package main

import (
	"errors"
	"net/http"
	"sync"

	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/transforms"
)

const (
	deviceNamesSetting = "DeviceNames"
	resourceRoute      = "/api/v3/resource"
)

var errNoDeviceNames = errors.New("no device names configured")

// sampleApp filters events by device name, converts them to JSON and
// exports them to the broker of the AppCustom section.
type sampleApp struct {
	service interfaces.ApplicationService
	lc      *logger.Logger

	deviceNames []string

	mu     sync.RWMutex
	config AppCustomConfig
	sender *transforms.MQTTSecretSender
}

func newSampleApp(service interfaces.ApplicationService) *sampleApp {
	return &sampleApp{service: service, lc: service.LoggingClient()}
}

func (a *sampleApp) setup() error {
	deviceNames, err := a.service.GetAppSettingStrings(deviceNamesSetting)
	if err != nil {
		return err
	}
	if len(deviceNames) == 0 {
		return errNoDeviceNames
	}
	a.deviceNames = deviceNames

	var cfg AppCustomConfig
	if err = a.service.LoadCustomConfig(&cfg, appCustomSection); err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	a.setConfig(cfg)

	if err = a.service.ListenForCustomConfigChanges(&cfg, appCustomSection, a.onConfigChanged); err != nil {
		return err
	}

	if err = a.service.AddCustomRoute(resourceRoute, interfaces.Unauthenticated, a.resourceHandler, http.MethodGet); err != nil {
		return err
	}

	return a.service.SetDefaultFunctionsPipeline(
		transforms.NewFilterFor(deviceNames).FilterByDeviceName,
		transforms.NewConversion().TransformToJSON,
		a.export,
	)
}

// export sends data with the sender of the current configuration.
func (a *sampleApp) export(ctx interfaces.AppFunctionContext, data any) (bool, any) {
	a.mu.RLock()
	sender := a.sender
	a.mu.RUnlock()

	return sender.MQTTSend(ctx, data)
}

func (a *sampleApp) setConfig(cfg AppCustomConfig) {
	sender := transforms.NewMQTTSecretSender(transforms.MQTTSecretConfig{
		BrokerAddress: cfg.MQTTExport.BrokerAddress,
		Topic:         cfg.MQTTExport.Topic,
		ClientId:      cfg.MQTTExport.ClientId,
		SecretName:    cfg.MQTTExport.SecretName,
		AuthMode:      cfg.MQTTExport.AuthMode,
		QoS:           cfg.MQTTExport.QoS,
		Retain:        cfg.MQTTExport.Retain,
		AutoReconnect: true,
	}, false)

	a.mu.Lock()
	previous := a.sender
	a.config = cfg
	a.sender = sender
	a.mu.Unlock()

	if previous != nil {
		previous.Disconnect()
	}
}

func (a *sampleApp) onConfigChanged(raw any) {
	var cfg AppCustomConfig
	if !cfg.UpdateFromRaw(raw) {
		a.lc.Error().Str("section", appCustomSection).Msg("ignoring invalid custom configuration")
		return
	}

	a.setConfig(cfg)
	a.lc.Info().
		Str("broker", cfg.MQTTExport.BrokerAddress).
		Str("topic", cfg.MQTTExport.Topic).
		Msg("MQTT export settings updated")
}

type resourceResponse struct {
	DeviceNames []string        `json:"deviceNames"`
	AppCustom   AppCustomConfig `json:"appCustom"`
}

func (a *sampleApp) resourceHandler(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	response := resourceResponse{DeviceNames: a.deviceNames, AppCustom: a.config}
	a.mu.RUnlock()

	if _, err := utils.WriteJSON(w, response, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("route", resourceRoute).Msg("unable to write response")
	}
}
