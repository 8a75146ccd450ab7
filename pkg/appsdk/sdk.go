// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package appsdk creates application services.
//
// A typical service creates the service, sets its pipeline and runs it:
//
//	service, ok := appsdk.NewAppService("app-sample")
//	if !ok {
//		os.Exit(1)
//	}
//	_ = service.SetDefaultFunctionsPipeline(filter.FilterByDeviceName, conversion.TransformToJSON)
//	if err := service.Run(); err != nil {
//		os.Exit(1)
//	}
package appsdk

import (
	"os"

	"github.com/MKhiriev/app-functions-sdk-go/internal/app"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// SDKVersion is reported by the version route.
const SDKVersion = "3.0.0"

// Build metadata of the service binary, set with -ldflags "-X".
var (
	Version     string
	BuildDate   string
	BuildCommit string
)

// NewAppService creates a service that decodes received messages into
// models.Event. The second result is false when the service could not be
// created; the reason has been logged.
func NewAppService(serviceKey string) (interfaces.ApplicationService, bool) {
	return NewAppServiceWithTargetType(serviceKey, nil)
}

// NewAppServiceWithTargetType creates a service that decodes received
// messages into targetType. Use &[]byte{} to receive the raw payload.
func NewAppServiceWithTargetType(serviceKey string, targetType any) (interfaces.ApplicationService, bool) {
	service, err := app.NewService(serviceKey, app.Options{
		Args:       os.Args[1:],
		TargetType: targetType,
		BuildInfo:  models.NewAppBuildInfo(orNA(Version), orNA(BuildDate), orNA(BuildCommit)),
		SDKVersion: SDKVersion,
	})
	if err != nil {
		logger.NewLogger(serviceKey).Err(err).Msg("unable to create application service")
		return nil, false
	}
	return service, true
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
