// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package clients implements the REST clients of the EdgeX core services
// used by pipeline functions.
package clients

import (
	"time"

	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/internal/container"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// Configure creates a client for every core service found in the Clients
// configuration and stores it in dic. Services without configuration keep
// a nil client.
func Configure(dic *container.Container, clientsCfg map[string]config.ClientInfo, timeout time.Duration, log *logger.Logger) error {
	if info, ok := clientsCfg[models.CoreDataServiceKey]; ok {
		rest, err := newRestClient(info.URL(), timeout, log)
		if err != nil {
			return err
		}
		dic.EventClient = &eventClient{rest: rest}
		dic.ReadingClient = &readingClient{rest: rest}
		log.Info().Str("service", models.CoreDataServiceKey).Str("url", info.URL()).Msg("client configured")
	}

	if info, ok := clientsCfg[models.CoreMetadataServiceKey]; ok {
		rest, err := newRestClient(info.URL(), timeout, log)
		if err != nil {
			return err
		}
		dic.DeviceClient = &deviceClient{rest: rest}
		dic.DeviceProfileClient = &deviceProfileClient{rest: rest}
		dic.DeviceServiceClient = &deviceServiceClient{rest: rest}
		log.Info().Str("service", models.CoreMetadataServiceKey).Str("url", info.URL()).Msg("client configured")
	}

	if info, ok := clientsCfg[models.CoreCommandServiceKey]; ok {
		rest, err := newRestClient(info.URL(), timeout, log)
		if err != nil {
			return err
		}
		dic.CommandClient = &commandClient{rest: rest}
		log.Info().Str("service", models.CoreCommandServiceKey).Str("url", info.URL()).Msg("client configured")
	}

	return nil
}
