// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// Known message bus, database and auth mode names.
const (
	MessageBusMQTT  = "mqtt"
	MessageBusRedis = "redis"

	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabaseRedis    = "redisdb"

	AuthModeNone             = "none"
	AuthModeUsernamePassword = "usernamepassword"
	AuthModeCert             = "clientcert"
	AuthModeCACert           = "cacert"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// service invariants before it is used at startup.
//
// The trigger type is only required here. Custom trigger names are checked
// when the trigger is set up.
func (cfg *StructuredConfig) validate() error {
	err := validation.ValidateStruct(cfg,
		validation.Field(&cfg.Writable, validation.By(func(value interface{}) error {
			w := value.(WritableInfo)
			return validation.ValidateStruct(&w,
				validation.Field(&w.LogLevel, validation.Required, validation.By(validateLogLevel)),
				validation.Field(&w.StoreAndForward, validation.By(func(value interface{}) error {
					sf := value.(StoreAndForwardInfo)
					return validation.ValidateStruct(&sf,
						validation.Field(&sf.RetryInterval, validation.By(validateDuration)),
					)
				})),
				validation.Field(&w.Telemetry, validation.By(func(value interface{}) error {
					t := value.(TelemetryInfo)
					return validation.ValidateStruct(&t,
						validation.Field(&t.Interval, validation.By(validateDuration)),
					)
				})),
			)
		})),
		validation.Field(&cfg.Service, validation.By(func(value interface{}) error {
			s := value.(ServiceInfo)
			return validation.ValidateStruct(&s,
				validation.Field(&s.Port, validation.Required, validation.Min(1), validation.Max(65535)),
				validation.Field(&s.Host, is.Host),
				validation.Field(&s.MaxRequestSize, validation.Min(int64(0))),
				validation.Field(&s.RequestTimeout, validation.By(validateDuration)),
			)
		})),
		validation.Field(&cfg.HttpServer, validation.By(func(value interface{}) error {
			h := value.(HttpServerInfo)
			return validation.ValidateStruct(&h,
				validation.Field(&h.Protocol, validation.In("http", "https")),
				validation.Field(&h.SecretName, validation.When(h.Protocol == "https", validation.Required)),
			)
		})),
		validation.Field(&cfg.MessageBus, validation.When(!cfg.MessageBus.Disabled, validation.By(func(value interface{}) error {
			m := value.(MessageBusInfo)
			return validation.ValidateStruct(&m,
				validation.Field(&m.Type, validation.Required, validation.In(MessageBusMQTT, MessageBusRedis)),
				validation.Field(&m.Host, validation.Required),
				validation.Field(&m.Port, validation.Required, validation.Min(1), validation.Max(65535)),
				validation.Field(&m.AuthMode, validation.In(AuthModeNone, AuthModeUsernamePassword, AuthModeCert, AuthModeCACert)),
			)
		}))),
		validation.Field(&cfg.Trigger, validation.By(func(value interface{}) error {
			t := value.(TriggerInfo)
			return validation.ValidateStruct(&t,
				validation.Field(&t.Type, validation.Required),
			)
		})),
		validation.Field(&cfg.Database, validation.When(cfg.Writable.StoreAndForward.Enabled, validation.By(func(value interface{}) error {
			d := value.(DatabaseInfo)
			return validation.ValidateStruct(&d,
				validation.Field(&d.Type, validation.Required, validation.In(DatabaseSQLite, DatabasePostgres, DatabaseRedis)),
				validation.Field(&d.Name, validation.When(d.Type != DatabaseRedis, validation.Required)),
				validation.Field(&d.Timeout, validation.By(validateDuration)),
			)
		}))),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

func validateLogLevel(value interface{}) error {
	level, _ := value.(string)
	if level == "" {
		return nil
	}
	if !slices.Contains(logger.Levels, strings.ToUpper(level)) {
		return validation.NewError("validation_invalid_log_level", "must be one of "+strings.Join(logger.Levels, ", "))
	}
	return nil
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	if durationStr == "" {
		return nil
	}

	if _, err := time.ParseDuration(durationStr); err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 2s, 5m, 1h)")
	}

	return nil
}
