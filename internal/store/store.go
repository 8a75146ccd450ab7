// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists store-and-forward objects in SQLite, PostgreSQL or
// Redis.
package store

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// Secret keys holding the database credentials.
const (
	SecretUsernameKey = "username"
	SecretPasswordKey = "password"
)

const defaultConnectTimeout = 5 * time.Second

// NewStoreClient connects to the database described by cfg and prepares
// it for use. SQL databases are migrated.
func NewStoreClient(ctx context.Context, cfg config.DatabaseInfo, secrets interfaces.SecretProvider, log *logger.Logger) (StoreClient, error) {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	username, password, err := credentials(cfg.SecretName, secrets)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(cfg.Type) {
	case config.DatabaseSQLite:
		db, err := NewConnectSQLite(ctx, cfg.Name, log)
		if err != nil {
			return nil, err
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, err
		}
		return NewSQLStoreClient(db, log), nil

	case config.DatabasePostgres:
		db, err := NewConnectPostgres(ctx, postgresDSN(cfg, username, password), log)
		if err != nil {
			return nil, err
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, err
		}
		return NewSQLStoreClient(db, log), nil

	case config.DatabaseRedis:
		client := redis.NewClient(&redis.Options{
			Addr:        net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Username:    username,
			Password:    password,
			DialTimeout: timeout,
		})
		if err = client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("%w: %w", ErrConnecting, err)
		}
		log.Info().Str("func", "NewStoreClient").Msg("connected to redis store successfully")
		return NewRedisStoreClient(client, log), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedDatabase, cfg.Type)
}

func credentials(secretName string, secrets interfaces.SecretProvider) (string, string, error) {
	if secretName == "" || secrets == nil {
		return "", "", nil
	}

	exists, err := secrets.HasSecret(secretName)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrReadingCredentials, err)
	}
	if !exists {
		return "", "", nil
	}

	values, err := secrets.GetSecret(secretName, SecretUsernameKey, SecretPasswordKey)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrReadingCredentials, err)
	}
	return values[SecretUsernameKey], values[SecretPasswordKey], nil
}

func postgresDSN(cfg config.DatabaseInfo, username, password string) string {
	dsn := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	if username != "" {
		dsn.User = url.UserPassword(username, password)
	}
	return dsn.String()
}
