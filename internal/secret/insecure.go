// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package secret serves the secrets of an application service from its
// configuration.
package secret

import (
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// InsecureProvider serves Writable.InsecureSecrets plus the secrets stored
// at runtime through StoreSecret.
type InsecureProvider struct {
	mu          sync.RWMutex
	insecure    map[string]map[string]string
	stored      map[string]map[string]string
	lastUpdated time.Time
	log         *logger.Logger
}

var _ interfaces.SecretProvider = (*InsecureProvider)(nil)

// NewInsecureProvider fails when the secure secret store is requested
// through EDGEX_SECURITY_SECRET_STORE.
func NewInsecureProvider(secrets map[string]config.SecretData, log *logger.Logger) (*InsecureProvider, error) {
	if secure, _ := utils.ParseEnvBool(models.EnvSecretStore, false); secure {
		return nil, ErrSecureStoreNotFound
	}

	p := &InsecureProvider{
		insecure:    toSecretMap(secrets),
		stored:      make(map[string]map[string]string),
		lastUpdated: time.Now(),
		log:         log,
	}
	return p, nil
}

func (p *InsecureProvider) GetSecret(secretName string, keys ...string) (map[string]string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	secrets, ok := p.stored[secretName]
	if !ok {
		secrets, ok = p.insecure[secretName]
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSecretNotFound, secretName)
	}

	if len(keys) == 0 {
		return maps.Clone(secrets), nil
	}

	result := make(map[string]string, len(keys))
	var missing []string
	for _, key := range keys {
		value, ok := secrets[key]
		if !ok {
			missing = append(missing, key)
			continue
		}
		result[key] = value
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: secret '%s' has no keys [%s]", ErrSecretKeyNotFound, secretName, strings.Join(missing, ", "))
	}
	return result, nil
}

// StoreSecret merges secrets into the runtime secrets under secretName.
func (p *InsecureProvider) StoreSecret(secretName string, secrets map[string]string) error {
	if strings.TrimSpace(secretName) == "" {
		return ErrEmptySecretName
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	current, ok := p.stored[secretName]
	if !ok {
		current = maps.Clone(p.insecure[secretName])
		if current == nil {
			current = make(map[string]string, len(secrets))
		}
	}
	maps.Copy(current, secrets)

	p.stored[secretName] = current
	p.lastUpdated = time.Now()
	p.log.Info().Str("secretName", secretName).Msg("secret stored")
	return nil
}

func (p *InsecureProvider) SecretsLastUpdated() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastUpdated
}

func (p *InsecureProvider) HasSecret(secretName string) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if _, ok := p.stored[secretName]; ok {
		return true, nil
	}
	_, ok := p.insecure[secretName]
	return ok, nil
}

// UpdateInsecure replaces the configured secrets after a writable reload.
// The update time only moves when the secrets changed.
func (p *InsecureProvider) UpdateInsecure(secrets map[string]config.SecretData) {
	updated := toSecretMap(secrets)

	p.mu.Lock()
	defer p.mu.Unlock()

	if maps.EqualFunc(p.insecure, updated, func(a, b map[string]string) bool { return maps.Equal(a, b) }) {
		return
	}

	p.insecure = updated
	p.lastUpdated = time.Now()
	p.log.Info().Int("secrets", len(updated)).Msg("insecure secrets updated")
}

func toSecretMap(secrets map[string]config.SecretData) map[string]map[string]string {
	result := make(map[string]map[string]string, len(secrets))
	for key, secret := range secrets {
		name := secret.SecretName
		if name == "" {
			name = key
		}
		result[name] = maps.Clone(secret.SecretData)
	}
	return result
}
