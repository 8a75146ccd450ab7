// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics keeps the prometheus collectors of an application service
// and reports them as telemetry over the message bus.
package metrics

import (
	"fmt"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

type registration struct {
	collector  prometheus.Collector
	registerer prometheus.Registerer
}

// Manager registers collectors by name in its own registry.
type Manager struct {
	mu            sync.RWMutex
	registry      *prometheus.Registry
	registrations map[string]registration
	log           *logger.Logger
}

func NewManager(log *logger.Logger) *Manager {
	return &Manager{
		registry:      prometheus.NewRegistry(),
		registrations: make(map[string]registration),
		log:           log,
	}
}

var _ interfaces.MetricsManager = (*Manager)(nil)

// Register adds collector under name. Tags are attached as constant labels.
func (m *Manager) Register(name string, collector prometheus.Collector, tags map[string]string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyMetricName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.registrations[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateMetricName, name)
	}

	registerer := prometheus.WrapRegistererWith(tags, m.registry)
	if err := registerer.Register(collector); err != nil {
		return fmt.Errorf("%w %s: %w", ErrRegisteringMetric, name, err)
	}

	m.registrations[name] = registration{collector: collector, registerer: registerer}
	m.log.Debug().Str("func", "*Manager.Register").Str("metric", name).Msg("metric registered")
	return nil
}

func (m *Manager) Unregister(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reg, ok := m.registrations[name]
	if !ok {
		return
	}

	reg.registerer.Unregister(reg.collector)
	delete(m.registrations, name)
	m.log.Debug().Str("func", "*Manager.Unregister").Str("metric", name).Msg("metric unregistered")
}

func (m *Manager) IsRegistered(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.registrations[name]
	return ok
}

func (m *Manager) Gatherer() prometheus.Gatherer {
	return m.registry
}
