// Package container holds the dependencies shared by the runtime, the
// triggers and the pipeline function contexts of one application service.
package container

import (
	"sync"

	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/internal/messaging"
	"github.com/MKhiriev/app-functions-sdk-go/internal/store"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// Container is filled while the service bootstraps. Only the configuration
// changes afterwards, so it is the only field guarded by a lock.
type Container struct {
	mu     sync.RWMutex
	config *config.StructuredConfig

	Logger         *logger.Logger
	SecretProvider interfaces.SecretProvider
	MetricsManager interfaces.MetricsManager

	// MessageClient is nil when the message bus is disabled.
	MessageClient messaging.MessageClient
	// StoreClient is nil unless store-and-forward is enabled.
	StoreClient store.StoreClient

	EventClient         interfaces.EventClient
	ReadingClient       interfaces.ReadingClient
	CommandClient       interfaces.CommandClient
	DeviceClient        interfaces.DeviceClient
	DeviceProfileClient interfaces.DeviceProfileClient
	DeviceServiceClient interfaces.DeviceServiceClient
}

func NewContainer(cfg *config.StructuredConfig, log *logger.Logger) *Container {
	return &Container{config: cfg, Logger: log}
}

// Config returns the current configuration. Callers must not modify it.
func (c *Container) Config() *config.StructuredConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// SetConfig replaces the configuration after a reload.
func (c *Container) SetConfig(cfg *config.StructuredConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = cfg
}

// UpdateWritable swaps in the writable section of cfg, keeping the rest of
// the current configuration.
func (c *Container) UpdateWritable(writable config.WritableInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	updated := *c.config
	updated.Writable = writable
	c.config = &updated
}

// UpdateCustom swaps in the custom sections of a reloaded configuration.
func (c *Container) UpdateCustom(custom map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	updated := *c.config
	updated.Custom = custom
	c.config = &updated
}
