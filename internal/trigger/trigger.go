// Package trigger builds the trigger selected by Trigger.Type: the EdgeX
// message bus, an external MQTT broker, the HTTP trigger route or a
// registered custom trigger.
package trigger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/app-functions-sdk-go/internal/container"
	"github.com/MKhiriev/app-functions-sdk-go/internal/runtime"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

// Built-in trigger types.
const (
	TypeMessageBus   = "edgex-messagebus"
	TypeExternalMqtt = "external-mqtt"
	TypeHTTP         = "http"
)

// Builder creates the configured trigger. Custom trigger factories are
// registered on it before Build is called.
type Builder struct {
	dic       *container.Container
	processor *runtime.MessageProcessor
	router    RouteRegistrar

	mu     sync.RWMutex
	custom map[string]interfaces.TriggerFactory
}

func NewBuilder(dic *container.Container, processor *runtime.MessageProcessor, router RouteRegistrar) *Builder {
	return &Builder{
		dic:       dic,
		processor: processor,
		router:    router,
		custom:    make(map[string]interfaces.TriggerFactory),
	}
}

// RegisterCustomTriggerFactory makes a trigger available under name. Names
// are case-insensitive and may not shadow a built-in trigger.
func (b *Builder) RegisterCustomTriggerFactory(name string, factory interfaces.TriggerFactory) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return ErrEmptyTriggerName
	}
	if factory == nil {
		return fmt.Errorf("%w: %s", ErrNilTriggerFactory, name)
	}

	switch key {
	case TypeMessageBus, TypeExternalMqtt, TypeHTTP:
		return fmt.Errorf("%w: %s", ErrTriggerNameReserved, name)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.custom[key]; exists {
		return fmt.Errorf("%w: %s", ErrTriggerExists, name)
	}
	b.custom[key] = factory
	return nil
}

// TriggerConfig returns what a trigger needs to hand messages to the
// runtime.
func (b *Builder) TriggerConfig() interfaces.TriggerConfig {
	return interfaces.TriggerConfig{
		Logger:          b.dic.Logger,
		ContextBuilder:  NewContextBuilder(b.dic),
		MessageReceived: b.processor.MessageReceived,
		ConfigLoader: func(cfg any, sectionName string) error {
			return b.dic.Config().LoadCustomConfig(cfg, sectionName)
		},
	}
}

// Build returns the trigger named by Trigger.Type.
func (b *Builder) Build() (interfaces.Trigger, error) {
	triggerType := strings.ToLower(strings.TrimSpace(b.dic.Config().Trigger.Type))
	tc := b.TriggerConfig()

	switch triggerType {
	case TypeMessageBus:
		return NewMessageBusTrigger(b.dic, tc), nil
	case TypeExternalMqtt:
		return NewMqttTrigger(b.dic, tc), nil
	case TypeHTTP:
		return NewHttpTrigger(b.dic, tc, b.router, b.processor.ReceivedRequest), nil
	}

	b.mu.RLock()
	factory, ok := b.custom[triggerType]
	b.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTriggerType, b.dic.Config().Trigger.Type)
	}

	trigger, err := factory(tc)
	if err != nil {
		return nil, fmt.Errorf("unable to create custom trigger %s: %w", triggerType, err)
	}
	return trigger, nil
}
