package interfaces

import (
	"context"
	"net/http"

	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// Authentication selects whether a custom route requires a bearer token.
type Authentication bool

const (
	Unauthenticated Authentication = false
	Authenticated   Authentication = true
)

// UpdatableConfig is a custom configuration section that can apply a new
// raw section to itself.
type UpdatableConfig interface {
	// UpdateFromRaw decodes rawConfig into the receiver and reports success.
	UpdateFromRaw(rawConfig any) bool
}

// ApplicationService is the API an application service is built against.
type ApplicationService interface {
	// AppContext is cancelled when the service stops.
	AppContext() context.Context
	// AddCustomRoute serves handler on route for the given methods.
	AddCustomRoute(route string, authentication Authentication, handler http.HandlerFunc, methods ...string) error
	LoggingClient() *logger.Logger

	ApplicationSettings() map[string]string
	// GetAppSetting returns the comma separated values of setting.
	GetAppSetting(setting string) ([]string, error)
	// GetAppSettingStrings is GetAppSetting with empty entries removed.
	GetAppSettingStrings(setting string) ([]string, error)

	SetDefaultFunctionsPipeline(transforms ...AppFunction) error
	AddFunctionsPipelineForTopics(id string, topics []string, transforms ...AppFunction) error
	// LoadConfigurableFunctionPipelines builds the pipelines described by
	// Writable.Pipeline.
	LoadConfigurableFunctionPipelines() (map[string]FunctionPipeline, error)
	RemoveAllFunctionPipelines()

	// Run starts the trigger and the REST API and blocks until the service
	// stops.
	Run() error
	// Stop cancels AppContext, which makes Run return.
	Stop()
	RegisterCustomTriggerFactory(name string, factory TriggerFactory) error

	EventClient() EventClient
	ReadingClient() ReadingClient
	CommandClient() CommandClient
	DeviceClient() DeviceClient
	DeviceProfileClient() DeviceProfileClient
	DeviceServiceClient() DeviceServiceClient

	SecretProvider() SecretProvider
	MetricsManager() MetricsManager

	Publish(data any, contentType string) error
	PublishWithTopic(topic string, data any, contentType string) error

	// LoadCustomConfig decodes sectionName into config.
	LoadCustomConfig(config UpdatableConfig, sectionName string) error
	// ListenForCustomConfigChanges calls changedCallback with the raw
	// section each time sectionName changes.
	ListenForCustomConfigChanges(configToWatch any, sectionName string, changedCallback func(any)) error

	// BuildContext creates a context for calling pipeline functions
	// outside of a trigger.
	BuildContext(correlationID string, contentType string) AppFunctionContext
}
