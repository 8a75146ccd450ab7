package interfaces

import (
	"context"

	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// Context value keys set by the runtime. Keys are always lower case.
const (
	DEVICENAME    = "devicename"
	PROFILENAME   = "profilename"
	SOURCENAME    = "sourcename"
	RECEIVEDTOPIC = "receivedtopic"
	PIPELINEID    = "pipelineid"
)

// AppFunctionContext carries the per-message state and the service
// dependencies available to pipeline functions.
type AppFunctionContext interface {
	// Context returns the context of the message being processed.
	Context() context.Context
	// Clone returns a copy whose values can be changed independently.
	Clone() AppFunctionContext

	CorrelationID() string
	InputContentType() string

	SetResponseData(output []byte)
	ResponseData() []byte
	SetResponseContentType(contentType string)
	ResponseContentType() string

	// SetRetryData stores payload for a later retry when the pipeline fails.
	SetRetryData(payload []byte)
	RetryData() []byte
	// TriggerRetryFailedData asks the runtime to retry stored data once the
	// pipeline completes.
	TriggerRetryFailedData()

	SecretProvider() SecretProvider
	LoggingClient() *logger.Logger
	MetricsManager() MetricsManager

	EventClient() EventClient
	ReadingClient() ReadingClient
	CommandClient() CommandClient
	DeviceClient() DeviceClient
	DeviceProfileClient() DeviceProfileClient
	DeviceServiceClient() DeviceServiceClient

	PipelineId() string

	// AddValue stores value under the lower-cased key.
	AddValue(key string, value string)
	RemoveValue(key string)
	GetValue(key string) (string, bool)
	GetAllValues() map[string]string
	// ApplyValues replaces every {key} placeholder in format with the
	// context value of that key. A placeholder without a value is an error.
	ApplyValues(format string) (string, error)

	GetDeviceResource(profileName string, resourceName string) (models.DeviceResource, error)

	// Publish sends data to the configured publish topic of the trigger.
	Publish(data any, contentType string) error
	// PublishWithTopic sends data to topic under the base topic prefix.
	PublishWithTopic(topic string, data any, contentType string) error
}
