package interfaces

import (
	"context"
	"sync"

	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// Deferred releases what a bootstrap step acquired.
type Deferred func()

// Trigger receives messages from an external source and hands them to the
// runtime.
type Trigger interface {
	// Initialize starts the trigger. The returned Deferred stops it.
	Initialize(ctx context.Context, wg *sync.WaitGroup) (Deferred, error)
}

// PipelineResponseHandler is called after a pipeline completes for the
// message, typically to publish the response data.
type PipelineResponseHandler func(ctx AppFunctionContext, pipeline *FunctionPipeline) error

// TriggerMessageHandler runs every pipeline matching the envelope topic.
type TriggerMessageHandler func(ctx AppFunctionContext, envelope models.MessageEnvelope, responseHandler PipelineResponseHandler) error

// TriggerContextBuilder builds the context for a received envelope.
type TriggerContextBuilder func(envelope models.MessageEnvelope) AppFunctionContext

// TriggerConfigLoader decodes a custom configuration section into config.
type TriggerConfigLoader func(config any, sectionName string) error

// TriggerConfig is passed to custom trigger factories.
type TriggerConfig struct {
	Logger          *logger.Logger
	ContextBuilder  TriggerContextBuilder
	MessageReceived TriggerMessageHandler
	ConfigLoader    TriggerConfigLoader
}

// TriggerFactory creates a custom trigger.
type TriggerFactory func(config TriggerConfig) (Trigger, error)
