package trigger

import (
	"github.com/MKhiriev/app-functions-sdk-go/internal/appfunction"
	"github.com/MKhiriev/app-functions-sdk-go/internal/container"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

// NewContextBuilder returns a builder creating a fresh function context for
// each received envelope.
func NewContextBuilder(dic *container.Container) interfaces.TriggerContextBuilder {
	return func(envelope models.MessageEnvelope) interfaces.AppFunctionContext {
		return appfunction.NewContext(envelope.CorrelationID, dic, envelope.ContentType)
	}
}
