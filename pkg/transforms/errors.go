package transforms

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

var (
	ErrNoData          = errors.New("No Data Received") //nolint:staticcheck
	ErrUnexpectedType  = errors.New("unexpected type received")
	ErrInvalidFilter   = errors.New("invalid filter expression")
	ErrExport          = errors.New("export failed")
	ErrExportStatus    = errors.New("export returned an error status")
	ErrSecretHeader    = errors.New("unable to read secret header value")
	ErrEncryptionKey   = errors.New("unable to read encryption key")
	ErrMQTTClient      = errors.New("unable to create MQTT client for export")
	ErrUnknownFunction = errors.New("unknown function")
)

func noDataError(function string, ctx interfaces.AppFunctionContext) error {
	return fmt.Errorf("function %s in pipeline '%s': %w", function, ctx.PipelineId(), ErrNoData)
}

// eventFrom accepts an Event or a pointer to one.
func eventFrom(function string, ctx interfaces.AppFunctionContext, data any) (models.Event, error) {
	switch event := data.(type) {
	case models.Event:
		return event, nil
	case *models.Event:
		if event != nil {
			return *event, nil
		}
	}
	return models.Event{}, fmt.Errorf("function %s in pipeline '%s': %w: %T", function, ctx.PipelineId(), ErrUnexpectedType, data)
}
