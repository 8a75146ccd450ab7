package transforms

import (
	"fmt"

	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

// CoreData pushes the pipeline data to Core Data as a single reading Event.
type CoreData struct {
	profileName  string
	deviceName   string
	resourceName string
	valueType    string
	mediaType    string
}

func NewCoreDataSimpleReading(profileName, deviceName, resourceName, valueType string) *CoreData {
	return &CoreData{
		profileName:  profileName,
		deviceName:   deviceName,
		resourceName: resourceName,
		valueType:    valueType,
	}
}

func NewCoreDataBinaryReading(profileName, deviceName, resourceName, mediaType string) *CoreData {
	return &CoreData{
		profileName:  profileName,
		deviceName:   deviceName,
		resourceName: resourceName,
		valueType:    models.ValueTypeBinary,
		mediaType:    mediaType,
	}
}

func NewCoreDataObjectReading(profileName, deviceName, resourceName string) *CoreData {
	return &CoreData{
		profileName:  profileName,
		deviceName:   deviceName,
		resourceName: resourceName,
		valueType:    models.ValueTypeObject,
	}
}

// PushToCore wraps data into an Event and adds it to Core Data. The Event
// is passed on.
func (cdc *CoreData) PushToCore(ctx interfaces.AppFunctionContext, data any) (bool, any) {
	const function = "PushToCore"
	if data == nil {
		return false, noDataError(function, ctx)
	}

	client := ctx.EventClient()
	if client == nil {
		return false, fmt.Errorf("function %s in pipeline '%s': EventClient is not configured", function, ctx.PipelineId())
	}

	event := models.NewEvent(cdc.profileName, cdc.deviceName, cdc.resourceName)
	switch cdc.valueType {
	case models.ValueTypeBinary:
		value, ok := data.([]byte)
		if !ok {
			return false, fmt.Errorf("function %s in pipeline '%s': %w: binary reading requires []byte, got %T",
				function, ctx.PipelineId(), ErrUnexpectedType, data)
		}
		event.AddBinaryReading(cdc.resourceName, value, cdc.mediaType)
	case models.ValueTypeObject:
		event.AddObjectReading(cdc.resourceName, data)
	default:
		value := data
		if b, ok := data.([]byte); ok {
			value = string(b)
		}
		if err := event.AddSimpleReading(cdc.resourceName, cdc.valueType, value); err != nil {
			return false, fmt.Errorf("function %s in pipeline '%s': %w", function, ctx.PipelineId(), err)
		}
	}

	requestCtx := utils.WithCorrelationID(ctx.Context(), ctx.CorrelationID())
	if _, err := client.Add(requestCtx, models.NewAddEventRequest(event)); err != nil {
		return false, fmt.Errorf("function %s in pipeline '%s': %w", function, ctx.PipelineId(), err)
	}

	ctx.LoggingClient().Debug().
		Str("pipeline", ctx.PipelineId()).
		Str("device", cdc.deviceName).
		Str("resource", cdc.resourceName).
		Msg("event pushed to core data")
	return true, event
}
