package transforms

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

// Conversion renders Events as XML or JSON.
type Conversion struct{}

func NewConversion() Conversion {
	return Conversion{}
}

// TransformToXML returns the Event as an XML string.
func (c Conversion) TransformToXML(ctx interfaces.AppFunctionContext, data any) (bool, any) {
	const function = "TransformToXML"
	if data == nil {
		return false, noDataError(function, ctx)
	}

	event, err := eventFrom(function, ctx, data)
	if err != nil {
		return false, err
	}

	ctx.LoggingClient().Debug().Str("pipeline", ctx.PipelineId()).Msg("transforming to XML")

	xml, err := event.ToXML()
	if err != nil {
		return false, fmt.Errorf("function %s in pipeline '%s': %w", function, ctx.PipelineId(), err)
	}

	ctx.SetResponseContentType(models.ContentTypeXML)
	return true, xml
}

// TransformToJSON returns the Event marshalled to JSON.
func (c Conversion) TransformToJSON(ctx interfaces.AppFunctionContext, data any) (bool, any) {
	const function = "TransformToJSON"
	if data == nil {
		return false, noDataError(function, ctx)
	}

	event, err := eventFrom(function, ctx, data)
	if err != nil {
		return false, err
	}

	ctx.LoggingClient().Debug().Str("pipeline", ctx.PipelineId()).Msg("transforming to JSON")

	result, err := json.Marshal(event)
	if err != nil {
		return false, fmt.Errorf("function %s in pipeline '%s': %w", function, ctx.PipelineId(), err)
	}

	ctx.SetResponseContentType(models.ContentTypeJSON)
	return true, result
}
