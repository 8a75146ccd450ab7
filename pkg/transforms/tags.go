package transforms

import (
	"maps"

	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

// Tags adds fixed tags to Events.
type Tags struct {
	tags map[string]any
}

func NewTags(tags map[string]any) Tags {
	return Tags{tags: tags}
}

// AddTags merges the tags into the Event, overwriting existing keys.
func (t Tags) AddTags(ctx interfaces.AppFunctionContext, data any) (bool, any) {
	const function = "AddTags"
	if data == nil {
		return false, noDataError(function, ctx)
	}

	event, err := eventFrom(function, ctx, data)
	if err != nil {
		return false, err
	}

	if len(t.tags) > 0 {
		merged := make(models.Tags, len(event.Tags)+len(t.tags))
		maps.Copy(merged, event.Tags)
		maps.Copy(merged, t.tags)
		event.Tags = merged
	}

	ctx.LoggingClient().Debug().
		Str("pipeline", ctx.PipelineId()).
		Int("tags", len(t.tags)).
		Msg("tags added to event")
	return true, event
}
