package transforms

import (
	"fmt"
	"regexp"

	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

// Filter passes or drops Events whose names match FilterValues. Each value
// is a regular expression that must match the whole name.
type Filter struct {
	FilterValues []string
	FilterOut    bool

	patterns []*regexp.Regexp
	err      error
}

// NewFilterFor keeps only the data matching one of filterValues.
func NewFilterFor(filterValues []string) Filter {
	return newFilter(filterValues, false)
}

// NewFilterOut drops the data matching one of filterValues.
func NewFilterOut(filterValues []string) Filter {
	return newFilter(filterValues, true)
}

func newFilter(filterValues []string, filterOut bool) Filter {
	f := Filter{FilterValues: filterValues, FilterOut: filterOut}
	for _, value := range filterValues {
		re, err := regexp.Compile("^(?:" + value + ")$")
		if err != nil {
			f.err = fmt.Errorf("%w %q: %w", ErrInvalidFilter, value, err)
			break
		}
		f.patterns = append(f.patterns, re)
	}
	return f
}

func (f Filter) FilterByProfileName(ctx interfaces.AppFunctionContext, data any) (bool, any) {
	return f.filterEvent("FilterByProfileName", "profile", ctx, data, func(e models.Event) string { return e.ProfileName })
}

func (f Filter) FilterByDeviceName(ctx interfaces.AppFunctionContext, data any) (bool, any) {
	return f.filterEvent("FilterByDeviceName", "device", ctx, data, func(e models.Event) string { return e.DeviceName })
}

func (f Filter) FilterBySourceName(ctx interfaces.AppFunctionContext, data any) (bool, any) {
	return f.filterEvent("FilterBySourceName", "source", ctx, data, func(e models.Event) string { return e.SourceName })
}

// FilterByResourceName filters the readings of the Event. The Event is
// dropped when no reading is left.
func (f Filter) FilterByResourceName(ctx interfaces.AppFunctionContext, data any) (bool, any) {
	const function = "FilterByResourceName"
	event, err := f.validate(function, ctx, data)
	if err != nil {
		return false, err
	}

	log := ctx.LoggingClient()
	mode := f.mode()
	log.Debug().Str("pipeline", ctx.PipelineId()).Str("mode", mode).Msg("filtering by resource name")

	if len(f.patterns) == 0 {
		return true, event
	}

	kept := make([]models.Reading, 0, len(event.Readings))
	for _, reading := range event.Readings {
		if f.matches(reading.ResourceName) != f.FilterOut {
			kept = append(kept, reading)
			continue
		}
		log.Trace().Str("resource", reading.ResourceName).Msg("reading filtered out")
	}

	if len(kept) == 0 {
		log.Debug().Str("pipeline", ctx.PipelineId()).Msg("no readings left after filtering, event removed")
		return false, nil
	}

	filtered := event
	filtered.Readings = kept
	return true, filtered
}

func (f Filter) filterEvent(function, field string, ctx interfaces.AppFunctionContext, data any, name func(models.Event) string) (bool, any) {
	event, err := f.validate(function, ctx, data)
	if err != nil {
		return false, err
	}

	if len(f.patterns) == 0 {
		return true, event
	}

	value := name(event)
	if f.matches(value) == f.FilterOut {
		ctx.LoggingClient().Debug().
			Str("pipeline", ctx.PipelineId()).
			Str("mode", f.mode()).
			Str(field, value).
			Msg("event filtered out")
		return false, nil
	}
	return true, event
}

func (f Filter) validate(function string, ctx interfaces.AppFunctionContext, data any) (models.Event, error) {
	if data == nil {
		return models.Event{}, noDataError(function, ctx)
	}
	if f.err != nil {
		return models.Event{}, fmt.Errorf("function %s in pipeline '%s': %w", function, ctx.PipelineId(), f.err)
	}
	return eventFrom(function, ctx, data)
}

func (f Filter) matches(value string) bool {
	for _, re := range f.patterns {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

func (f Filter) mode() string {
	if f.FilterOut {
		return "out"
	}
	return "for"
}
