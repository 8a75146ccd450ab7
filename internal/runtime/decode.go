package runtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/MKhiriev/app-functions-sdk-go/internal/appfunction"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

// DecodeMessage decodes the envelope payload into the target type.
//
// Events are passed on as models.Event values, raw targets as []byte and
// custom types as a pointer to a new instance of the target type. A
// decoding failure is a *MessageError with code 400.
func (r *FunctionsPipelineRuntime) DecodeMessage(appContext *appfunction.Context, envelope models.MessageEnvelope) (any, error) {
	log := appContext.LoggingClient()

	var data any
	switch target := r.TargetType.(type) {
	case *[]byte, []byte:
		log.Debug().Msg("expecting raw byte data")
		data = envelope.Payload

	case *models.Event, models.Event:
		log.Debug().Msg("expecting an AddEventRequest or Event")
		event, err := decodeEvent(envelope)
		if err != nil {
			log.Err(err).Str("func", "*FunctionsPipelineRuntime.DecodeMessage").Msg("failed to decode event")
			return nil, &MessageError{Err: err, ErrorCode: http.StatusBadRequest}
		}

		appContext.AddValue(interfaces.DEVICENAME, event.DeviceName)
		appContext.AddValue(interfaces.PROFILENAME, event.ProfileName)
		appContext.AddValue(interfaces.SOURCENAME, event.SourceName)
		data = event

	default:
		custom, err := decodeCustom(envelope, target)
		if err != nil {
			log.Err(err).Str("func", "*FunctionsPipelineRuntime.DecodeMessage").Msg("failed to decode custom type")
			return nil, &MessageError{Err: err, ErrorCode: http.StatusBadRequest}
		}
		data = custom
	}

	appContext.SetCorrelationID(envelope.CorrelationID)
	appContext.SetInputContentType(envelope.ContentType)
	appContext.AddValue(interfaces.RECEIVEDTOPIC, envelope.ReceivedTopic)

	return data, nil
}

// decodeEvent accepts an AddEventRequest and falls back to a bare Event.
func decodeEvent(envelope models.MessageEnvelope) (models.Event, error) {
	unmarshal := json.Unmarshal
	if envelope.BaseContentType() == models.ContentTypeCBOR {
		unmarshal = cbor.Unmarshal
	}

	var request models.AddEventRequest
	if err := unmarshal(envelope.Payload, &request); err == nil &&
		(request.Event.Id != "" || request.Event.DeviceName != "") {
		return request.Event, nil
	}

	var event models.Event
	if err := unmarshal(envelope.Payload, &event); err != nil {
		return models.Event{}, fmt.Errorf("%w: %w", ErrDecodeEvent, err)
	}
	return event, nil
}

// decodeCustom unmarshals JSON into a fresh instance of the target type.
func decodeCustom(envelope models.MessageEnvelope, target any) (any, error) {
	targetType := reflect.TypeOf(target)
	if targetType.Kind() == reflect.Pointer {
		targetType = targetType.Elem()
	}

	if contentType := envelope.BaseContentType(); contentType != models.ContentTypeJSON {
		return nil, fmt.Errorf("%w of type '%s': %w: %s", ErrDecodeCustomType, targetType, ErrUnsupportedContentType, contentType)
	}

	instance := reflect.New(targetType).Interface()
	if err := json.Unmarshal(envelope.Payload, instance); err != nil {
		return nil, fmt.Errorf("%w of type '%s': %w", ErrDecodeCustomType, targetType, err)
	}
	return instance, nil
}
