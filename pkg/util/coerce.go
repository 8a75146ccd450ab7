// Package util holds helpers shared by pipeline functions.
package util

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/models"
)

var ErrCoerceType = errors.New("failed to coerce data to bytes")

// CoerceType converts pipeline data into bytes. Strings and byte slices are
// used as is; anything else is marshalled to JSON. With
// EDGEX_OPTIMIZE_EVENT_PAYLOAD set, events are optimized first.
func CoerceType(param any) ([]byte, error) {
	switch data := param.(type) {
	case nil:
		return nil, fmt.Errorf("%w: no data", ErrCoerceType)
	case string:
		return []byte(data), nil
	case []byte:
		return data, nil
	case models.Event:
		param = optimizeEvent(data)
	case *models.Event:
		if data != nil {
			param = optimizeEvent(*data)
		}
	}

	result, err := json.Marshal(param)
	if err != nil {
		return nil, fmt.Errorf("%w: %T: %w", ErrCoerceType, param, err)
	}
	return result, nil
}

func optimizeEvent(event models.Event) models.Event {
	if optimize, _ := utils.ParseEnvBool(models.EnvOptimizeEventPayload, false); optimize {
		return event.Optimized()
	}
	return event
}
