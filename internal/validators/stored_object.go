package validators

import (
	"context"

	"github.com/MKhiriev/app-functions-sdk-go/models"
)

// Field names accepted by StoredObjectValidator.
const (
	FieldID               = "id"
	FieldAppServiceKey    = "app_service_key"
	FieldPayload          = "payload"
	FieldVersion          = "version"
	FieldPipelineID       = "pipeline_id"
	FieldPipelinePosition = "pipeline_position"
	FieldRetryCount       = "retry_count"
)

// StoredObjectValidator checks store-and-forward objects before they are
// persisted.
type StoredObjectValidator struct{}

func NewStoredObjectValidator() Validator {
	return &StoredObjectValidator{}
}

// Validate checks a models.StoredObject. Without fields the object is
// validated for insertion, where the id may still be empty.
func (v *StoredObjectValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.StoredObject:
		return v.validateStoredObject(ctx, value, fields...)
	case *models.StoredObject:
		return v.validateStoredObject(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *StoredObjectValidator) validateStoredObject(_ context.Context, o models.StoredObject, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAppServiceKey, FieldPayload, FieldVersion, FieldPipelinePosition, FieldRetryCount}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if o.ID == "" {
				return ErrInvalidID
			}
		case FieldAppServiceKey:
			if o.AppServiceKey == "" {
				return ErrInvalidAppServiceKey
			}
		case FieldPayload:
			if len(o.Payload) == 0 {
				return ErrEmptyPayload
			}
		case FieldVersion:
			if o.Version == "" {
				return ErrInvalidVersion
			}
		case FieldPipelineID:
			if o.PipelineID == "" {
				return ErrInvalidPipelineID
			}
		case FieldPipelinePosition:
			if o.PipelinePosition < 0 {
				return ErrInvalidPosition
			}
		case FieldRetryCount:
			if o.RetryCount < 0 {
				return ErrInvalidRetryCount
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// UpdateFields are the fields checked before an update.
var UpdateFields = []string{FieldID, FieldAppServiceKey, FieldPayload, FieldVersion, FieldPipelinePosition, FieldRetryCount}
