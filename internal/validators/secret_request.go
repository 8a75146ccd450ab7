package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/app-functions-sdk-go/models"
)

const (
	FieldApiVersion = "api_version"
	FieldSecretName = "secret_name"
	FieldSecretData = "secret_data"
)

// SecretRequestValidator checks the body of a secret POST.
type SecretRequestValidator struct{}

func NewSecretRequestValidator() Validator {
	return &SecretRequestValidator{}
}

func (v *SecretRequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SecretRequest:
		return v.validateSecretRequest(ctx, value, fields...)
	case *models.SecretRequest:
		return v.validateSecretRequest(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *SecretRequestValidator) validateSecretRequest(_ context.Context, request models.SecretRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldApiVersion, FieldSecretName, FieldSecretData}
	}

	for _, f := range fields {
		switch f {
		case FieldApiVersion:
			if request.ApiVersion != models.ApiVersion {
				return ErrInvalidApiVersion
			}
		case FieldSecretName:
			if request.SecretName == "" {
				return ErrInvalidSecretName
			}
		case FieldSecretData:
			if len(request.SecretData) == 0 {
				return ErrEmptySecretData
			}
			for i, kv := range request.SecretData {
				if kv.Key == "" {
					return fmt.Errorf("validation error at index %d: %w", i, ErrInvalidSecretKey)
				}
				if kv.Value == "" {
					return fmt.Errorf("validation error at index %d: %w", i, ErrEmptySecretValue)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
