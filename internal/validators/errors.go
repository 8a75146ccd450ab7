package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidID            = errors.New("invalid id")
	ErrInvalidAppServiceKey = errors.New("app service key is required")
	ErrEmptyPayload         = errors.New("payload is required")
	ErrInvalidVersion       = errors.New("invalid version")
	ErrInvalidPipelineID    = errors.New("pipeline id is required")
	ErrInvalidPosition      = errors.New("invalid pipeline position")
	ErrInvalidRetryCount    = errors.New("invalid retry count")

	ErrInvalidApiVersion = errors.New("invalid api version")
	ErrInvalidSecretName = errors.New("secret name is required")
	ErrEmptySecretData   = errors.New("secret data cannot be empty")
	ErrInvalidSecretKey  = errors.New("secret key is required")
	ErrEmptySecretValue  = errors.New("secret value is required")
)
