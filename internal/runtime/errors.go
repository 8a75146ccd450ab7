package runtime

import (
	"errors"
	"fmt"
)

var (
	ErrPipelineExists         = errors.New("pipeline already exists")
	ErrPipelineNotFound       = errors.New("pipeline not found")
	ErrDecodeEvent            = errors.New("failed to decode message into Event")
	ErrDecodeCustomType       = errors.New("unable to process custom object")
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrPipelineFunction       = errors.New("pipeline function failed")
	ErrInvalidContext         = errors.New("unexpected AppFunctionContext implementation")
	ErrStoreForwardDisabled   = errors.New("store and forward not enabled")
	ErrNoStoreClient          = errors.New("store client is not available")
)

// MessageError is returned when a message can't be decoded or a pipeline
// function fails. ErrorCode is an HTTP status code.
type MessageError struct {
	Err       error
	ErrorCode int
}

func (e *MessageError) Error() string {
	return fmt.Sprintf("%v (code %d)", e.Err, e.ErrorCode)
}

func (e *MessageError) Unwrap() error {
	return e.Err
}
