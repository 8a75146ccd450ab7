package clients

import "errors"

var (
	ErrNotFound        = errors.New("resource not found")
	ErrServiceResponse = errors.New("unexpected service response")
	ErrRequest         = errors.New("request to service failed")
	ErrInvalidAddress  = errors.New("invalid service address")
)
