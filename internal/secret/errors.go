package secret

import "errors"

var (
	ErrSecretNotFound      = errors.New("secret not found")
	ErrSecretKeyNotFound   = errors.New("secret key not found")
	ErrEmptySecretName     = errors.New("secret name is empty")
	ErrSecureStoreNotFound = errors.New("secure secret store is not supported, unset EDGEX_SECURITY_SECRET_STORE")
)
