package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/app-functions-sdk-go/internal/secret"
	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
)

var errorStatusMap = map[error]int{
	ErrEmptyAuthorizationHeader: http.StatusUnauthorized,
	ErrSigningKey:               http.StatusUnauthorized,
	ErrInvalidJSON:              http.StatusBadRequest,
	ErrInvalidSecretRequest:     http.StatusBadRequest,
	ErrNoSecretProvider:         http.StatusInternalServerError,

	utils.ErrInvalidAuthorization: http.StatusUnauthorized,
	utils.ErrEmptyJWTSubject:      http.StatusUnauthorized,

	secret.ErrEmptySecretName:   http.StatusBadRequest,
	secret.ErrSecretNotFound:    http.StatusNotFound,
	secret.ErrSecretKeyNotFound: http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
