package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// SigningKeySecretKey is the key of the JWT signing key inside the
// HttpServer.AuthSecretName secret.
const SigningKeySecretKey = "signingKey"

// auth rejects requests without a valid HS256 bearer token with 401. The
// token is checked against the signing key read from the secret provider on
// every request, so a key stored at runtime takes effect immediately.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		token, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		signingKey, err := h.signingKey()
		if err != nil {
			log.Err(err).Msg("cannot authenticate request")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		claims, err := utils.ValidateJWT(token, signingKey, "")
		if err != nil {
			log.Err(err).Msg("invalid bearer token")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		log.Debug().Str("subject", claims.Subject).Msg("request authenticated")
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) signingKey() (string, error) {
	if h.dic.SecretProvider == nil {
		return "", fmt.Errorf("%w: %w", ErrSigningKey, ErrNoSecretProvider)
	}

	secretName := h.dic.Config().HttpServer.AuthSecretName
	secrets, err := h.dic.SecretProvider.GetSecret(secretName, SigningKeySecretKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSigningKey, err)
	}
	return secrets[SigningKeySecretKey], nil
}
