package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// addSecret stores the posted secret data under the posted secret name.
func (h *Handler) addSecret(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.SecretRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.addSecret").Msg(ErrInvalidJSON.Error())
		h.writeError(w, request.RequestId, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	if err := h.secretValidator.Validate(r.Context(), request); err != nil {
		log.Err(err).Str("func", "*Handler.addSecret").Msg("invalid secret request")
		h.writeError(w, request.RequestId, fmt.Errorf("%w: %w", ErrInvalidSecretRequest, err))
		return
	}

	if h.dic.SecretProvider == nil {
		h.writeError(w, request.RequestId, ErrNoSecretProvider)
		return
	}

	if err := h.dic.SecretProvider.StoreSecret(request.SecretName, request.ToMap()); err != nil {
		log.Err(err).Str("func", "*Handler.addSecret").Str("secretName", request.SecretName).Msg("error storing secret")
		h.writeError(w, request.RequestId, err)
		return
	}

	utils.WriteJSON(w, models.NewBaseResponse(request.RequestId, "", http.StatusCreated), http.StatusCreated)
}

// writeError answers with a BaseResponse carrying the status mapped from
// err.
func (h *Handler) writeError(w http.ResponseWriter, requestID string, err error) {
	status := statusFromError(err)
	utils.WriteJSON(w, models.NewBaseResponse(requestID, err.Error(), status), status)
}
