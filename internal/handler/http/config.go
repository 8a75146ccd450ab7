package http

import (
	"net/http"

	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/models"
)

// config returns the running configuration. Insecure secrets are left out.
func (h *Handler) config(w http.ResponseWriter, r *http.Request) {
	cfg := *h.dic.Config()
	cfg.Writable.InsecureSecrets = nil

	response := models.ConfigResponse{
		BaseResponse: models.NewBaseResponse("", "", http.StatusOK),
		Config:       cfg,
		ServiceName:  h.serviceKey,
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
