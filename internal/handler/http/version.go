package http

import (
	"net/http"

	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/models"
)

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.NewPingResponse(h.serviceKey), http.StatusOK)
}

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	response := models.VersionResponse{
		BaseResponse: models.NewBaseResponse("", "", http.StatusOK),
		Version:      h.buildInfo.BuildVersion(),
		SdkVersion:   h.sdkVersion,
		ServiceName:  h.serviceKey,
		BuildDate:    h.buildInfo.BuildDate(),
		BuildCommit:  h.buildInfo.BuildCommit(),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
