package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/models"
)

// withCorrelationID reuses the request correlation id or generates one. The
// id is echoed in the response and carried by the request logger.
func (h *Handler) withCorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get(models.CorrelationHeader)
		if correlationID == "" {
			correlationID = utils.NewCorrelationID()
			r.Header.Set(models.CorrelationHeader, correlationID)
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("correlation_id", correlationID)
		})

		ctx := utils.WithCorrelationID(l.WithContext(r.Context()), correlationID)

		w.Header().Set(models.CorrelationHeader, correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
