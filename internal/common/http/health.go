package http

import (
	"net/http"
	"time"

	"github.com/prashast-singh/to-do/internal/common/logger"
)

type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

func HealthHandler(serviceName string, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
			return
		}
		log.Debugf("health check request")
		WriteSuccess(w, http.StatusOK, healthResponse{
			Status:    "ok",
			Service:   serviceName,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}
