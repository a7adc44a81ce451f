package handlers

import (
	"net/http"

	"github.com/scms-platform/identity-service/internal/transport/http/dto"
	"github.com/scms-platform/identity-service/internal/transport/http/response"
)

const serviceVersion = "1.0.0"

type HealthHandler struct {
	serviceName string
}

func NewHealthHandler(serviceName string) *HealthHandler {
	return &HealthHandler{serviceName: serviceName}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, dto.HealthResponse{
		Status:  "healthy",
		Service: h.serviceName,
		Version: serviceVersion,
	})
}

// Liveness is the bare probe for orchestrators; no body parsing, no deps.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}
