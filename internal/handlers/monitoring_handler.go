package handlers

import (
	"net/http"

	"family-backend/internal/health"
	"family-backend/internal/monitoring"
)

type MonitoringHandler struct {
	Health *health.HealthChecker
}

func NewMonitoringHandler(checker *health.HealthChecker) *MonitoringHandler {
	return &MonitoringHandler{Health: checker}
}

// HealthCheck reports store and runtime health
func (h *MonitoringHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := h.Health.Check()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

// System returns a host resource snapshot (admin)
func (h *MonitoringHandler) System(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, monitoring.Snapshot())
}
