package api

import (
	"context"
	"net/http"
	"time"

	"design-studio/backend/internal/constants"
	"design-studio/backend/internal/models/entities"
)

const healthPingTimeout = 2 * time.Second

// HealthCheck handles GET /api/health
func (h *Handlers) HealthCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services := make(map[string]entities.ServiceStatus)
		status := h.deps.Services.Status

		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()

		storeStatus := string(constants.APIStatusOk)
		storeDetails := status.StoreDriver() + " connected"
		if err := status.Ping(ctx); err != nil {
			storeStatus = string(constants.APIStatusDown)
			storeDetails = err.Error()
		}
		services["store"] = entities.ServiceStatus{
			Status:  storeStatus,
			Details: storeDetails,
		}

		overallStatus := string(constants.APIStatusOk)
		for _, svc := range services {
			if svc.Status != string(constants.APIStatusOk) {
				overallStatus = string(constants.APIStatusDown)
				break
			}
		}

		code := http.StatusOK
		if overallStatus != string(constants.APIStatusOk) {
			code = http.StatusServiceUnavailable
		}

		upSince := h.deps.UpSince
		resp := entities.HealthCheckResponse{
			Status:   overallStatus,
			Message:  constants.MsgBackendRunning,
			Services: services,
			UpSince:  upSince.UTC(),
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}
		respondWithJSON(w, code, resp)
	}
}
