package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"ditelemetry/internal/service"
)

// VehiclesHandler serves the vehicle registry endpoints.
type VehiclesHandler struct {
	svc    *service.VehicleService
	logger *zap.Logger
}

// NewVehiclesHandler builds handler set.
func NewVehiclesHandler(svc *service.VehicleService, logger *zap.Logger) *VehiclesHandler {
	return &VehiclesHandler{
		svc:    svc,
		logger: logger,
	}
}

type vehicleRequest struct {
	VIN   *string `json:"vin"`
	Model *string `json:"model"`
}

// List handles GET /api/v1/vehicles.
func (h *VehiclesHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", "100")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	offset, err := queryInt(r, "offset", "0")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid offset")
		return
	}

	vehicles, total, err := h.svc.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list vehicles", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"vehicles": vehicles,
		"total":    total,
	})
}

// Create handles POST /api/v1/vehicles.
func (h *VehiclesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	vehicle, err := h.svc.Create(r.Context(), service.VehicleInput{
		VIN:   req.VIN,
		Model: req.Model,
	})
	if err != nil {
		h.logger.Error("failed to create vehicle", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

// Get handles GET /api/v1/vehicles/{id}.
func (h *VehiclesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	vehicle, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// Update handles PUT /api/v1/vehicles/{id}.
func (h *VehiclesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	vehicle, err := h.svc.Update(r.Context(), id, service.VehicleInput{
		VIN:   req.VIN,
		Model: req.Model,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// Delete handles DELETE /api/v1/vehicles/{id}.
func (h *VehiclesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
