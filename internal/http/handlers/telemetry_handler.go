package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"ditelemetry/internal/service"
	"ditelemetry/internal/telemetry"
)

// TelemetryHandler holds the ingest endpoint and the per-vehicle reads.
type TelemetryHandler struct {
	svc    *service.TelemetryService
	logger *zap.Logger
}

// NewTelemetryHandler builds handler set.
func NewTelemetryHandler(svc *service.TelemetryService, logger *zap.Logger) *TelemetryHandler {
	return &TelemetryHandler{
		svc:    svc,
		logger: logger,
	}
}

type ingestResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	PositionID        int64  `json:"position_id"`
	DriveID           *int64 `json:"drive_id,omitempty"`
	ChargingSessionID *int64 `json:"charging_session_id,omitempty"`
}

// Ingest handles POST /api/v1/telemetry?vehicle_id=N.
func (h *TelemetryHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := strconv.ParseInt(r.URL.Query().Get("vehicle_id"), 10, 64)
	if err != nil || vehicleID <= 0 {
		writeError(w, http.StatusBadRequest, "vehicle_id is required")
		return
	}

	var payload telemetry.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if payload.Timestamp == 0 {
		writeError(w, http.StatusBadRequest, "timestamp is required")
		return
	}

	result, err := h.svc.ProcessSnapshot(r.Context(), vehicleID, payload)
	if err != nil {
		h.logger.Error("failed to process telemetry",
			zap.Int64("vehicle_id", vehicleID),
			zap.Error(err))
		writeServiceError(w, err)
		return
	}

	resp := ingestResponse{
		Success:    true,
		Message:    "telemetry received",
		PositionID: result.Snapshot.ID,
	}
	if result.Drive != nil {
		resp.DriveID = &result.Drive.ID
	}
	if result.ChargingSession != nil {
		resp.ChargingSessionID = &result.ChargingSession.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

// Latest handles GET /api/v1/vehicles/{id}/telemetry/latest.
func (h *TelemetryHandler) Latest(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	snap, err := h.svc.LatestSnapshot(r.Context(), vehicleID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if snap == nil {
		writeError(w, http.StatusNotFound, "no telemetry recorded")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Drives handles GET /api/v1/vehicles/{id}/drives.
func (h *TelemetryHandler) Drives(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	limit, err := queryInt(r, "limit", "50")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	drives, err := h.svc.Drives(r.Context(), vehicleID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"drives": drives})
}

// ChargingSessions handles GET /api/v1/vehicles/{id}/charging-sessions.
func (h *TelemetryHandler) ChargingSessions(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	limit, err := queryInt(r, "limit", "50")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	sessions, err := h.svc.ChargingSessions(r.Context(), vehicleID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"charging_sessions": sessions})
}
