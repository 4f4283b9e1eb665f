package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"ditelemetry/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service errors onto response codes: rejections the
// caller can correct are 4xx, everything else is an internal failure.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrVehicleNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrStaleTimestamp),
		errors.Is(err, service.ErrInvalidCoordinates),
		errors.Is(err, service.ErrInvalidHeading),
		errors.Is(err, service.ErrInvalidAccuracy):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func queryInt(r *http.Request, name, fallback string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		raw = fallback
	}
	return strconv.Atoi(raw)
}
