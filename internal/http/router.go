package httpserver

import "net/http"

// Routes groups handlers.
type Routes struct {
	TelemetryIngest http.HandlerFunc
	TelemetryFeed   http.HandlerFunc

	VehicleList    http.HandlerFunc
	VehicleCreate  http.HandlerFunc
	VehicleGet     http.HandlerFunc
	VehicleUpdate  http.HandlerFunc
	VehicleDelete  http.HandlerFunc
	VehicleLatest  http.HandlerFunc
	VehicleDrives  http.HandlerFunc
	VehicleCharges http.HandlerFunc

	Health http.HandlerFunc
}

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// NewRouter registers endpoints. auth, when non-nil, guards everything under
// /api/v1 except the live feed's upgrade request.
func NewRouter(routes Routes, auth Middleware) http.Handler {
	guard := func(h http.Handler) http.Handler {
		if auth == nil {
			return h
		}
		return auth(h)
	}

	mux := http.NewServeMux()
	if routes.TelemetryIngest != nil {
		mux.Handle("/api/v1/telemetry", guard(methods(map[string]http.HandlerFunc{
			http.MethodPost: routes.TelemetryIngest,
		})))
	}
	if routes.TelemetryFeed != nil {
		mux.Handle("/api/v1/telemetry/stream", method(http.MethodGet, routes.TelemetryFeed))
	}
	if routes.VehicleList != nil || routes.VehicleCreate != nil {
		mux.Handle("/api/v1/vehicles", guard(methods(map[string]http.HandlerFunc{
			http.MethodGet:  routes.VehicleList,
			http.MethodPost: routes.VehicleCreate,
		})))
	}
	if routes.VehicleGet != nil || routes.VehicleUpdate != nil || routes.VehicleDelete != nil {
		mux.Handle("/api/v1/vehicles/{id}", guard(methods(map[string]http.HandlerFunc{
			http.MethodGet:    routes.VehicleGet,
			http.MethodPut:    routes.VehicleUpdate,
			http.MethodDelete: routes.VehicleDelete,
		})))
	}
	if routes.VehicleLatest != nil {
		mux.Handle("/api/v1/vehicles/{id}/telemetry/latest", guard(method(http.MethodGet, routes.VehicleLatest)))
	}
	if routes.VehicleDrives != nil {
		mux.Handle("/api/v1/vehicles/{id}/drives", guard(method(http.MethodGet, routes.VehicleDrives)))
	}
	if routes.VehicleCharges != nil {
		mux.Handle("/api/v1/vehicles/{id}/charging-sessions", guard(method(http.MethodGet, routes.VehicleCharges)))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return methods(map[string]http.HandlerFunc{expected: handler})
}

func methods(handlers map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok && handler != nil {
			handler(w, r)
			return
		}
		allow := ""
		for m, h := range handlers {
			if h == nil {
				continue
			}
			if allow != "" {
				allow += ", "
			}
			allow += m
		}
		w.Header().Set("Allow", allow)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
