package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carrentapp/carrent/internal/gateway"
)

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a user-facing error message as JSON.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeGatewayError converts a rental-API failure into a user-facing
// response: backend rejections keep their status and message, transport
// failures become a 502 with a generic message. Callers handle ErrNotFound
// themselves since the right reaction depends on the route.
func writeGatewayError(w http.ResponseWriter, err error) {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		writeError(w, apiErr.Status, apiErr.Message)
		return
	}
	writeError(w, http.StatusBadGateway, "cannot reach the rental service")
}
