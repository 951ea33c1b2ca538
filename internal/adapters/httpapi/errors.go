package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/techup/travel-explorer-api/internal/app/apperr"
)

// ErrorResponse is the body of every non-2xx response. Errors is present
// only for validation failures (field name -> reason).
type ErrorResponse struct {
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Path      string            `json:"path"`
}

// writeAppError renders an already classified failure. The mapping from kind
// to status lives on apperr.Kind; nothing here inspects message text.
func writeAppError(w http.ResponseWriter, r *http.Request, ae *apperr.Error) {
	status := ae.Kind.Status()
	writeJSON(w, status, ErrorResponse{
		Message:   ae.Message,
		Errors:    ae.Fields,
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Path:      r.URL.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
