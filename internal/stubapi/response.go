package stubapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// envelope is the {success,data,message} shape the late-attendance and
// employee endpoints use. The dashboard endpoints return their payloads
// bare, matching the backend this stub stands in for.
type envelope struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data,omitempty"`
	Message   string    `json:"message,omitempty"`
	Error     *apiError `json:"error,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func success(w http.ResponseWriter, data any, requestID string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, RequestID: requestID})
}

func successMessage(w http.ResponseWriter, message, requestID string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: message, RequestID: requestID})
}

func fail(w http.ResponseWriter, status int, code, message, requestID string) {
	writeJSON(w, status, envelope{Success: false, Error: &apiError{Code: code, Message: message}, RequestID: requestID})
}
