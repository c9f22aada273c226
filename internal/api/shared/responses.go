package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/tomhaskel/profiled/internal/redact"
)

// Envelope is the uniform JSON body of every API response: a success flag,
// a human-readable message, an optional data payload and, on failure, an
// optional error detail string.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// exposeErrorDetails controls whether error responses carry the underlying
// error text. Enabled outside production at startup.
var exposeErrorDetails atomic.Bool

// SetExposeErrorDetails toggles attaching underlying error messages to
// error envelopes. Production deployments keep this off.
func SetExposeErrorDetails(enabled bool) {
	exposeErrorDetails.Store(enabled)
}

// RespondWithJSON writes a success envelope with the given status, message
// and data payload.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, message string, data interface{}) {
	writeEnvelope(w, Envelope{
		Success: status < http.StatusBadRequest,
		Message: message,
		Data:    data,
	}, status)
}

// RespondWithError writes a failure envelope with the given status and message.
// It also logs the response with the request's trace ID for correlation.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	writeEnvelope(w, Envelope{
		Success: false,
		Message: message,
	}, status)
}

// RespondWithErrorAndLog writes a failure envelope and logs the detailed
// error. The raw error text reaches the client only when error detail
// exposure is enabled (non-production); the logged copy is always redacted.
//
// Log level strategy: 5xx at ERROR, everything else at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	envelope := Envelope{
		Success: false,
		Message: userMessage,
	}
	if err != nil && exposeErrorDetails.Load() {
		envelope.Error = err.Error()
	}

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	writeEnvelope(w, envelope, status)
}

// writeEnvelope serializes an envelope with the given status code.
func writeEnvelope(w http.ResponseWriter, envelope Envelope, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}
