package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"cart-offer/internal/model"
)

// maxBodyBytes bounds request bodies accepted by the JSON handlers.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError maps err to a status and writes a JSON error body. Domain errors
// are client errors; anything else is reported as an internal error without
// leaking its message.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	if de, ok := model.AsDomainError(err); ok {
		writeErrorStatus(w, r, http.StatusBadRequest, de.Code, de.Message, logger)
		return
	}

	logger.Error().
		Err(err).
		Str("correlation_id", middleware.GetReqID(r.Context())).
		Msg("request failed")
	writeErrorStatus(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

// writeErrorStatus writes an error response with an explicit status.
func writeErrorStatus(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	correlationID := middleware.GetReqID(r.Context())

	if status < http.StatusInternalServerError {
		logger.Warn().
			Str("code", code).
			Str("error", message).
			Int("status", status).
			Str("correlation_id", correlationID).
			Msg("handler error")
	}

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: correlationID,
	})
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return model.NewDomainError(model.ErrCodeInvalidJSON, "request body too large")
		}
		return model.NewDomainError(model.ErrCodeInvalidJSON, "invalid request body")
	}

	return nil
}
