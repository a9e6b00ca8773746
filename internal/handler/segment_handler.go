package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"cart-offer/internal/model"
	"cart-offer/internal/service"
)

// SegmentHandler serves the mock user segment endpoint.
type SegmentHandler struct {
	service service.SegmentService
	logger  zerolog.Logger
}

// NewSegmentHandler creates a new segment handler.
func NewSegmentHandler(service service.SegmentService, logger zerolog.Logger) *SegmentHandler {
	return &SegmentHandler{
		service: service,
		logger:  logger.With().Str("handler", "segment").Logger(),
	}
}

// Get handles GET /user_segment?user_id=N requests.
func (h *SegmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		writeError(w, r, model.MissingField("user_id"), h.logger)
		return
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, r, model.ErrInvalidIdentifier, h.logger)
		return
	}

	resp, err := h.service.GetSegment(r.Context(), userID)
	if errors.Is(err, model.ErrUserNotFound) {
		writeErrorStatus(w, r, http.StatusNotFound, model.ErrCodeUserNotFound, model.ErrUserNotFound.Message, h.logger)
		return
	}
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
