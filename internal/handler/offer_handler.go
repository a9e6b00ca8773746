package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"cart-offer/internal/model"
	"cart-offer/internal/service"
)

// OfferHandler handles offer registration requests.
type OfferHandler struct {
	service service.OfferService
	logger  zerolog.Logger
}

// NewOfferHandler creates a new offer handler.
func NewOfferHandler(service service.OfferService, logger zerolog.Logger) *OfferHandler {
	return &OfferHandler{
		service: service,
		logger:  logger.With().Str("handler", "offer").Logger(),
	}
}

// Create handles POST /offer requests.
func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OfferRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	if _, err := h.service.Register(r.Context(), &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.OfferResponse{ResponseMsg: "success"})
}
