package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"cart-offer/internal/model"
	"cart-offer/internal/service"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// ApplyOffer handles POST /cart/apply_offer requests.
func (h *CartHandler) ApplyOffer(w http.ResponseWriter, r *http.Request) {
	var req model.ApplyOfferRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	resp, err := h.service.ApplyOffer(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
