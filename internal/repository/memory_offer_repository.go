package repository

import (
	"context"
	"sync"

	"cart-offer/internal/model"

	"github.com/rs/zerolog"
)

// memoryOfferRepository implements OfferRepository in process memory.
// Offers live for the lifetime of the process.
type memoryOfferRepository struct {
	mu     sync.RWMutex
	offers map[int64][]model.Offer
	logger zerolog.Logger
}

// NewMemoryOfferRepository creates an empty in-memory offer repository.
func NewMemoryOfferRepository(logger zerolog.Logger) OfferRepository {
	return &memoryOfferRepository{
		offers: make(map[int64][]model.Offer),
		logger: logger.With().Str("repository", "offer-memory").Logger(),
	}
}

// Add appends the offer to its restaurant's list.
func (r *memoryOfferRepository) Add(ctx context.Context, offer *model.Offer) error {
	stored := *offer
	stored.CustomerSegments = append([]string(nil), offer.CustomerSegments...)

	r.mu.Lock()
	r.offers[offer.RestaurantID] = append(r.offers[offer.RestaurantID], stored)
	count := len(r.offers[offer.RestaurantID])
	r.mu.Unlock()

	r.logger.Debug().
		Str("offer_id", offer.ID.String()).
		Int64("restaurant_id", offer.RestaurantID).
		Int("restaurant_offer_count", count).
		Msg("offer stored")

	return nil
}

// GetByRestaurant returns a copy of the restaurant's offers so callers never
// observe a later Add.
func (r *memoryOfferRepository) GetByRestaurant(ctx context.Context, restaurantID int64) ([]model.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.offers[restaurantID]
	snapshot := make([]model.Offer, len(stored))
	for i, o := range stored {
		snapshot[i] = o
		snapshot[i].CustomerSegments = append([]string(nil), o.CustomerSegments...)
	}

	return snapshot, nil
}

// RestaurantExists reports whether any offer has been registered for the restaurant.
func (r *memoryOfferRepository) RestaurantExists(ctx context.Context, restaurantID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.offers[restaurantID]) > 0, nil
}
