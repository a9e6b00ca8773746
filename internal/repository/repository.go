package repository

import (
	"context"

	"cart-offer/internal/model"
)

// OfferRepository defines the interface for offer data access operations.
// Implementations preserve registration order so ties can be broken by it.
type OfferRepository interface {
	// Add registers a new offer. The offer's ID and CreatedAt are assigned
	// by the caller.
	Add(ctx context.Context, offer *model.Offer) error

	// GetByRestaurant returns a consistent snapshot of every offer registered
	// for the restaurant, oldest first. An unknown restaurant yields an empty slice.
	GetByRestaurant(ctx context.Context, restaurantID int64) ([]model.Offer, error)

	// RestaurantExists reports whether any offer has been registered for the restaurant.
	RestaurantExists(ctx context.Context, restaurantID int64) (bool, error)
}
