package service

import (
	"context"

	"cart-offer/internal/model"
)

// OfferService defines operations for offer registration.
type OfferService interface {
	// Register validates the request and stores a new offer.
	Register(ctx context.Context, req *model.OfferRequest) (*model.Offer, error)
}

// CartService defines operations on carts.
type CartService interface {
	// ApplyOffer resolves the user's segment and applies the restaurant's best offer.
	ApplyOffer(ctx context.Context, req *model.ApplyOfferRequest) (*model.ApplyOfferResponse, error)
}

// SegmentService answers user segment lookups for the mock segment server.
type SegmentService interface {
	// GetSegment returns the segment label for the user.
	GetSegment(ctx context.Context, userID int64) (*model.SegmentResponse, error)
}
