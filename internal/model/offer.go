package model

import (
	"time"

	"github.com/google/uuid"
)

// OfferType identifies how an offer's value is turned into a discount.
type OfferType string

const (
	// OfferTypeFlat takes a fixed amount off the cart.
	OfferTypeFlat OfferType = "FLATX"
	// OfferTypePercentage takes a percentage of the cart value off.
	OfferTypePercentage OfferType = "PERCENTAGE"
)

// Valid reports whether t is a known offer type.
func (t OfferType) Valid() bool {
	return t == OfferTypeFlat || t == OfferTypePercentage
}

// Offer represents a discount registered for a restaurant and scoped to customer segments.
type Offer struct {
	ID               uuid.UUID `json:"id" db:"id"`
	RestaurantID     int64     `json:"restaurant_id" db:"restaurant_id"`
	OfferType        OfferType `json:"offer_type" db:"offer_type"`
	OfferValue       int64     `json:"offer_value" db:"offer_value"`
	CustomerSegments []string  `json:"customer_segment" db:"customer_segments"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// AppliesTo reports whether the offer is available to the given segment.
func (o *Offer) AppliesTo(segment string) bool {
	for _, s := range o.CustomerSegments {
		if s == segment {
			return true
		}
	}
	return false
}

// OfferRequest represents the request payload for registering an offer.
// Pointer fields distinguish a missing field from a zero value.
type OfferRequest struct {
	RestaurantID     *int64   `json:"restaurant_id"`
	OfferType        string   `json:"offer_type"`
	OfferValue       *int64   `json:"offer_value"`
	CustomerSegments []string `json:"customer_segment"`
}

// OfferResponse is returned after an offer has been registered.
type OfferResponse struct {
	ResponseMsg string `json:"response_msg"`
}
