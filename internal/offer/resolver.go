// Package offer selects the best offer for a cart and computes the discounted value.
//
// Everything here is a pure function of its inputs: offers are read, never
// modified, so callers may share an offer slice between goroutines.
package offer

import (
	"errors"
	"fmt"

	"cart-offer/internal/model"
)

// maxPercentage caps percentage offers so a discount never exceeds the cart.
const maxPercentage = 100

var (
	// ErrMalformedOffer reports stored offer data that can never produce a valid discount.
	ErrMalformedOffer = errors.New("malformed offer")

	// ErrNegativeCartValue is returned when the caller passes a cart value below zero.
	ErrNegativeCartValue = errors.New("cart value must not be negative")
)

// Selection describes the offer chosen for a cart.
type Selection struct {
	Offer    model.Offer
	Discount int64
}

// Discount returns the amount the offer takes off cartValue, before clamping
// the result at zero.
func Discount(cartValue int64, o model.Offer) (int64, error) {
	if o.OfferValue < 0 {
		return 0, fmt.Errorf("%w: offer %s has negative value %d", ErrMalformedOffer, o.ID, o.OfferValue)
	}

	switch o.OfferType {
	case model.OfferTypeFlat:
		return o.OfferValue, nil
	case model.OfferTypePercentage:
		return percentOf(cartValue, min(o.OfferValue, maxPercentage)), nil
	default:
		return 0, fmt.Errorf("%w: offer %s has unknown type %q", ErrMalformedOffer, o.ID, o.OfferType)
	}
}

// percentOf returns floor(cartValue*pct/100) for 0 <= pct <= 100 without
// forming the full product, so it holds for every non-negative int64 cart.
func percentOf(cartValue, pct int64) int64 {
	return cartValue/100*pct + cartValue%100*pct/100
}

// Best picks the offer giving segment the largest discount on cartValue.
// Ties keep the earliest offer in the slice, which is registration order.
// The bool is false when no offer targets the segment.
func Best(cartValue int64, segment string, offers []model.Offer) (Selection, bool, error) {
	if cartValue < 0 {
		return Selection{}, false, ErrNegativeCartValue
	}

	var (
		best  Selection
		found bool
	)

	for _, o := range offers {
		// Validate every offer, not only matching ones, so bad data surfaces early.
		d, err := Discount(cartValue, o)
		if err != nil {
			return Selection{}, false, err
		}

		if !o.AppliesTo(segment) {
			continue
		}

		if !found || d > best.Discount {
			best = Selection{Offer: o, Discount: d}
			found = true
		}
	}

	return best, found, nil
}

// Resolve returns the cart value after applying the best offer for segment.
// The result always lies in [0, cartValue].
func Resolve(cartValue int64, segment string, offers []model.Offer) (int64, error) {
	sel, ok, err := Best(cartValue, segment, offers)
	if err != nil {
		return 0, err
	}
	if !ok {
		return cartValue, nil
	}

	return Apply(cartValue, sel.Discount), nil
}

// Apply subtracts discount from cartValue, clamping at zero.
func Apply(cartValue, discount int64) int64 {
	if discount >= cartValue {
		return 0
	}
	return cartValue - discount
}
