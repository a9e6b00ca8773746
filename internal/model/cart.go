package model

// ApplyOfferRequest represents the request payload for applying the best offer to a cart.
type ApplyOfferRequest struct {
	CartValue    *int64 `json:"cart_value"`
	UserID       *int64 `json:"user_id"`
	RestaurantID *int64 `json:"restaurant_id"`
}

// ApplyOfferResponse carries the cart value after the discount.
type ApplyOfferResponse struct {
	CartValue int64 `json:"cart_value"`
}

// SegmentResponse is the payload served by the user segment service.
type SegmentResponse struct {
	Segment string `json:"segment"`
}
