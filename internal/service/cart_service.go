package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"cart-offer/internal/model"
	"cart-offer/internal/offer"
	"cart-offer/internal/repository"
	"cart-offer/internal/segment"
)

const tracerName = "cart-offer/internal/service"

// cartService implements CartService.
type cartService struct {
	offers   repository.OfferRepository
	segments segment.Resolver
	tracer   trace.Tracer
	logger   zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(offers repository.OfferRepository, segments segment.Resolver, logger zerolog.Logger) CartService {
	return &cartService{
		offers:   offers,
		segments: segments,
		tracer:   otel.Tracer(tracerName),
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

// ApplyOffer resolves the user's segment and applies the restaurant's best offer.
func (s *cartService) ApplyOffer(ctx context.Context, req *model.ApplyOfferRequest) (resp *model.ApplyOfferResponse, err error) {
	if err := validateApplyOfferRequest(req); err != nil {
		return nil, err
	}

	cartValue, userID, restaurantID := *req.CartValue, *req.UserID, *req.RestaurantID

	ctx, span := s.tracer.Start(ctx, "CartService.ApplyOffer", trace.WithAttributes(
		attribute.Int64("cart.value", cartValue),
		attribute.Int64("user.id", userID),
		attribute.Int64("restaurant.id", restaurantID),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	seg, err := s.lookupSegment(ctx, userID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("user.segment", seg))

	exists, err := s.offers.RestaurantExists(ctx, restaurantID)
	if err != nil {
		s.logger.Error().Err(err).Int64("restaurant_id", restaurantID).Msg("failed to check restaurant")
		return nil, fmt.Errorf("failed to check restaurant: %w", err)
	}
	if !exists {
		s.logger.Debug().Int64("restaurant_id", restaurantID).Msg("restaurant not found")
		return nil, model.ErrRestaurantNotFound
	}

	offers, err := s.offers.GetByRestaurant(ctx, restaurantID)
	if err != nil {
		s.logger.Error().Err(err).Int64("restaurant_id", restaurantID).Msg("failed to load offers")
		return nil, fmt.Errorf("failed to load offers: %w", err)
	}

	sel, found, err := offer.Best(cartValue, seg, offers)
	if err != nil {
		s.logger.Error().Err(err).Int64("restaurant_id", restaurantID).Msg("failed to resolve offer")
		return nil, fmt.Errorf("failed to resolve offer: %w", err)
	}

	result := cartValue
	if found {
		result = offer.Apply(cartValue, sel.Discount)
		span.SetAttributes(
			attribute.String("offer.id", sel.Offer.ID.String()),
			attribute.Int64("offer.discount", sel.Discount),
		)
	}

	event := s.logger.Info().
		Int64("user_id", userID).
		Int64("restaurant_id", restaurantID).
		Str("segment", seg).
		Int("offers_considered", len(offers)).
		Int64("cart_value", cartValue).
		Int64("final_value", result)
	if found {
		event = event.Str("offer_id", sel.Offer.ID.String()).Int64("discount", sel.Discount)
	}
	event.Msg("offer applied")

	return &model.ApplyOfferResponse{CartValue: result}, nil
}

func (s *cartService) lookupSegment(ctx context.Context, userID int64) (string, error) {
	seg, err := s.segments.Lookup(ctx, userID)
	if err == nil {
		return seg, nil
	}

	if errors.Is(err, model.ErrUserNotFound) {
		s.logger.Debug().Int64("user_id", userID).Msg("user segment not found")
		return "", model.ErrUserNotFound
	}

	s.logger.Error().Err(err).Int64("user_id", userID).Msg("segment lookup failed")
	return "", fmt.Errorf("failed to resolve user segment: %w", err)
}

// validateApplyOfferRequest checks presence first, then ranges.
func validateApplyOfferRequest(req *model.ApplyOfferRequest) error {
	if req == nil {
		return fmt.Errorf("apply offer request is nil")
	}

	switch {
	case req.CartValue == nil:
		return model.MissingField("cart_value")
	case req.UserID == nil:
		return model.MissingField("user_id")
	case req.RestaurantID == nil:
		return model.MissingField("restaurant_id")
	}

	if *req.CartValue < 0 {
		return model.ErrInvalidCartValue
	}

	if *req.UserID <= 0 || *req.RestaurantID <= 0 {
		return model.ErrInvalidIdentifier
	}

	return nil
}
