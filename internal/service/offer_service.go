package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cart-offer/internal/model"
	"cart-offer/internal/repository"
)

// offerService implements OfferService.
type offerService struct {
	repo   repository.OfferRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewOfferService creates a new offer service.
func NewOfferService(repo repository.OfferRepository, logger zerolog.Logger) OfferService {
	return &offerService{
		repo:   repo,
		logger: logger.With().Str("service", "offer").Logger(),
		now:    time.Now,
	}
}

// Register validates the request and stores a new offer.
func (s *offerService) Register(ctx context.Context, req *model.OfferRequest) (*model.Offer, error) {
	if err := s.validateOfferRequest(req); err != nil {
		return nil, err
	}

	offer := &model.Offer{
		ID:               uuid.New(),
		RestaurantID:     *req.RestaurantID,
		OfferType:        model.OfferType(req.OfferType),
		OfferValue:       *req.OfferValue,
		CustomerSegments: normaliseSegments(req.CustomerSegments),
		CreatedAt:        s.now().UTC(),
	}

	if err := s.repo.Add(ctx, offer); err != nil {
		s.logger.Error().
			Err(err).
			Int64("restaurant_id", offer.RestaurantID).
			Msg("failed to store offer")
		return nil, fmt.Errorf("failed to register offer: %w", err)
	}

	s.logger.Info().
		Str("offer_id", offer.ID.String()).
		Int64("restaurant_id", offer.RestaurantID).
		Str("offer_type", string(offer.OfferType)).
		Int64("offer_value", offer.OfferValue).
		Strs("segments", offer.CustomerSegments).
		Msg("offer registered")

	return offer, nil
}

// validateOfferRequest validates the offer request.
func (s *offerService) validateOfferRequest(req *model.OfferRequest) error {
	if req == nil {
		return fmt.Errorf("offer request is nil")
	}

	switch {
	case req.RestaurantID == nil:
		return model.MissingField("restaurant_id")
	case req.OfferType == "":
		return model.MissingField("offer_type")
	case req.OfferValue == nil:
		return model.MissingField("offer_value")
	case req.CustomerSegments == nil:
		return model.MissingField("customer_segment")
	}

	if *req.RestaurantID <= 0 {
		return model.ErrInvalidIdentifier
	}

	if !model.OfferType(req.OfferType).Valid() {
		s.logger.Warn().Str("offer_type", req.OfferType).Msg("unknown offer type")
		return model.ErrInvalidOfferType
	}

	if *req.OfferValue < 0 {
		return model.ErrInvalidOfferValue
	}

	if len(normaliseSegments(req.CustomerSegments)) == 0 {
		return model.ErrEmptySegments
	}

	return nil
}

// normaliseSegments trims labels and drops blanks and duplicates, keeping order.
func normaliseSegments(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
