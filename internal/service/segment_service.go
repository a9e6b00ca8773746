package service

import (
	"context"

	"github.com/rs/zerolog"

	"cart-offer/internal/model"
	"cart-offer/internal/segment"
)

// segmentService implements SegmentService over a Resolver.
type segmentService struct {
	resolver segment.Resolver
	logger   zerolog.Logger
}

// NewSegmentService creates a new segment service.
func NewSegmentService(resolver segment.Resolver, logger zerolog.Logger) SegmentService {
	return &segmentService{
		resolver: resolver,
		logger:   logger.With().Str("service", "segment").Logger(),
	}
}

// GetSegment returns the segment label for the user.
func (s *segmentService) GetSegment(ctx context.Context, userID int64) (*model.SegmentResponse, error) {
	if userID <= 0 {
		return nil, model.ErrInvalidIdentifier
	}

	seg, err := s.resolver.Lookup(ctx, userID)
	if err != nil {
		s.logger.Debug().Err(err).Int64("user_id", userID).Msg("segment lookup failed")
		return nil, err
	}

	return &model.SegmentResponse{Segment: seg}, nil
}
