package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cart-offer/internal/model"
)

// MockOfferRepository is a mock implementation of OfferRepository.
type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) Add(ctx context.Context, offer *model.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockOfferRepository) GetByRestaurant(ctx context.Context, restaurantID int64) ([]model.Offer, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Offer), args.Error(1)
}

func (m *MockOfferRepository) RestaurantExists(ctx context.Context, restaurantID int64) (bool, error) {
	args := m.Called(ctx, restaurantID)
	return args.Bool(0), args.Error(1)
}

// MockResolver is a mock implementation of segment.Resolver.
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Lookup(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func int64Ptr(v int64) *int64 {
	return &v
}
