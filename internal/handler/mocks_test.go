package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cart-offer/internal/model"
)

// MockOfferService is a mock implementation of OfferService.
type MockOfferService struct {
	mock.Mock
}

func (m *MockOfferService) Register(ctx context.Context, req *model.OfferRequest) (*model.Offer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Offer), args.Error(1)
}

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) ApplyOffer(ctx context.Context, req *model.ApplyOfferRequest) (*model.ApplyOfferResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApplyOfferResponse), args.Error(1)
}

// MockSegmentService is a mock implementation of SegmentService.
type MockSegmentService struct {
	mock.Mock
}

func (m *MockSegmentService) GetSegment(ctx context.Context, userID int64) (*model.SegmentResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SegmentResponse), args.Error(1)
}
