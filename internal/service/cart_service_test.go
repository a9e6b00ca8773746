package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cart-offer/internal/model"
	"cart-offer/internal/offer"
)

func testOffer(offerType model.OfferType, value int64, segments ...string) model.Offer {
	return model.Offer{
		ID:               uuid.New(),
		RestaurantID:     1,
		OfferType:        offerType,
		OfferValue:       value,
		CustomerSegments: segments,
	}
}

func applyRequest(cart, user, restaurant int64) *model.ApplyOfferRequest {
	return &model.ApplyOfferRequest{
		CartValue:    int64Ptr(cart),
		UserID:       int64Ptr(user),
		RestaurantID: int64Ptr(restaurant),
	}
}

func TestCartService_ApplyOffer(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		cart     int64
		segment  string
		offers   []model.Offer
		expected int64
	}{
		{
			name:     "flat offer for segment",
			cart:     200,
			segment:  "p1",
			offers:   []model.Offer{testOffer(model.OfferTypeFlat, 10, "p1")},
			expected: 190,
		},
		{
			name:     "percentage beats flat by amount",
			cart:     200,
			segment:  "p1",
			offers:   []model.Offer{testOffer(model.OfferTypeFlat, 10, "p1"), testOffer(model.OfferTypePercentage, 15, "p1")},
			expected: 170,
		},
		{
			name:     "no offer for segment",
			cart:     200,
			segment:  "p3",
			offers:   []model.Offer{testOffer(model.OfferTypeFlat, 10, "p1")},
			expected: 200,
		},
		{
			name:     "flat larger than cart",
			cart:     50,
			segment:  "p1",
			offers:   []model.Offer{testOffer(model.OfferTypeFlat, 100, "p1")},
			expected: 0,
		},
		{
			name:     "zero cart",
			cart:     0,
			segment:  "p1",
			offers:   []model.Offer{testOffer(model.OfferTypeFlat, 10, "p1")},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockOfferRepository)
			resolver := new(MockResolver)

			resolver.On("Lookup", mock.Anything, int64(1)).Return(tt.segment, nil)
			repo.On("RestaurantExists", mock.Anything, int64(1)).Return(true, nil)
			repo.On("GetByRestaurant", mock.Anything, int64(1)).Return(tt.offers, nil)

			svc := NewCartService(repo, resolver, zerolog.Nop())

			resp, err := svc.ApplyOffer(ctx, applyRequest(tt.cart, 1, 1))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resp.CartValue)

			repo.AssertExpectations(t)
			resolver.AssertExpectations(t)
		})
	}
}

func TestCartService_ApplyOffer_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		req         *model.ApplyOfferRequest
		expectedErr error
		errCode     string
	}{
		{
			name:        "negative cart",
			req:         applyRequest(-1, 1, 1),
			expectedErr: model.ErrInvalidCartValue,
		},
		{
			name:    "missing cart value",
			req:     &model.ApplyOfferRequest{UserID: int64Ptr(1), RestaurantID: int64Ptr(1)},
			errCode: model.ErrCodeMissingField,
		},
		{
			name:    "missing user",
			req:     &model.ApplyOfferRequest{CartValue: int64Ptr(1), RestaurantID: int64Ptr(1)},
			errCode: model.ErrCodeMissingField,
		},
		{
			name:    "missing restaurant",
			req:     &model.ApplyOfferRequest{CartValue: int64Ptr(1), UserID: int64Ptr(1)},
			errCode: model.ErrCodeMissingField,
		},
		{
			name:        "zero user id",
			req:         applyRequest(100, 0, 1),
			expectedErr: model.ErrInvalidIdentifier,
		},
		{
			name:        "negative restaurant id",
			req:         applyRequest(100, 1, -3),
			expectedErr: model.ErrInvalidIdentifier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockOfferRepository)
			resolver := new(MockResolver)
			svc := NewCartService(repo, resolver, zerolog.Nop())

			resp, err := svc.ApplyOffer(context.Background(), tt.req)
			assert.Nil(t, resp)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				de, ok := model.AsDomainError(err)
				require.True(t, ok)
				assert.Equal(t, tt.errCode, de.Code)
			}

			resolver.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
			repo.AssertNotCalled(t, "RestaurantExists", mock.Anything, mock.Anything)
		})
	}
}

func TestCartService_ApplyOffer_UnknownUser(t *testing.T) {
	repo := new(MockOfferRepository)
	resolver := new(MockResolver)
	resolver.On("Lookup", mock.Anything, int64(999)).Return("", model.ErrUserNotFound)

	svc := NewCartService(repo, resolver, zerolog.Nop())

	resp, err := svc.ApplyOffer(context.Background(), applyRequest(200, 999, 1))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
	repo.AssertNotCalled(t, "RestaurantExists", mock.Anything, mock.Anything)
}

func TestCartService_ApplyOffer_UnknownRestaurant(t *testing.T) {
	repo := new(MockOfferRepository)
	resolver := new(MockResolver)
	resolver.On("Lookup", mock.Anything, int64(1)).Return("p1", nil)
	repo.On("RestaurantExists", mock.Anything, int64(999)).Return(false, nil)

	svc := NewCartService(repo, resolver, zerolog.Nop())

	resp, err := svc.ApplyOffer(context.Background(), applyRequest(200, 1, 999))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, model.ErrRestaurantNotFound)
	repo.AssertNotCalled(t, "GetByRestaurant", mock.Anything, mock.Anything)
}

func TestCartService_ApplyOffer_InfrastructureErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(repo *MockOfferRepository, resolver *MockResolver)
	}{
		{
			name: "segment service down",
			setup: func(repo *MockOfferRepository, resolver *MockResolver) {
				resolver.On("Lookup", mock.Anything, int64(1)).Return("", errors.New("connection refused"))
			},
		},
		{
			name: "exists check fails",
			setup: func(repo *MockOfferRepository, resolver *MockResolver) {
				resolver.On("Lookup", mock.Anything, int64(1)).Return("p1", nil)
				repo.On("RestaurantExists", mock.Anything, int64(1)).Return(false, errors.New("db down"))
			},
		},
		{
			name: "offer load fails",
			setup: func(repo *MockOfferRepository, resolver *MockResolver) {
				resolver.On("Lookup", mock.Anything, int64(1)).Return("p1", nil)
				repo.On("RestaurantExists", mock.Anything, int64(1)).Return(true, nil)
				repo.On("GetByRestaurant", mock.Anything, int64(1)).Return(nil, errors.New("db down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockOfferRepository)
			resolver := new(MockResolver)
			tt.setup(repo, resolver)

			svc := NewCartService(repo, resolver, zerolog.Nop())

			resp, err := svc.ApplyOffer(context.Background(), applyRequest(200, 1, 1))
			assert.Nil(t, resp)
			require.Error(t, err)
			_, isDomain := model.AsDomainError(err)
			assert.False(t, isDomain, "infrastructure errors must not look like client errors")
		})
	}
}

func TestCartService_ApplyOffer_MalformedStoredOffer(t *testing.T) {
	repo := new(MockOfferRepository)
	resolver := new(MockResolver)
	resolver.On("Lookup", mock.Anything, int64(1)).Return("p1", nil)
	repo.On("RestaurantExists", mock.Anything, int64(1)).Return(true, nil)
	repo.On("GetByRestaurant", mock.Anything, int64(1)).Return([]model.Offer{
		testOffer("BOGO", 10, "p2"),
	}, nil)

	svc := NewCartService(repo, resolver, zerolog.Nop())

	resp, err := svc.ApplyOffer(context.Background(), applyRequest(200, 1, 1))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, offer.ErrMalformedOffer)
}
