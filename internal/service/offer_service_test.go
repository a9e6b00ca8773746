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
)

func TestOfferService_Register(t *testing.T) {
	ctx := context.Background()

	validRequest := func() *model.OfferRequest {
		return &model.OfferRequest{
			RestaurantID:     int64Ptr(1),
			OfferType:        "FLATX",
			OfferValue:       int64Ptr(10),
			CustomerSegments: []string{"p1"},
		}
	}

	tests := []struct {
		name        string
		mutate      func(r *model.OfferRequest)
		expectedErr error
		errCode     string
	}{
		{
			name:   "valid flat offer",
			mutate: func(r *model.OfferRequest) {},
		},
		{
			name:   "valid percentage offer above 100",
			mutate: func(r *model.OfferRequest) { r.OfferType = "PERCENTAGE"; r.OfferValue = int64Ptr(150) },
		},
		{
			name:   "zero value offer",
			mutate: func(r *model.OfferRequest) { r.OfferValue = int64Ptr(0) },
		},
		{
			name:    "missing restaurant",
			mutate:  func(r *model.OfferRequest) { r.RestaurantID = nil },
			errCode: model.ErrCodeMissingField,
		},
		{
			name:    "missing offer type",
			mutate:  func(r *model.OfferRequest) { r.OfferType = "" },
			errCode: model.ErrCodeMissingField,
		},
		{
			name:    "missing offer value",
			mutate:  func(r *model.OfferRequest) { r.OfferValue = nil },
			errCode: model.ErrCodeMissingField,
		},
		{
			name:    "missing segments",
			mutate:  func(r *model.OfferRequest) { r.CustomerSegments = nil },
			errCode: model.ErrCodeMissingField,
		},
		{
			name:        "non positive restaurant",
			mutate:      func(r *model.OfferRequest) { r.RestaurantID = int64Ptr(0) },
			expectedErr: model.ErrInvalidIdentifier,
		},
		{
			name:        "unknown offer type",
			mutate:      func(r *model.OfferRequest) { r.OfferType = "BOGO" },
			expectedErr: model.ErrInvalidOfferType,
		},
		{
			name:        "lower case offer type",
			mutate:      func(r *model.OfferRequest) { r.OfferType = "flatx" },
			expectedErr: model.ErrInvalidOfferType,
		},
		{
			name:        "negative value",
			mutate:      func(r *model.OfferRequest) { r.OfferValue = int64Ptr(-5) },
			expectedErr: model.ErrInvalidOfferValue,
		},
		{
			name:        "empty segment list",
			mutate:      func(r *model.OfferRequest) { r.CustomerSegments = []string{} },
			expectedErr: model.ErrEmptySegments,
		},
		{
			name:        "blank segments only",
			mutate:      func(r *model.OfferRequest) { r.CustomerSegments = []string{"", "  "} },
			expectedErr: model.ErrEmptySegments,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockOfferRepository)
			svc := NewOfferService(repo, zerolog.Nop())

			req := validRequest()
			tt.mutate(req)

			success := tt.expectedErr == nil && tt.errCode == ""
			if success {
				repo.On("Add", ctx, mock.AnythingOfType("*model.Offer")).Return(nil)
			}

			offer, err := svc.Register(ctx, req)

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, offer)
			case tt.errCode != "":
				de, ok := model.AsDomainError(err)
				require.True(t, ok)
				assert.Equal(t, tt.errCode, de.Code)
				assert.Nil(t, offer)
			default:
				require.NoError(t, err)
				require.NotNil(t, offer)
				assert.NotEqual(t, uuid.Nil, offer.ID)
				assert.Equal(t, *req.RestaurantID, offer.RestaurantID)
				assert.Equal(t, model.OfferType(req.OfferType), offer.OfferType)
				assert.Equal(t, *req.OfferValue, offer.OfferValue)
				assert.False(t, offer.CreatedAt.IsZero())
			}

			repo.AssertExpectations(t)
			if !success {
				repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestOfferService_Register_NormalisesSegments(t *testing.T) {
	ctx := context.Background()
	repo := new(MockOfferRepository)
	repo.On("Add", ctx, mock.MatchedBy(func(o *model.Offer) bool {
		return assert.ObjectsAreEqual([]string{"p1", "p2"}, o.CustomerSegments)
	})).Return(nil)

	svc := NewOfferService(repo, zerolog.Nop())

	_, err := svc.Register(ctx, &model.OfferRequest{
		RestaurantID:     int64Ptr(1),
		OfferType:        "PERCENTAGE",
		OfferValue:       int64Ptr(10),
		CustomerSegments: []string{" p1", "p2", "", "p1"},
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestOfferService_Register_RepositoryError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockOfferRepository)
	repo.On("Add", ctx, mock.Anything).Return(errors.New("connection refused"))

	svc := NewOfferService(repo, zerolog.Nop())

	offer, err := svc.Register(ctx, &model.OfferRequest{
		RestaurantID:     int64Ptr(1),
		OfferType:        "FLATX",
		OfferValue:       int64Ptr(10),
		CustomerSegments: []string{"p1"},
	})

	assert.Error(t, err)
	assert.Nil(t, offer)
	_, isDomain := model.AsDomainError(err)
	assert.False(t, isDomain)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestOfferService_Register_NilRequest(t *testing.T) {
	svc := NewOfferService(new(MockOfferRepository), zerolog.Nop())

	offer, err := svc.Register(context.Background(), nil)
	assert.Error(t, err)
	assert.Nil(t, offer)
}
