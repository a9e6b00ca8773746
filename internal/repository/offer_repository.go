package repository

import (
	"context"
	"fmt"

	"cart-offer/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// offerRepository implements the OfferRepository interface using PostgreSQL.
type offerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOfferRepository creates a new PostgreSQL-backed offer repository.
func NewOfferRepository(pool *pgxpool.Pool, logger zerolog.Logger) OfferRepository {
	return &offerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "offer").Logger(),
	}
}

// Add inserts a new offer. The seq column records registration order.
func (r *offerRepository) Add(ctx context.Context, offer *model.Offer) error {
	query := `
		INSERT INTO offers (id, restaurant_id, offer_type, offer_value, customer_segments, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		offer.ID,
		offer.RestaurantID,
		string(offer.OfferType),
		offer.OfferValue,
		offer.CustomerSegments,
		offer.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("offer_id", offer.ID.String()).
			Int64("restaurant_id", offer.RestaurantID).
			Msg("failed to insert offer")
		return fmt.Errorf("failed to insert offer: %w", err)
	}

	r.logger.Debug().
		Str("offer_id", offer.ID.String()).
		Int64("restaurant_id", offer.RestaurantID).
		Msg("offer inserted successfully")

	return nil
}

// GetByRestaurant retrieves all offers for a restaurant in registration order.
func (r *offerRepository) GetByRestaurant(ctx context.Context, restaurantID int64) ([]model.Offer, error) {
	query := `
		SELECT id, restaurant_id, offer_type, offer_value, customer_segments, created_at
		FROM offers
		WHERE restaurant_id = $1
		ORDER BY seq
	`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		r.logger.Error().Err(err).Int64("restaurant_id", restaurantID).Msg("failed to query offers")
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	offers := []model.Offer{}
	for rows.Next() {
		var (
			o         model.Offer
			offerType string
		)
		err := rows.Scan(&o.ID, &o.RestaurantID, &offerType, &o.OfferValue, &o.CustomerSegments, &o.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan offer row")
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		o.OfferType = model.OfferType(offerType)
		offers = append(offers, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating offer rows")
		return nil, fmt.Errorf("error iterating offers: %w", err)
	}

	return offers, nil
}

// RestaurantExists reports whether any offer has been registered for the restaurant.
func (r *offerRepository) RestaurantExists(ctx context.Context, restaurantID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM offers WHERE restaurant_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, restaurantID).Scan(&exists); err != nil {
		r.logger.Error().Err(err).Int64("restaurant_id", restaurantID).Msg("failed to check restaurant")
		return false, fmt.Errorf("failed to check restaurant: %w", err)
	}

	return exists, nil
}
