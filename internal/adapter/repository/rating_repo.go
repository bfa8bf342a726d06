package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"reco-orchestrator/internal/domain"
)

type ratingRepository struct {
	pool *pgxpool.Pool
}

// NewRatingRepository creates a RatingRepository over the ratings table.
func NewRatingRepository(pool *pgxpool.Pool) domain.RatingRepository {
	return &ratingRepository{pool: pool}
}

func (r *ratingRepository) ListRatings(ctx context.Context) ([]domain.Rating, error) {
	// rating = 0 is implicit feedback in some source datasets and is not
	// part of the explicit rated set.
	query := `
		SELECT user_id, item_id, rating
		FROM ratings
		WHERE rating > 0
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []domain.Rating
	for rows.Next() {
		var rating domain.Rating
		if err := rows.Scan(&rating.UserID, &rating.ItemID, &rating.Value); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return ratings, nil
}
