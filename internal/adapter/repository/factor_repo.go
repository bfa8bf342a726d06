package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"reco-orchestrator/internal/domain"
)

type factorRepository struct {
	pool *pgxpool.Pool
}

// NewFactorRepository creates a FactorRepository over the trained
// latent-factor model tables.
func NewFactorRepository(pool *pgxpool.Pool) domain.FactorRepository {
	return &factorRepository{pool: pool}
}

func (r *factorRepository) LoadModel(ctx context.Context) (*domain.FactorModelParams, error) {
	params := &domain.FactorModelParams{
		UserBias:    make(map[string]float64),
		ItemBias:    make(map[string]float64),
		UserFactors: make(map[string][]float64),
		ItemFactors: make(map[string][]float64),
	}

	metaQuery := `
		SELECT global_mean, min_rating, max_rating
		FROM factor_model_meta
		ORDER BY trained_at DESC
		LIMIT 1
	`
	if err := r.pool.QueryRow(ctx, metaQuery).Scan(
		&params.GlobalMean, &params.MinRating, &params.MaxRating); err != nil {
		return nil, fmt.Errorf("failed to load model meta: %w", err)
	}

	userQuery := `
		SELECT user_id, bias, factors
		FROM user_factors
	`
	userRows, err := r.pool.Query(ctx, userQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query user factors: %w", err)
	}
	defer userRows.Close()
	for userRows.Next() {
		var id string
		var bias float64
		var factors []float64
		if err := userRows.Scan(&id, &bias, &factors); err != nil {
			return nil, fmt.Errorf("failed to scan user factors: %w", err)
		}
		params.UserBias[id] = bias
		params.UserFactors[id] = factors
	}
	if err := userRows.Err(); err != nil {
		return nil, fmt.Errorf("user factor rows error: %w", err)
	}

	itemQuery := `
		SELECT item_id, bias, factors
		FROM item_factors
	`
	itemRows, err := r.pool.Query(ctx, itemQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query item factors: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var id string
		var bias float64
		var factors []float64
		if err := itemRows.Scan(&id, &bias, &factors); err != nil {
			return nil, fmt.Errorf("failed to scan item factors: %w", err)
		}
		params.ItemBias[id] = bias
		params.ItemFactors[id] = factors
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("item factor rows error: %w", err)
	}

	return params, nil
}
