package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"reco-orchestrator/internal/domain"
)

type pgvectorNeighborFinder struct {
	pool *pgxpool.Pool
}

// NewPgvectorNeighborFinder answers nearest-neighbor queries against the
// pgvector index on book_embeddings. Vectors are stored normalized, so the
// cosine distance reported by <=> converts to similarity as 1 - distance.
func NewPgvectorNeighborFinder(pool *pgxpool.Pool) domain.NeighborFinder {
	return &pgvectorNeighborFinder{pool: pool}
}

func (f *pgvectorNeighborFinder) Nearest(ctx context.Context, vector []float32, k int) ([]domain.Neighbor, error) {
	query := `
		SELECT item_id, embedding <=> $1 AS distance
		FROM book_embeddings
		ORDER BY embedding <=> $1 ASC
		LIMIT $2
	`
	rows, err := f.pool.Query(ctx, query, pgvector.NewVector(vector), k)
	if err != nil {
		return nil, fmt.Errorf("failed to query neighbors: %w", err)
	}
	defer rows.Close()

	var neighbors []domain.Neighbor
	for rows.Next() {
		var n domain.Neighbor
		if err := rows.Scan(&n.ItemID, &n.Distance); err != nil {
			return nil, fmt.Errorf("failed to scan neighbor: %w", err)
		}
		neighbors = append(neighbors, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return neighbors, nil
}
