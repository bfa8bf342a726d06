package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"reco-orchestrator/internal/domain"
)

// BookRepository reads the content dataset. Catalog rows and embedding rows
// come from the same table in the same order (row_no), so the id-to-row
// mapping built from either is aligned by construction.
type bookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository creates a repository over the book_embeddings table.
func NewBookRepository(pool *pgxpool.Pool) interface {
	domain.CatalogRepository
	domain.EmbeddingRepository
} {
	return &bookRepository{pool: pool}
}

func (r *bookRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	query := `
		SELECT item_id, title
		FROM book_embeddings
		ORDER BY row_no ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Title); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return items, nil
}

func (r *bookRepository) ListEmbeddings(ctx context.Context) ([]string, [][]float32, error) {
	query := `
		SELECT item_id, embedding
		FROM book_embeddings
		ORDER BY row_no ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query embeddings: %w", err)
	}
	defer rows.Close()

	var ids []string
	var vectors [][]float32
	for rows.Next() {
		var id string
		var embedding pgvector.Vector
		if err := rows.Scan(&id, &embedding); err != nil {
			return nil, nil, fmt.Errorf("failed to scan embedding: %w", err)
		}
		ids = append(ids, id)
		vectors = append(vectors, embedding.Slice())
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("rows error: %w", err)
	}
	return ids, vectors, nil
}
