package domain

import (
	"fmt"
	"math"
)

// EmbeddingStore is an immutable dense matrix of item embeddings with an
// item-id to row-index mapping built once per dataset load.
type EmbeddingStore struct {
	vectors [][]float32
	dim     int
	ids     []string
	rowByID map[string]int
}

// NewEmbeddingStore builds a store from parallel slices of item IDs and
// embedding rows. Shape mismatches and duplicate IDs fail loudly: the
// mapping must be rebuilt whenever the item set changes.
func NewEmbeddingStore(ids []string, vectors [][]float32) (*EmbeddingStore, error) {
	if len(ids) != len(vectors) {
		return nil, fmt.Errorf("%w: %d ids for %d vectors", ErrMisalignedStore, len(ids), len(vectors))
	}
	s := &EmbeddingStore{
		vectors: vectors,
		ids:     ids,
		rowByID: make(map[string]int, len(ids)),
	}
	if len(vectors) > 0 {
		s.dim = len(vectors[0])
	}
	for row, vec := range vectors {
		if len(vec) != s.dim {
			return nil, fmt.Errorf("%w: row %d has dim %d, expected %d",
				ErrMisalignedStore, row, len(vec), s.dim)
		}
		if _, dup := s.rowByID[ids[row]]; dup {
			return nil, fmt.Errorf("%w: duplicate item id %q", ErrMisalignedStore, ids[row])
		}
		s.rowByID[ids[row]] = row
	}
	return s, nil
}

// Len returns the number of embedding rows.
func (s *EmbeddingStore) Len() int {
	return len(s.vectors)
}

// Dim returns the embedding dimension.
func (s *EmbeddingStore) Dim() int {
	return s.dim
}

// At returns the embedding at the given row. The returned slice is shared
// and must be treated as read-only.
func (s *EmbeddingStore) At(row int) []float32 {
	return s.vectors[row]
}

// RowOf resolves an item ID to its embedding row.
func (s *EmbeddingStore) RowOf(itemID string) (int, bool) {
	row, ok := s.rowByID[itemID]
	return row, ok
}

// IDAt returns the item ID stored at the given row.
func (s *EmbeddingStore) IDAt(row int) string {
	return s.ids[row]
}

// VectorOf resolves an item ID to its embedding.
func (s *EmbeddingStore) VectorOf(itemID string) ([]float32, bool) {
	row, ok := s.rowByID[itemID]
	if !ok {
		return nil, false
	}
	return s.vectors[row], true
}

// CosineSimilarity computes the cosine similarity of two vectors.
// Mismatched or zero-norm inputs score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
