package domain

import "context"

// Neighbor is a single nearest-neighbor hit. Distance is cosine distance
// over normalized vectors, so similarity = 1 - Distance.
type Neighbor struct {
	ItemID   string
	Distance float64
}

// NeighborFinder answers nearest-neighbor queries against a pre-built
// index. It is optional: when absent, rankers fall back to brute-force
// cosine similarity over the embedding store.
type NeighborFinder interface {
	Nearest(ctx context.Context, vector []float32, k int) ([]Neighbor, error)
}
