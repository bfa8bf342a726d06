package recommend_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"reco-orchestrator/internal/domain"
)

// testCatalog builds an aligned catalog and embedding store from parallel
// item and vector slices.
func testCatalog(t *testing.T, items []domain.Item, vectors [][]float32) (*domain.ItemCatalog, *domain.EmbeddingStore) {
	t.Helper()

	catalog, err := domain.NewItemCatalog(items)
	require.NoError(t, err)

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	store, err := domain.NewEmbeddingStore(ids, vectors)
	require.NoError(t, err)
	require.NoError(t, catalog.VerifyAlignment(store))

	return catalog, store
}

// fiveBookFixture is the shared ranking fixture: A and C are near
// duplicates, B and D are near duplicates, E sits between the clusters.
func fiveBookFixture(t *testing.T) (*domain.ItemCatalog, *domain.EmbeddingStore) {
	t.Helper()
	return testCatalog(t,
		[]domain.Item{
			{ID: "a", Title: "Dune"},
			{ID: "b", Title: "Emma"},
			{ID: "c", Title: "Dune Messiah"},
			{ID: "d", Title: "Persuasion"},
			{ID: "e", Title: "Middlemarch"},
		},
		[][]float32{
			{1, 0},
			{0, 1},
			{0.9, 0.1},
			{0.1, 0.9},
			{0.7, 0.7},
		})
}

// stubOracle predicts from a fixed (user, item) table and falls back to a
// baseline for unknown pairs, like a real latent-factor oracle.
type stubOracle struct {
	scores   map[string]float64 // key: userID + "/" + itemID
	baseline float64
}

func (o *stubOracle) Predict(userID, itemID string) float64 {
	if score, ok := o.scores[userID+"/"+itemID]; ok {
		return score
	}
	return o.baseline
}

// stubEmbedder returns a canned vector for every input.
type stubEmbedder struct {
	vector []float32
	err    error
}

func (e *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.vector, nil
}

func (e *stubEmbedder) Version() string { return "stub" }

// stubFinder serves canned neighbor lists.
type stubFinder struct {
	neighbors []domain.Neighbor
	err       error
	lastK     int
}

func (f *stubFinder) Nearest(_ context.Context, _ []float32, k int) ([]domain.Neighbor, error) {
	f.lastK = k
	if f.err != nil {
		return nil, f.err
	}
	if len(f.neighbors) > k {
		return f.neighbors[:k], nil
	}
	return f.neighbors, nil
}
