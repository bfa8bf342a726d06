package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "the lord of the rings", NormalizeTitle("  The Lord  of the Rings "))
	assert.Equal(t, "dune", NormalizeTitle("DUNE"))
	assert.Equal(t, "", NormalizeTitle("   "))
}

func TestNewItemCatalog_DuplicateIDFails(t *testing.T) {
	_, err := NewItemCatalog([]Item{
		{ID: "a", Title: "Dune"},
		{ID: "a", Title: "Dune (reprint)"},
	})
	assert.Error(t, err)
}

func TestItemCatalog_DuplicateTitlesResolveToFirstRow(t *testing.T) {
	catalog, err := NewItemCatalog([]Item{
		{ID: "isbn-1", Title: "Dune"},
		{ID: "isbn-2", Title: "DUNE"},
	})
	require.NoError(t, err)

	row, ok := catalog.ResolveTitle("dune")
	require.True(t, ok)
	assert.Equal(t, 0, row, "re-editions resolve to the first catalog row")
}

func TestItemCatalog_ResolveTitle_ContainmentFallback(t *testing.T) {
	catalog, err := NewItemCatalog([]Item{
		{ID: "a", Title: "Emma"},
		{ID: "b", Title: "The Lord of the Rings"},
	})
	require.NoError(t, err)

	row, ok := catalog.ResolveTitle("lord of the rings")
	require.True(t, ok)
	assert.Equal(t, 1, row)

	_, ok = catalog.ResolveTitle("wuthering heights")
	assert.False(t, ok)

	_, ok = catalog.ResolveTitle("   ")
	assert.False(t, ok, "blank queries never match via containment")
}

func TestItemCatalog_VerifyAlignment(t *testing.T) {
	catalog, err := NewItemCatalog([]Item{
		{ID: "a", Title: "Dune"},
		{ID: "b", Title: "Emma"},
	})
	require.NoError(t, err)

	aligned, err := NewEmbeddingStore([]string{"a", "b"}, [][]float32{{1, 0}, {0, 1}})
	require.NoError(t, err)
	assert.NoError(t, catalog.VerifyAlignment(aligned))

	reordered, err := NewEmbeddingStore([]string{"b", "a"}, [][]float32{{0, 1}, {1, 0}})
	require.NoError(t, err)
	assert.ErrorIs(t, catalog.VerifyAlignment(reordered), ErrMisalignedStore)

	short, err := NewEmbeddingStore([]string{"a"}, [][]float32{{1, 0}})
	require.NoError(t, err)
	assert.ErrorIs(t, catalog.VerifyAlignment(short), ErrMisalignedStore)
}

func TestNewEmbeddingStore_Validation(t *testing.T) {
	_, err := NewEmbeddingStore([]string{"a"}, [][]float32{{1, 0}, {0, 1}})
	assert.ErrorIs(t, err, ErrMisalignedStore, "id/vector count mismatch")

	_, err = NewEmbeddingStore([]string{"a", "b"}, [][]float32{{1, 0}, {0, 1, 0}})
	assert.ErrorIs(t, err, ErrMisalignedStore, "ragged rows")

	_, err = NewEmbeddingStore([]string{"a", "a"}, [][]float32{{1, 0}, {0, 1}})
	assert.ErrorIs(t, err, ErrMisalignedStore, "duplicate ids")
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-3, 0}), 1e-9)

	assert.Zero(t, CosineSimilarity([]float32{1, 0}, []float32{1}), "mismatched dims score zero")
	assert.Zero(t, CosineSimilarity([]float32{0, 0}, []float32{1, 0}), "zero norm scores zero")
}
