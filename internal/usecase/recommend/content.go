package recommend

import (
	"context"
	"fmt"
	"sort"

	"reco-orchestrator/internal/domain"
)

// TopKContent returns the k items most similar to the query by embedding
// distance. The query is either a title known to the catalog, resolved to
// its stored embedding, or free text embedded on demand through the
// injected embedder. A known query item never appears in its own results.
//
// With a neighbor finder the pre-built index is used; without one the
// ranker falls back to brute-force cosine over the full embedding matrix.
// Output order is deterministic: ties keep embedding row order.
func TopKContent(
	ctx context.Context,
	query string,
	k int,
	store *domain.EmbeddingStore,
	catalog *domain.ItemCatalog,
	finder domain.NeighborFinder,
	embedder domain.TextEmbedder,
) ([]ScoredItem, error) {
	var vector []float32
	selfRow := -1

	if row, ok := catalog.ResolveTitle(query); ok {
		selfRow = row
		vector = store.At(row)
	} else {
		if embedder == nil {
			return nil, fmt.Errorf("resolve query %q: %w", query, domain.ErrItemNotFound)
		}
		embedded, err := embedder.Embed(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("embed query %q: %w", query, err)
		}
		if len(embedded) != store.Dim() {
			return nil, fmt.Errorf("embedder returned dim %d, store has dim %d: %w",
				len(embedded), store.Dim(), domain.ErrMisalignedStore)
		}
		vector = embedded
	}

	neighbors, err := nearestRows(ctx, vector, k, selfRow, store, finder)
	if err != nil {
		return nil, err
	}

	items := make([]ScoredItem, 0, len(neighbors))
	for _, n := range neighbors {
		items = append(items, ScoredItem{
			ItemID: store.IDAt(n.row),
			Title:  catalog.At(n.row).Title,
			Score:  n.score,
		})
	}
	return items, nil
}

// nearestRows returns up to k (row, similarity) pairs nearest to vector,
// excluding selfRow when it is a valid row. Index hits and brute-force
// results are both expressed as similarities so downstream normalization
// sees one scale.
func nearestRows(
	ctx context.Context,
	vector []float32,
	k int,
	selfRow int,
	store *domain.EmbeddingStore,
	finder domain.NeighborFinder,
) ([]rowScore, error) {
	if k <= 0 {
		return nil, nil
	}

	if finder != nil {
		// Fetch one extra so the query item's own hit can be dropped.
		hits, err := finder.Nearest(ctx, vector, k+1)
		if err != nil {
			return nil, fmt.Errorf("neighbor search: %w", err)
		}
		rows := make([]rowScore, 0, k)
		for _, hit := range hits {
			row, ok := store.RowOf(hit.ItemID)
			if !ok {
				// Index drift: the index knows an item the store does not.
				continue
			}
			if row == selfRow {
				continue
			}
			rows = append(rows, rowScore{row: row, score: 1 - hit.Distance})
			if len(rows) == k {
				break
			}
		}
		return rows, nil
	}

	similarities := make([]rowScore, 0, store.Len())
	for row := 0; row < store.Len(); row++ {
		if row == selfRow {
			continue
		}
		similarities = append(similarities, rowScore{
			row:   row,
			score: domain.CosineSimilarity(vector, store.At(row)),
		})
	}
	sort.SliceStable(similarities, func(i, j int) bool {
		return similarities[i].score > similarities[j].score
	})
	if len(similarities) > k {
		similarities = similarities[:k]
	}
	return similarities, nil
}
