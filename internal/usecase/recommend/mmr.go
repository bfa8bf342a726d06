package recommend

import (
	"sort"

	"reco-orchestrator/internal/domain"
)

// MMRSelect greedily picks a diverse top-k subset of the candidates using
// Maximal Marginal Relevance: each slot takes the candidate maximizing
// lambda*relevance - (1-lambda)*max_similarity_to_selected.
//
// Only the poolSize highest-relevance candidates are considered, bounding
// the similarity work. Similarities are computed lazily per slot
// (O(k * poolSize * dim)); with the small pools used here that beats
// materializing a pairwise matrix. Ties take the lower candidate index, so
// lambda=1 degenerates to plain top-k by relevance. Candidates without an
// embedding contribute zero similarity.
func MMRSelect(candidates []ScoredItem, k int, lambda float64, poolSize int, store *domain.EmbeddingStore) []ScoredItem {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}

	pool := make([]ScoredItem, len(candidates))
	copy(pool, candidates)
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score > pool[j].Score
	})
	if poolSize > 0 && len(pool) > poolSize {
		pool = pool[:poolSize]
	}

	vectors := make([][]float32, len(pool))
	for i, c := range pool {
		if vec, ok := store.VectorOf(c.ItemID); ok {
			vectors[i] = vec
		}
	}

	selected := make([]int, 0, k)
	picked := make([]bool, len(pool))

	for len(selected) < k && len(selected) < len(pool) {
		bestIdx := -1
		bestScore := 0.0
		for i := range pool {
			if picked[i] {
				continue
			}
			maxSim := 0.0
			for rank, s := range selected {
				sim := 0.0
				if vectors[i] != nil && vectors[s] != nil {
					sim = domain.CosineSimilarity(vectors[i], vectors[s])
				}
				if rank == 0 || sim > maxSim {
					maxSim = sim
				}
			}
			score := lambda*pool[i].Score - (1-lambda)*maxSim
			if bestIdx == -1 || score > bestScore {
				bestIdx = i
				bestScore = score
			}
		}
		picked[bestIdx] = true
		selected = append(selected, bestIdx)
	}

	result := make([]ScoredItem, 0, len(selected))
	for _, i := range selected {
		result = append(result, pool[i])
	}
	return result
}
