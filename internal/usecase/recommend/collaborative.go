package recommend

import (
	"sort"

	"reco-orchestrator/internal/domain"
)

// TopKCollaborative scores every item the user has not rated through the
// rating oracle and returns the top k by predicted score. k is a maximum:
// fewer candidates yield a shorter list. Ties keep candidate (catalog row)
// order, preserving the behavior of the source's stable sort.
//
// Cold-start users are the oracle's problem: it returns a baseline estimate
// for unknown users, so this ranker never fails.
func TopKCollaborative(k int, userID string, oracle domain.RatingOracle, ratings []domain.Rating, catalog *domain.ItemCatalog) []ScoredItem {
	candidates := UnratedItems(userID, ratings, catalog)

	scored := make([]ScoredItem, 0, len(candidates))
	for _, itemID := range candidates {
		title, _ := catalog.TitleOf(itemID)
		scored = append(scored, ScoredItem{
			ItemID: itemID,
			Title:  title,
			Score:  oracle.Predict(userID, itemID),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k >= 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored
}
