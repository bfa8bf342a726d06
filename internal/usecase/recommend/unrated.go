package recommend

import (
	"reco-orchestrator/internal/domain"
)

// UnratedItems returns, in catalog row order, the IDs of items whose title
// the user has not yet rated. Deduplication is by normalized title rather
// than item ID: the source datasets contain multiple item IDs (editions,
// ISBNs) for the same logical work, and a different edition of an already
// rated book must not come back as a candidate.
//
// A user with no ratings gets the full catalog. Unknown users never fail.
func UnratedItems(userID string, ratings []domain.Rating, catalog *domain.ItemCatalog) []string {
	ratedTitles := make(map[string]struct{})
	for _, r := range ratings {
		if r.UserID != userID || !r.IsExplicit() {
			continue
		}
		// Rated items missing from the catalog cannot contribute a title;
		// catalog drift is expected and skipped.
		title, ok := catalog.TitleOf(r.ItemID)
		if !ok {
			continue
		}
		ratedTitles[domain.NormalizeTitle(title)] = struct{}{}
	}

	unrated := make([]string, 0, catalog.Len())
	for row := 0; row < catalog.Len(); row++ {
		item := catalog.At(row)
		if _, rated := ratedTitles[domain.NormalizeTitle(item.Title)]; rated {
			continue
		}
		unrated = append(unrated, item.ID)
	}
	return unrated
}
