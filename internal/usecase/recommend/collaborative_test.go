package recommend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reco-orchestrator/internal/domain"
	"reco-orchestrator/internal/usecase/recommend"
)

func TestTopKCollaborative_RanksByPredictedScore(t *testing.T) {
	catalog, _ := fiveBookFixture(t)
	ratings := []domain.Rating{
		{UserID: "u1", ItemID: "a", Value: 5},
		{UserID: "u1", ItemID: "b", Value: 4},
	}
	oracle := &stubOracle{
		scores: map[string]float64{
			"u1/c": 4.5,
			"u1/d": 4.0,
			"u1/e": 3.0,
		},
	}

	top := recommend.TopKCollaborative(2, "u1", oracle, ratings, catalog)

	require.Len(t, top, 2)
	assert.Equal(t, "c", top[0].ItemID)
	assert.Equal(t, "d", top[1].ItemID)
	assert.GreaterOrEqual(t, top[0].Score, top[1].Score)
}

func TestTopKCollaborative_OnlyDrawsFromUnratedItems(t *testing.T) {
	catalog, _ := fiveBookFixture(t)
	ratings := []domain.Rating{
		{UserID: "u1", ItemID: "a", Value: 5},
	}
	oracle := &stubOracle{baseline: 3.0}

	top := recommend.TopKCollaborative(10, "u1", oracle, ratings, catalog)

	unrated := recommend.UnratedItems("u1", ratings, catalog)
	require.Len(t, top, len(unrated))
	for _, item := range top {
		assert.Contains(t, unrated, item.ItemID)
	}
}

func TestTopKCollaborative_KIsAMaximum(t *testing.T) {
	catalog, _ := fiveBookFixture(t)
	oracle := &stubOracle{baseline: 3.0}

	top := recommend.TopKCollaborative(100, "u1", oracle, nil, catalog)

	assert.Len(t, top, catalog.Len(), "fewer candidates than k returns all of them")
}

func TestTopKCollaborative_TiesKeepCandidateOrder(t *testing.T) {
	catalog, _ := fiveBookFixture(t)
	// Cold-start user: the oracle returns its baseline for every item, so
	// the output must keep catalog row order.
	oracle := &stubOracle{baseline: 3.2}

	top := recommend.TopKCollaborative(5, "newcomer", oracle, nil, catalog)

	require.Len(t, top, 5)
	ids := make([]string, len(top))
	for i, item := range top {
		ids[i] = item.ItemID
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids)
}
