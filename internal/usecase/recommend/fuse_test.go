package recommend_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reco-orchestrator/internal/domain"
	"reco-orchestrator/internal/usecase/recommend"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// Seeds for the five-book fixture: the collaborative stage picked the two
// near-duplicate anchors c and d.
func fixtureSeeds() []recommend.ScoredItem {
	return []recommend.ScoredItem{
		{ItemID: "c", Title: "Dune Messiah", Score: 4.5},
		{ItemID: "d", Title: "Persuasion", Score: 4.0},
	}
}

func TestFuseScores_ContentOnly_RanksByAccumulatedNeighborScore(t *testing.T) {
	catalog, store := fiveBookFixture(t)

	result, err := recommend.FuseScores(context.Background(), fixtureSeeds(),
		recommend.FuseParams{Alpha: 0, K: 3, ExpansionK: 2},
		store, catalog, nil, discardLogger())

	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	// c's neighbors are (a, e), d's are (b, e); per-seed normalization makes
	// a and b the carriers, weighted by their seed's collaborative score.
	assert.Equal(t, "a", result.Items[0].ItemID)
	assert.InDelta(t, 1.0, result.Items[0].Score, 1e-9)
	assert.Equal(t, "b", result.Items[1].ItemID)
	assert.InDelta(t, 4.0/4.5, result.Items[1].Score, 1e-9)
	assert.Equal(t, "e", result.Items[2].ItemID)
	assert.InDelta(t, 0.0, result.Items[2].Score, 1e-9)
}

func TestFuseScores_CollaborativeOnly_ContentChannelContributesNothing(t *testing.T) {
	catalog, store := fiveBookFixture(t)

	result, err := recommend.FuseScores(context.Background(), fixtureSeeds(),
		recommend.FuseParams{Alpha: 1, K: 5, ExpansionK: 2},
		store, catalog, nil, discardLogger())

	require.NoError(t, err)
	// Seeds are excluded from the pool and they are the only carriers of
	// collaborative signal, so every surviving item scores zero.
	for _, item := range result.Items {
		assert.Equal(t, 0.0, item.Score)
	}
}

func TestFuseScores_NeverRecommendsASeed(t *testing.T) {
	catalog, store := fiveBookFixture(t)

	for _, alpha := range []float64{0, 0.5, 1} {
		result, err := recommend.FuseScores(context.Background(), fixtureSeeds(),
			recommend.FuseParams{Alpha: alpha, K: 5, ExpansionK: 3},
			store, catalog, nil, discardLogger())
		require.NoError(t, err)
		for _, item := range result.Items {
			assert.NotEqual(t, "c", item.ItemID, "alpha=%v", alpha)
			assert.NotEqual(t, "d", item.ItemID, "alpha=%v", alpha)
		}
	}
}

func TestFuseScores_BlendIsConvexCombination(t *testing.T) {
	catalog, store := fiveBookFixture(t)

	result, err := recommend.FuseScores(context.Background(), fixtureSeeds(),
		recommend.FuseParams{Alpha: 0.5, K: 3, ExpansionK: 2},
		store, catalog, nil, discardLogger())

	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "a", result.Items[0].ItemID)
	assert.InDelta(t, 0.5, result.Items[0].Score, 1e-9)
	assert.InDelta(t, 0.5*(4.0/4.5), result.Items[1].Score, 1e-9)
}

func TestFuseScores_SeedMissingFromStoreIsSkippedAndCounted(t *testing.T) {
	catalog, store := fiveBookFixture(t)
	seeds := []recommend.ScoredItem{
		{ItemID: "c", Score: 4.5},
		{ItemID: "not-in-content-dataset", Score: 4.2},
	}

	result, err := recommend.FuseScores(context.Background(), seeds,
		recommend.FuseParams{Alpha: 0, K: 5, ExpansionK: 2},
		store, catalog, nil, discardLogger())

	require.NoError(t, err, "catalog drift must not fail the request")
	assert.Equal(t, 1, result.SkippedSeeds)
	for _, item := range result.Items {
		assert.NotEqual(t, "not-in-content-dataset", item.ItemID,
			"a dropped seed must not leave a spurious score behind")
	}
	// Only c contributes: its top neighbor still ranks first.
	assert.Equal(t, "a", result.Items[0].ItemID)
}

func TestFuseScores_NoSeeds_SignalsColdStart(t *testing.T) {
	catalog, store := fiveBookFixture(t)

	_, err := recommend.FuseScores(context.Background(), nil,
		recommend.FuseParams{Alpha: 0.5, K: 5, ExpansionK: 2},
		store, catalog, nil, discardLogger())

	assert.ErrorIs(t, err, domain.ErrNoSeeds)
}

func TestFuseScores_AllSeedsLostToDrift_SignalsColdStart(t *testing.T) {
	catalog, store := fiveBookFixture(t)
	seeds := []recommend.ScoredItem{{ItemID: "ghost", Score: 4.0}}

	_, err := recommend.FuseScores(context.Background(), seeds,
		recommend.FuseParams{Alpha: 0.5, K: 5, ExpansionK: 2},
		store, catalog, nil, discardLogger())

	assert.ErrorIs(t, err, domain.ErrNoSeeds)
}

func TestFuseScores_IndexBackedExpansion(t *testing.T) {
	catalog, store := fiveBookFixture(t)
	// The finder always answers with a's row plus the seed itself; the seed
	// hit must be dropped per expansion.
	finder := &stubFinder{neighbors: []domain.Neighbor{
		{ItemID: "a", Distance: 0.01},
		{ItemID: "e", Distance: 0.3},
	}}

	result, err := recommend.FuseScores(context.Background(),
		[]recommend.ScoredItem{{ItemID: "c", Score: 4.0}},
		recommend.FuseParams{Alpha: 0, K: 2, ExpansionK: 2},
		store, catalog, finder, discardLogger())

	require.NoError(t, err)
	require.NotEmpty(t, result.Items)
	assert.Equal(t, "a", result.Items[0].ItemID)
}
