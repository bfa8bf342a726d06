package recommend

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"reco-orchestrator/internal/domain"
)

// FuseParams holds the knobs of the hybrid fusion stage.
type FuseParams struct {
	// Alpha weighs the collaborative channel: 1 = pure collaborative,
	// 0 = pure content.
	Alpha float64
	// K bounds the final list size.
	K int
	// ExpansionK is the number of content neighbors fetched per seed.
	ExpansionK int
}

// FuseResult is the output of the hybrid fusion stage.
type FuseResult struct {
	Items []ScoredItem
	// SkippedSeeds counts seeds that had no row in the embedding store
	// (catalog drift between the ratings and content datasets).
	SkippedSeeds int
}

// FuseScores blends collaborative seeds with their content neighbors into a
// single ranked list.
//
// Each seed is expanded into ExpansionK embedding neighbors; neighbor
// similarities are min-max normalized within that seed's set, weighted by
// the seed's collaborative score, and accumulated into a per-item content
// channel (an item surfaced by multiple seeds accumulates confidence). The
// content and collaborative channels are then each min-max normalized over
// the full item universe and blended by Alpha. Seed items are excluded from
// the final list.
//
// Seeds missing from the embedding store are skipped and counted, never
// fatal. An empty seed set returns domain.ErrNoSeeds so callers can branch
// to a cold-start fallback.
func FuseScores(
	ctx context.Context,
	seeds []ScoredItem,
	params FuseParams,
	store *domain.EmbeddingStore,
	catalog *domain.ItemCatalog,
	finder domain.NeighborFinder,
	logger *slog.Logger,
) (*FuseResult, error) {
	if len(seeds) == 0 {
		return nil, domain.ErrNoSeeds
	}

	type resolvedSeed struct {
		row   int
		score float64
	}
	resolved := make([]resolvedSeed, 0, len(seeds))
	skipped := 0
	for _, seed := range seeds {
		row, ok := store.RowOf(seed.ItemID)
		if !ok {
			skipped++
			continue
		}
		resolved = append(resolved, resolvedSeed{row: row, score: seed.Score})
	}
	if len(resolved) == 0 {
		// Every seed fell into the dataset gap; nothing to anchor on.
		return nil, domain.ErrNoSeeds
	}

	// Expand all seeds in parallel; accumulation stays sequential so the
	// per-seed zeroing order matches the original algorithm.
	expansionStart := time.Now()
	expansions := make([][]rowScore, len(resolved))
	g, gctx := errgroup.WithContext(ctx)
	for i, seed := range resolved {
		i, seed := i, seed
		g.Go(func() error {
			neighbors, err := nearestRows(gctx, store.At(seed.row), params.ExpansionK, seed.row, store, finder)
			if err != nil {
				return err
			}
			expansions[i] = neighbors
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	contentScore := make([]float64, store.Len())
	for i, seed := range resolved {
		neighbors := expansions[i]
		similarities := make([]float64, len(neighbors))
		for j, n := range neighbors {
			similarities[j] = n.score
		}
		normalized := MinMaxNormalize(similarities)
		for j, n := range neighbors {
			contentScore[n.row] += normalized[j] * seed.score
		}
		// A seed must not boost itself through its own neighbor set.
		contentScore[seed.row] = 0
	}

	collabScore := make([]float64, store.Len())
	seedRows := make(map[int]bool, len(resolved))
	for _, seed := range resolved {
		collabScore[seed.row] = seed.score
		seedRows[seed.row] = true
	}

	contentNorm := MinMaxNormalize(contentScore)
	collabNorm := MinMaxNormalize(collabScore)

	ranked := make([]rowScore, 0, store.Len())
	for row := 0; row < store.Len(); row++ {
		if seedRows[row] {
			continue
		}
		ranked = append(ranked, rowScore{
			row:   row,
			score: params.Alpha*collabNorm[row] + (1-params.Alpha)*contentNorm[row],
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if params.K >= 0 && len(ranked) > params.K {
		ranked = ranked[:params.K]
	}

	items := make([]ScoredItem, 0, len(ranked))
	for _, r := range ranked {
		items = append(items, ScoredItem{
			ItemID: store.IDAt(r.row),
			Title:  catalog.At(r.row).Title,
			Score:  r.score,
		})
	}

	logger.Info("hybrid_fusion_completed",
		slog.Int("seed_count", len(seeds)),
		slog.Int("skipped_seeds", skipped),
		slog.Int("result_count", len(items)),
		slog.Float64("alpha", params.Alpha),
		slog.Int64("expansion_ms", time.Since(expansionStart).Milliseconds()))

	return &FuseResult{Items: items, SkippedSeeds: skipped}, nil
}
