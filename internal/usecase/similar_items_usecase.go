package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"reco-orchestrator/internal/domain"
	"reco-orchestrator/internal/usecase/recommend"
)

// SimilarItemsInput defines a content-similarity query. Query is a title:
// known titles resolve to their stored embedding, unknown text is embedded
// on demand when an embedder is configured.
type SimilarItemsInput struct {
	Query string
	K     int
}

// SimilarItemsOutput holds the nearest items with their similarity scores.
type SimilarItemsOutput struct {
	Items []recommend.ScoredItem
}

// SimilarItemsUsecase answers "more like this" queries.
type SimilarItemsUsecase interface {
	Execute(ctx context.Context, input SimilarItemsInput) (*SimilarItemsOutput, error)
}

type similarItemsUsecase struct {
	snapshots SnapshotSource
	finder    domain.NeighborFinder
	embedder  domain.TextEmbedder
	logger    *slog.Logger
}

// NewSimilarItemsUsecase wires the content ranker. Both finder and embedder
// are optional: without a finder the ranker brute-forces cosine similarity,
// without an embedder unknown titles are a not-found error.
func NewSimilarItemsUsecase(
	snapshots SnapshotSource,
	finder domain.NeighborFinder,
	embedder domain.TextEmbedder,
	logger *slog.Logger,
) SimilarItemsUsecase {
	return &similarItemsUsecase{
		snapshots: snapshots,
		finder:    finder,
		embedder:  embedder,
		logger:    logger,
	}
}

func (u *similarItemsUsecase) Execute(ctx context.Context, input SimilarItemsInput) (*SimilarItemsOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, fmt.Errorf("query is required")
	}
	if input.K <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", input.K)
	}

	snap := u.snapshots.Current()
	start := time.Now()

	items, err := recommend.TopKContent(ctx, input.Query, input.K, snap.Store, snap.Catalog, u.finder, u.embedder)
	if err != nil {
		return nil, err
	}

	u.logger.Info("similar_items_completed",
		slog.String("query", input.Query),
		slog.Int("result_count", len(items)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	return &SimilarItemsOutput{Items: items}, nil
}
