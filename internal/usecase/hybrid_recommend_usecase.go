package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"reco-orchestrator/internal/domain"
	"reco-orchestrator/internal/usecase/recommend"
)

// HybridRecommendInput defines the parameters of one hybrid request.
type HybridRecommendInput struct {
	UserID     string
	Alpha      float64
	K          int
	ExpansionK int

	// Diversify re-ranks the fused pool with MMR.
	Diversify   bool
	MMRLambda   float64
	MMRPoolSize int
}

// HybridRecommendOutput is the ranked result for one user.
type HybridRecommendOutput struct {
	RequestID    string
	Items        []recommend.ScoredItem
	SkippedSeeds int
}

// HybridRecommendUsecase produces blended collaborative+content
// recommendations for a user.
type HybridRecommendUsecase interface {
	Execute(ctx context.Context, input HybridRecommendInput) (*HybridRecommendOutput, error)
	// InvalidateCache drops all cached results; called when ratings or the
	// model change.
	InvalidateCache()
}

type hybridRecommendUsecase struct {
	snapshots SnapshotSource
	finder    domain.NeighborFinder
	logger    *slog.Logger
	cache     *expirable.LRU[string, *HybridRecommendOutput]
}

// HybridRecommendOption customizes the usecase.
type HybridRecommendOption func(*hybridRecommendUsecase)

// WithResultCache enables a TTL-bounded per-user result cache. Invalidation
// is explicit: the refresher purges it whenever the underlying snapshot is
// swapped.
func WithResultCache(size int, ttl time.Duration) HybridRecommendOption {
	return func(u *hybridRecommendUsecase) {
		if size > 0 {
			u.cache = expirable.NewLRU[string, *HybridRecommendOutput](size, nil, ttl)
		}
	}
}

// NewHybridRecommendUsecase wires the hybrid recommendation flow. finder
// may be nil, in which case neighbor expansion falls back to brute-force
// cosine over the embedding store.
func NewHybridRecommendUsecase(
	snapshots SnapshotSource,
	finder domain.NeighborFinder,
	logger *slog.Logger,
	opts ...HybridRecommendOption,
) HybridRecommendUsecase {
	u := &hybridRecommendUsecase{
		snapshots: snapshots,
		finder:    finder,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *hybridRecommendUsecase) Execute(ctx context.Context, input HybridRecommendInput) (*HybridRecommendOutput, error) {
	if input.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if input.Alpha < 0 || input.Alpha > 1 {
		return nil, fmt.Errorf("alpha must be in [0,1], got %v", input.Alpha)
	}
	if input.K <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", input.K)
	}

	cacheKey := fmt.Sprintf("%s|%g|%d|%d|%t|%g|%d",
		input.UserID, input.Alpha, input.K, input.ExpansionK,
		input.Diversify, input.MMRLambda, input.MMRPoolSize)
	if u.cache != nil {
		if cached, ok := u.cache.Get(cacheKey); ok {
			return cached, nil
		}
	}

	requestID := uuid.New().String()
	logger := u.logger.With(
		slog.String("request_id", requestID),
		slog.String("user_id", input.UserID))

	snap := u.snapshots.Current()
	start := time.Now()

	seeds := recommend.TopKCollaborative(input.K, input.UserID, snap.Oracle, snap.Ratings, snap.Catalog)

	// With diversification the fused pool is widened so MMR has candidates
	// beyond the final k to trade relevance against.
	fuseK := input.K
	if input.Diversify && input.MMRPoolSize > fuseK {
		fuseK = input.MMRPoolSize
	}

	fused, err := recommend.FuseScores(ctx, seeds, recommend.FuseParams{
		Alpha:      input.Alpha,
		K:          fuseK,
		ExpansionK: input.ExpansionK,
	}, snap.Store, snap.Catalog, u.finder, logger)
	if err != nil {
		return nil, err
	}

	items := fused.Items
	if input.Diversify {
		items = recommend.MMRSelect(items, input.K, input.MMRLambda, input.MMRPoolSize, snap.Store)
	}

	logger.Info("hybrid_recommendation_completed",
		slog.Int("result_count", len(items)),
		slog.Int("skipped_seeds", fused.SkippedSeeds),
		slog.Bool("diversified", input.Diversify),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	output := &HybridRecommendOutput{
		RequestID:    requestID,
		Items:        items,
		SkippedSeeds: fused.SkippedSeeds,
	}
	if u.cache != nil {
		u.cache.Add(cacheKey, output)
	}
	return output, nil
}

func (u *hybridRecommendUsecase) InvalidateCache() {
	if u.cache != nil {
		u.cache.Purge()
	}
}
