package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"reco-orchestrator/internal/usecase/recommend"
)

// CollaborativeRankInput defines a pure collaborative top-k request.
type CollaborativeRankInput struct {
	UserID string
	K      int
}

// CollaborativeRankOutput holds the user's top predicted items.
type CollaborativeRankOutput struct {
	Items []recommend.ScoredItem
}

// CollaborativeRankUsecase ranks a user's unrated items by predicted
// rating only, without the content channel.
type CollaborativeRankUsecase interface {
	Execute(ctx context.Context, input CollaborativeRankInput) (*CollaborativeRankOutput, error)
}

type collaborativeRankUsecase struct {
	snapshots SnapshotSource
	logger    *slog.Logger
}

// NewCollaborativeRankUsecase wires the collaborative ranker.
func NewCollaborativeRankUsecase(snapshots SnapshotSource, logger *slog.Logger) CollaborativeRankUsecase {
	return &collaborativeRankUsecase{snapshots: snapshots, logger: logger}
}

func (u *collaborativeRankUsecase) Execute(_ context.Context, input CollaborativeRankInput) (*CollaborativeRankOutput, error) {
	if input.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if input.K <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", input.K)
	}

	snap := u.snapshots.Current()
	items := recommend.TopKCollaborative(input.K, input.UserID, snap.Oracle, snap.Ratings, snap.Catalog)

	u.logger.Debug("collaborative_rank_completed",
		slog.String("user_id", input.UserID),
		slog.Int("result_count", len(items)))

	return &CollaborativeRankOutput{Items: items}, nil
}
