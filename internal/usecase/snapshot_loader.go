package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"reco-orchestrator/internal/domain"
)

// OracleFactory turns trained factor parameters into a rating oracle.
// Injected so this package stays independent of the concrete model adapter.
type OracleFactory func(params *domain.FactorModelParams) domain.RatingOracle

// SnapshotLoader assembles a full dataset snapshot from the repositories.
// Catalog, ratings, embeddings and model parameters are fetched in parallel
// and cross-checked before the snapshot is handed out; a stale or misaligned
// dataset is rejected rather than served.
type SnapshotLoader struct {
	catalogRepo   domain.CatalogRepository
	ratingRepo    domain.RatingRepository
	embeddingRepo domain.EmbeddingRepository
	factorRepo    domain.FactorRepository
	newOracle     OracleFactory

	// RatingsFrom, when set to a non-degenerate scale differing from the
	// model's, rescales loaded ratings onto the model scale once at load.
	RatingsFrom domain.RatingScale

	logger *slog.Logger
}

func NewSnapshotLoader(
	catalogRepo domain.CatalogRepository,
	ratingRepo domain.RatingRepository,
	embeddingRepo domain.EmbeddingRepository,
	factorRepo domain.FactorRepository,
	newOracle OracleFactory,
	logger *slog.Logger,
) *SnapshotLoader {
	return &SnapshotLoader{
		catalogRepo:   catalogRepo,
		ratingRepo:    ratingRepo,
		embeddingRepo: embeddingRepo,
		factorRepo:    factorRepo,
		newOracle:     newOracle,
		logger:        logger,
	}
}

// Load fetches all four datasets and builds a verified snapshot.
func (l *SnapshotLoader) Load(ctx context.Context) (*Snapshot, error) {
	start := time.Now()

	var (
		items   []domain.Item
		ratings []domain.Rating
		ids     []string
		vectors [][]float32
		params  *domain.FactorModelParams
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = l.catalogRepo.ListItems(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ratings, err = l.ratingRepo.ListRatings(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ids, vectors, err = l.embeddingRepo.ListEmbeddings(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		params, err = l.factorRepo.LoadModel(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	catalog, err := domain.NewItemCatalog(items)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	store, err := domain.NewEmbeddingStore(ids, vectors)
	if err != nil {
		return nil, fmt.Errorf("build embedding store: %w", err)
	}
	if err := catalog.VerifyAlignment(store); err != nil {
		return nil, err
	}

	modelScale := domain.RatingScale{Min: params.MinRating, Max: params.MaxRating}
	ratings = domain.RescaleRatings(ratings, l.RatingsFrom, modelScale)

	l.logger.Info("snapshot_loaded",
		slog.Int("items", catalog.Len()),
		slog.Int("ratings", len(ratings)),
		slog.Int("embedding_dim", store.Dim()),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	return &Snapshot{
		Catalog: catalog,
		Store:   store,
		Ratings: ratings,
		Oracle:  l.newOracle(params),
	}, nil
}
