package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"reco-orchestrator/internal/adapter/encoder"
	"reco-orchestrator/internal/adapter/factor"
	"reco-orchestrator/internal/adapter/recohttp"
	"reco-orchestrator/internal/adapter/repository"
	"reco-orchestrator/internal/domain"
	"reco-orchestrator/internal/infra/config"
	"reco-orchestrator/internal/infra/httpclient"
	"reco-orchestrator/internal/usecase"
	"reco-orchestrator/internal/worker"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	// Usecases
	HybridUsecase        usecase.HybridRecommendUsecase
	CollaborativeUsecase usecase.CollaborativeRankUsecase
	SimilarUsecase       usecase.SimilarItemsUsecase

	// Serving state
	Snapshots *usecase.SnapshotHolder
	Loader    *usecase.SnapshotLoader

	// Worker
	Refresher *worker.Refresher

	// HTTP
	Handler *recohttp.Handler
}

// NewApplicationComponents wires all dependencies from config and database
// pool, loading the initial dataset snapshot. Startup fails if the snapshot
// cannot be loaded or is misaligned; there is no degraded serving mode.
func NewApplicationComponents(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, log *slog.Logger) (*ApplicationComponents, error) {
	// Repositories
	bookRepo := repository.NewBookRepository(pool)
	ratingRepo := repository.NewRatingRepository(pool)
	factorRepo := repository.NewFactorRepository(pool)

	// Optional neighbor index
	var finder domain.NeighborFinder
	if cfg.UseANNIndex {
		finder = repository.NewPgvectorNeighborFinder(pool)
		log.Info("ann_index_enabled")
	}

	// External sentence encoder for free-text similarity queries
	embedderHTTP := httpclient.NewPooledClient(time.Duration(cfg.Embedder.TimeoutSeconds) * time.Second)
	embedder := encoder.NewSentenceEmbedder(cfg.Embedder.URL, cfg.Embedder.Model, embedderHTTP)

	// Snapshot loading
	loader := usecase.NewSnapshotLoader(
		bookRepo, ratingRepo, bookRepo, factorRepo,
		func(params *domain.FactorModelParams) domain.RatingOracle {
			return factor.NewModel(params)
		},
		log,
	)
	loader.RatingsFrom = domain.RatingScale{
		Min: cfg.Reco.RatingsScaleMin,
		Max: cfg.Reco.RatingsScaleMax,
	}
	snap, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("initial snapshot: %w", err)
	}
	snapshots := usecase.NewSnapshotHolder(snap)

	// Usecases
	hybridUsecase := usecase.NewHybridRecommendUsecase(
		snapshots, finder, log,
		usecase.WithResultCache(cfg.Cache.Size, time.Duration(cfg.Cache.TTLMinutes)*time.Minute),
	)
	collaborativeUsecase := usecase.NewCollaborativeRankUsecase(snapshots, log)
	similarUsecase := usecase.NewSimilarItemsUsecase(snapshots, finder, embedder, log)

	// Worker
	refresher := worker.NewRefresher(
		loader, snapshots, hybridUsecase,
		time.Duration(cfg.RefreshIntervalMinutes)*time.Minute, log,
	)

	// HTTP
	handler := recohttp.NewHandler(hybridUsecase, collaborativeUsecase, similarUsecase, cfg.Reco)

	return &ApplicationComponents{
		HybridUsecase:        hybridUsecase,
		CollaborativeUsecase: collaborativeUsecase,
		SimilarUsecase:       similarUsecase,
		Snapshots:            snapshots,
		Loader:               loader,
		Refresher:            refresher,
		Handler:              handler,
	}, nil
}
