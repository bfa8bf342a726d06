package worker

import (
	"context"
	"log/slog"
	"time"

	"reco-orchestrator/internal/usecase"
)

const (
	reloadTimeout  = 60 * time.Second
	initialBackoff = 1 * time.Second
	maxBackoff     = 5 * time.Minute
)

// CacheInvalidator is the part of the usecase the refresher needs to purge
// stale results after a snapshot swap.
type CacheInvalidator interface {
	InvalidateCache()
}

// Refresher periodically rebuilds the dataset snapshot and swaps it in
// behind the serving path. A swap always purges the result cache, so cached
// rankings never outlive the data they were computed from. Reload failures
// keep the previous snapshot serving and back off exponentially.
type Refresher struct {
	loader      *usecase.SnapshotLoader
	holder      *usecase.SnapshotHolder
	invalidator CacheInvalidator
	interval    time.Duration
	logger      *slog.Logger
	stopChan    chan struct{}
	backoff     time.Duration
}

func NewRefresher(
	loader *usecase.SnapshotLoader,
	holder *usecase.SnapshotHolder,
	invalidator CacheInvalidator,
	interval time.Duration,
	logger *slog.Logger,
) *Refresher {
	return &Refresher{
		loader:      loader,
		holder:      holder,
		invalidator: invalidator,
		interval:    interval,
		logger:      logger,
		stopChan:    make(chan struct{}),
	}
}

func (r *Refresher) Start() {
	r.logger.Info("Starting snapshot refresher", "interval", r.interval)
	go r.run()
}

func (r *Refresher) Stop() {
	r.logger.Info("Stopping snapshot refresher")
	close(r.stopChan)
}

func (r *Refresher) run() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case <-ticker.C:
			r.refreshOnce()
			if r.backoff > 0 {
				ticker.Reset(r.backoff)
			} else {
				ticker.Reset(r.interval)
			}
		}
	}
}

func (r *Refresher) refreshOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	snap, err := r.loader.Load(ctx)
	if err != nil {
		r.backoff = r.nextBackoff(r.backoff)
		r.logger.Warn("Snapshot reload failed, keeping previous snapshot",
			"backoff", r.backoff, "error", err)
		return
	}

	r.backoff = 0
	r.holder.Swap(snap)
	r.invalidator.InvalidateCache()
	r.logger.Info("snapshot_swapped",
		slog.Int("items", snap.Catalog.Len()),
		slog.Int("ratings", len(snap.Ratings)))
}

func (r *Refresher) nextBackoff(current time.Duration) time.Duration {
	if current == 0 {
		return initialBackoff
	}
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}
