package usecase

import (
	"sync/atomic"

	"reco-orchestrator/internal/domain"
)

// Snapshot bundles the read-only resources a recommendation request needs:
// the item catalog, the embedding store aligned to it, the ratings table
// and the trained rating oracle. A snapshot is immutable after
// construction, so concurrent requests share it without locking.
type Snapshot struct {
	Catalog *domain.ItemCatalog
	Store   *domain.EmbeddingStore
	Ratings []domain.Rating
	Oracle  domain.RatingOracle
}

// SnapshotSource yields the current dataset snapshot.
type SnapshotSource interface {
	Current() *Snapshot
}

// SnapshotHolder is an atomically swappable SnapshotSource. The refresher
// worker builds a new snapshot off to the side and swaps it in whole; there
// is never a partially updated view.
type SnapshotHolder struct {
	current atomic.Pointer[Snapshot]
}

// NewSnapshotHolder creates a holder seeded with the initial snapshot.
func NewSnapshotHolder(snap *Snapshot) *SnapshotHolder {
	h := &SnapshotHolder{}
	h.current.Store(snap)
	return h
}

// Current returns the active snapshot.
func (h *SnapshotHolder) Current() *Snapshot {
	return h.current.Load()
}

// Swap replaces the active snapshot.
func (h *SnapshotHolder) Swap(snap *Snapshot) {
	h.current.Store(snap)
}
