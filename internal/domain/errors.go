package domain

import "errors"

var (
	// ErrItemNotFound is returned when a seed title cannot be resolved to
	// any catalog entry and no fallback embedder is available.
	ErrItemNotFound = errors.New("item not found in catalog")

	// ErrNoSeeds is returned when the collaborative stage produces no seed
	// items for a user. Callers branch on it to select a cold-start
	// fallback; it is never an internal failure.
	ErrNoSeeds = errors.New("no collaborative seeds available")

	// ErrMisalignedStore is returned when an embedding store and the data
	// used to build it disagree on shape. The mapping must be rebuilt
	// whenever the item set changes; a stale mapping would silently produce
	// wrong neighbors, so construction fails loudly instead.
	ErrMisalignedStore = errors.New("embedding store misaligned with item set")
)
