package domain

// RatingOracle wraps a trained latent-factor model and predicts a user's
// affinity for an item. Implementations must handle unknown users and items
// by returning a baseline estimate (e.g. the global mean) rather than
// failing; cold-start handling is the oracle's responsibility, not the
// ranker's.
type RatingOracle interface {
	Predict(userID, itemID string) float64
}
