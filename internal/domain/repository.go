package domain

import "context"

// CatalogRepository loads the item catalog in a stable row order.
type CatalogRepository interface {
	ListItems(ctx context.Context) ([]Item, error)
}

// RatingRepository loads the read-only ratings table.
type RatingRepository interface {
	// ListRatings returns all explicit ratings (implicit zero values are
	// filtered at the source).
	ListRatings(ctx context.Context) ([]Rating, error)
}

// EmbeddingRepository loads item embeddings in the catalog's row order.
type EmbeddingRepository interface {
	// ListEmbeddings returns parallel slices of item IDs and embedding
	// rows, ordered identically to CatalogRepository.ListItems.
	ListEmbeddings(ctx context.Context) ([]string, [][]float32, error)
}

// FactorRepository loads the trained latent-factor model parameters.
type FactorRepository interface {
	LoadModel(ctx context.Context) (*FactorModelParams, error)
}

// FactorModelParams holds the raw parameters of a trained biased
// matrix-factorization model.
type FactorModelParams struct {
	GlobalMean  float64
	MinRating   float64
	MaxRating   float64
	UserBias    map[string]float64
	ItemBias    map[string]float64
	UserFactors map[string][]float64
	ItemFactors map[string][]float64
}
