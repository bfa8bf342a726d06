package domain

import "context"

// TextEmbedder generates an embedding for free text that is not already in
// the catalog. One implementation exists per embedding family (word2vec,
// sentence-transformer, ...), selected at construction time.
type TextEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Version() string
}
