package encoder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"reco-orchestrator/internal/domain"
)

// SentenceEmbedder embeds free-text queries through an external
// sentence-encoder service. It is the strategy selected for
// sentence-transformer style models; catalog items never pass through it,
// only queries that are absent from the catalog.
type SentenceEmbedder struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

// NewSentenceEmbedder creates an embedder client. A nil http client gets a
// default with a 30s timeout.
func NewSentenceEmbedder(baseURL, model string, client *http.Client) *SentenceEmbedder {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &SentenceEmbedder{
		BaseURL: baseURL,
		Model:   model,
		Client:  client,
	}
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func (e *SentenceEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()

	jsonData, err := json.Marshal(embedRequest{
		Model: e.Model,
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/embed", e.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.Client.Do(req)
	if err != nil {
		slog.Error("embed_request_failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("failed to call embedder: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedder returned status: %d", resp.StatusCode)
	}

	var respBody embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(respBody.Embeddings) == 0 {
		return nil, fmt.Errorf("embedder returned no embedding")
	}

	return respBody.Embeddings[0], nil
}

func (e *SentenceEmbedder) Version() string {
	return e.Model
}

var _ domain.TextEmbedder = (*SentenceEmbedder)(nil)
