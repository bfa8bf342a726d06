package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"reco-orchestrator/internal/adapter/encoder"
	"reco-orchestrator/internal/infra"
	"reco-orchestrator/internal/infra/httpclient"
)

var (
	seedFile       string
	seedTruncate   bool
	embedRateLimit float64
)

var seedEmbeddingsCmd = &cobra.Command{
	Use:   "seed-embeddings",
	Short: "Embed a catalog CSV and load it into the embeddings table",
	Long: `Embed a catalog CSV and load it into the book_embeddings table.

The CSV has columns item_id,title[,text]; when the text column is present it
is embedded instead of the title. Rows are numbered in file order, which
becomes the catalog row order the service serves from.

Examples:
  # Seed from a catalog export, replacing existing rows
  recoctl seed-embeddings --file books.csv --truncate

  # Gentle on a shared encoder
  recoctl seed-embeddings --file books.csv --rate 2`,
	RunE: runSeedEmbeddings,
}

func init() {
	seedEmbeddingsCmd.Flags().StringVar(&seedFile, "file", "", "catalog CSV file (required)")
	seedEmbeddingsCmd.Flags().BoolVar(&seedTruncate, "truncate", false, "truncate the embeddings table before loading")
	seedEmbeddingsCmd.Flags().Float64Var(&embedRateLimit, "rate", 5, "max embed requests per second")
	_ = seedEmbeddingsCmd.MarkFlagRequired("file")
}

func runSeedEmbeddings(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	embedderURL := envOr("EMBEDDER_URL", "http://localhost:11434")
	embedderModel := envOr("EMBEDDER_MODEL", "all-minilm")

	items, err := readItemsCSV(seedFile)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("catalog file %s has no rows", seedFile)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, stopping...", slog.String("signal", sig.String()))
		cancel()
	}()

	pool, err := infra.NewPostgresDB(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()

	embedder := encoder.NewSentenceEmbedder(embedderURL, embedderModel,
		httpclient.NewPooledClient(30*time.Second))

	if seedTruncate {
		if _, err := pool.Exec(ctx, "TRUNCATE book_embeddings"); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}
		logger.Info("truncated book_embeddings")
	}

	logger.Info("seeding embeddings",
		slog.Int("items", len(items)),
		slog.String("embedder_url", embedderURL),
		slog.String("model", embedderModel),
		slog.Float64("rate", embedRateLimit))

	// The encoder is a shared service; a token bucket keeps this bulk job
	// from starving interactive traffic.
	limiter := rate.NewLimiter(rate.Limit(embedRateLimit), 1)

	const insertSQL = `
		INSERT INTO book_embeddings (item_id, title, row_no, embedding)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item_id) DO UPDATE
		SET title = EXCLUDED.title, row_no = EXCLUDED.row_no, embedding = EXCLUDED.embedding
	`

	seeded := 0
	for row, item := range items {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}

		vector, err := embedder.Embed(ctx, item[2])
		if err != nil {
			return fmt.Errorf("embed %q (row %d): %w", item[1], row, err)
		}

		if _, err := pool.Exec(ctx, insertSQL, item[0], item[1], row, pgvector.NewVector(vector)); err != nil {
			return fmt.Errorf("insert %q (row %d): %w", item[1], row, err)
		}

		seeded++
		if seeded%100 == 0 {
			logger.Info("progress", slog.Int("seeded", seeded), slog.Int("total", len(items)))
		}
	}

	logger.Info("seeding complete", slog.Int("seeded", seeded))
	return nil
}
