package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"reco-orchestrator/internal/infra/httpclient"
)

var (
	version = "dev"

	// Global flags
	serverURL string
	verbose   bool

	// recommend flags
	alpha       float64
	topK        int
	diversify   bool
	mmrLambda   float64
	mmrPoolSize int

	// similar flags
	similarK int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "recoctl",
	Short:   "Client and maintenance tool for the recommendation service",
	Version: version,
}

var recommendCmd = &cobra.Command{
	Use:   "recommend <user-id>",
	Short: "Fetch hybrid recommendations for a user",
	Long: `Fetch hybrid recommendations for a user.

Examples:
  # Top 10 with server defaults
  recoctl recommend u42

  # Content-heavy blend with MMR diversification
  recoctl recommend u42 --alpha 0.2 --k 20 --diversify`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

var similarCmd = &cobra.Command{
	Use:   "similar <title or text>",
	Short: "Fetch content-similar items for a title or free-text query",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("RECO_SERVER_URL", "http://localhost:9020"), "recommendation service base URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	recommendCmd.Flags().Float64Var(&alpha, "alpha", -1, "collaborative weight in [0,1] (-1 uses the server default)")
	recommendCmd.Flags().IntVar(&topK, "k", 0, "number of results (0 uses the server default)")
	recommendCmd.Flags().BoolVar(&diversify, "diversify", false, "re-rank with MMR for diversity")
	recommendCmd.Flags().Float64Var(&mmrLambda, "mmr-lambda", -1, "MMR relevance/diversity trade-off (-1 uses the server default)")
	recommendCmd.Flags().IntVar(&mmrPoolSize, "mmr-pool-size", 0, "MMR candidate pool size (0 uses the server default)")

	similarCmd.Flags().IntVar(&similarK, "k", 10, "number of results")

	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(seedEmbeddingsCmd)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

type scoredItem struct {
	ItemID string  `json:"item_id"`
	Title  string  `json:"title"`
	Score  float64 `json:"score"`
}

func runRecommend(cmd *cobra.Command, args []string) error {
	payload := map[string]any{"user_id": args[0]}
	if alpha >= 0 {
		payload["alpha"] = alpha
	}
	if topK > 0 {
		payload["k"] = topK
	}
	if diversify {
		payload["diversify"] = true
		if mmrLambda >= 0 {
			payload["mmr_lambda"] = mmrLambda
		}
		if mmrPoolSize > 0 {
			payload["mmr_pool_size"] = mmrPoolSize
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	client := httpclient.NewPooledClient(30 * time.Second)
	resp, err := client.Post(serverURL+"/v1/recommendations/hybrid", "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}

	var result struct {
		RequestID    string       `json:"request_id"`
		Items        []scoredItem `json:"items"`
		SkippedSeeds int          `json:"skipped_seeds"`
		Fallback     bool         `json:"fallback"`
		Reason       string       `json:"reason"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if result.Fallback {
		fmt.Printf("No personalized recommendations (%s). Fall back to a popularity list.\n", result.Reason)
		return nil
	}

	printItems(result.Items)
	if result.SkippedSeeds > 0 {
		fmt.Printf("(%d seed items were missing from the catalog)\n", result.SkippedSeeds)
	}
	return nil
}

func runSimilar(cmd *cobra.Command, args []string) error {
	client := httpclient.NewPooledClient(30 * time.Second)

	req, err := http.NewRequest(http.MethodGet, serverURL+"/v1/items/similar", nil)
	if err != nil {
		return err
	}
	q := req.URL.Query()
	q.Set("q", args[0])
	q.Set("k", fmt.Sprintf("%d", similarK))
	req.URL.RawQuery = q.Encode()

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("no item matches %q and the service has no text encoder configured", args[0])
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}

	var result struct {
		Items []scoredItem `json:"items"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	printItems(result.Items)
	return nil
}

func printItems(items []scoredItem) {
	if len(items) == 0 {
		fmt.Println("No results.")
		return
	}
	for i, item := range items {
		fmt.Printf("%2d. %-50s %8.4f  (%s)\n", i+1, item.Title, item.Score, item.ItemID)
	}
}

// readItemsCSV parses an item_id,title,text CSV file. The optional third
// column is the text to embed; when absent the title is embedded.
func readItemsCSV(path string) ([][3]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var items [][3]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("row %d: expected at least item_id,title", len(items)+1)
		}
		text := record[1]
		if len(record) > 2 && record[2] != "" {
			text = record[2]
		}
		items = append(items, [3]string{record[0], record[1], text})
	}
	return items, nil
}
