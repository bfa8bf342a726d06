package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// RecoConfig carries the default scoring parameters. Requests may override
// any of them.
type RecoConfig struct {
	Alpha       float64
	TopK        int
	ExpansionK  int
	MMRLambda   float64
	MMRPoolSize int

	// RatingsScaleMin/Max describe the scale the ratings table uses when it
	// differs from the trained model's scale; zero values disable rescaling.
	RatingsScaleMin float64
	RatingsScaleMax float64
}

type CacheConfig struct {
	Size       int
	TTLMinutes int
}

// EmbedderConfig points at the external sentence-encoder service used for
// free-text queries.
type EmbedderConfig struct {
	URL            string
	Model          string
	TimeoutSeconds int
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	MaxConns int
	MinConns int
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type Config struct {
	Env  string
	Port string
	DB   DBConfig

	Reco     RecoConfig
	Cache    CacheConfig
	Embedder EmbedderConfig

	// UseANNIndex routes neighbor expansion through the pgvector index;
	// when false the rankers brute-force cosine over the in-memory store.
	UseANNIndex bool

	RefreshIntervalMinutes int
}

func Load() *Config {
	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "9020"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "reco-db"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "reco_user"),
			Password: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "reco_password"),
			Name:     getEnv("DB_NAME", "reco_db"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 10),
			MinConns: getEnvInt("DB_MIN_CONNS", 2),
		},
		Reco: RecoConfig{
			Alpha:       getEnvFloat("RECO_ALPHA", 0.5),
			TopK:        getEnvInt("RECO_TOP_K", 10),
			ExpansionK:  getEnvInt("RECO_EXPANSION_K", 10),
			MMRLambda:   getEnvFloat("RECO_MMR_LAMBDA", 0.7),
			MMRPoolSize: getEnvInt("RECO_MMR_POOL_SIZE", 100),

			RatingsScaleMin: getEnvFloat("RECO_RATINGS_SCALE_MIN", 0),
			RatingsScaleMax: getEnvFloat("RECO_RATINGS_SCALE_MAX", 0),
		},
		Cache: CacheConfig{
			Size:       getEnvInt("RECO_CACHE_SIZE", 512),
			TTLMinutes: getEnvInt("RECO_CACHE_TTL_MINUTES", 15),
		},
		Embedder: EmbedderConfig{
			URL:            getEnvWithAlt("EMBEDDER_URL", "EMBEDDER_EXTERNAL_URL", "http://sentence-encoder:11434"),
			Model:          getEnv("EMBEDDER_MODEL", "all-minilm"),
			TimeoutSeconds: getEnvInt("EMBEDDER_TIMEOUT_SECONDS", 30),
		},
		UseANNIndex:            getEnvBool("RECO_USE_ANN_INDEX", true),
		RefreshIntervalMinutes: getEnvInt("RECO_REFRESH_INTERVAL_MINUTES", 30),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	// 1. Try direct environment variable
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}

	// 2. Try reading from file specified by fileEnvKey
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	return fallback
}

func getEnvWithAlt(key, altKey, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	if value, ok := os.LookupEnv(altKey); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
