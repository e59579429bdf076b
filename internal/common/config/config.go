// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Ollama   OllamaConfig   `mapstructure:"ollama"`
	RAG      RAGConfig      `mapstructure:"rag"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type DatabaseConfig struct {
	Postgres   PostgresConfig   `mapstructure:"postgres"`
	OpenSearch OpenSearchConfig `mapstructure:"opensearch"`
	Redis      RedisConfig      `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// OpenSearchConfig configures the search engine connection. The engine
// speaks the Elasticsearch HTTP API, so the stock ES client is used.
type OpenSearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// OllamaConfig configures the local inference endpoints used for
// embeddings and question interpretation.
type OllamaConfig struct {
	BaseURL            string  `mapstructure:"base_url"`
	EmbeddingModel     string  `mapstructure:"embedding_model"`
	GenerationModel    string  `mapstructure:"generation_model"`
	EmbeddingTimeout   int     `mapstructure:"embedding_timeout"`    // milliseconds
	GenerationTimeout  int     `mapstructure:"generation_timeout"`   // milliseconds
	EmbeddingRateLimit float64 `mapstructure:"embedding_rate_limit"` // requests per second
}

// GetEmbeddingTimeout returns the embedding call timeout as a duration
func (o OllamaConfig) GetEmbeddingTimeout() time.Duration {
	return time.Duration(o.EmbeddingTimeout) * time.Millisecond
}

// GetGenerationTimeout returns the generation call timeout as a duration
func (o OllamaConfig) GetGenerationTimeout() time.Duration {
	return time.Duration(o.GenerationTimeout) * time.Millisecond
}

// RAGConfig holds the search-index and ranking policy knobs.
type RAGConfig struct {
	IndexName        string  `mapstructure:"index_name"`
	Dimension        int     `mapstructure:"dimension"`
	NearestNeighbors int     `mapstructure:"nearest_neighbors"`
	ScoreThreshold   float64 `mapstructure:"score_threshold"`
	BackfillPageSize int     `mapstructure:"backfill_page_size"`
	IntentCacheTTL   int     `mapstructure:"intent_cache_ttl"` // seconds
	SearchTimeout    int     `mapstructure:"search_timeout"`   // milliseconds
}

// GetIntentCacheTTL returns the intent cache TTL as a duration
func (r RAGConfig) GetIntentCacheTTL() time.Duration {
	return time.Duration(r.IntentCacheTTL) * time.Second
}

// GetSearchTimeout returns the per-question deadline as a duration
func (r RAGConfig) GetSearchTimeout() time.Duration {
	return time.Duration(r.SearchTimeout) * time.Millisecond
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
