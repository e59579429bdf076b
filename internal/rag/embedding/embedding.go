// Package embedding turns text into fixed-length vectors via a local
// Ollama inference endpoint.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	ragerrors "github.com/HezinTUKE/car-service/internal/common/errors"
	httpclient "github.com/HezinTUKE/car-service/internal/common/http"
	"github.com/HezinTUKE/car-service/internal/common/logger"
	"github.com/HezinTUKE/car-service/internal/common/metrics"
)

// Provider produces a fixed-dimension vector for a piece of text.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

type Config struct {
	BaseURL   string
	Model     string
	Dimension int
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables limiting
}

// OllamaProvider calls the Ollama embeddings endpoint. Failures surface as
// EMBEDDING_UNAVAILABLE; there is no fallback vector, a degraded embedding
// would silently corrupt ranking.
type OllamaProvider struct {
	config  *Config
	client  *httpclient.Client
	limiter *rate.Limiter
	logger  logger.Logger
}

func NewOllamaProvider(config *Config, log logger.Logger) *OllamaProvider {
	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}
	return &OllamaProvider{
		config:  config,
		client:  httpclient.NewClient(config.Timeout),
		limiter: limiter,
		logger:  log.WithFields(map[string]interface{}{"component": "embedding"}),
	}
}

func (p *OllamaProvider) Dimension() int {
	return p.config.Dimension
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (p *OllamaProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	normalized := strings.TrimSpace(text)
	if normalized == "" {
		return nil, ragerrors.NewEmbeddingUnavailableError(errors.New("empty text"))
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, ragerrors.NewEmbeddingTimeoutError()
		}
	}

	body, _ := json.Marshal(embedRequest{Model: p.config.Model, Prompt: normalized})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/api/embeddings", bytes.NewBuffer(body))
	if err != nil {
		return nil, ragerrors.NewEmbeddingUnavailableError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.client.Do(req)
	metrics.ExternalCallDuration.WithLabelValues("embedding").Observe(time.Since(start).Seconds())
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
			return nil, ragerrors.NewEmbeddingTimeoutError()
		}
		return nil, ragerrors.NewEmbeddingUnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ragerrors.NewEmbeddingUnavailableError(fmt.Errorf("status %d", resp.StatusCode))
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, ragerrors.NewEmbeddingUnavailableError(fmt.Errorf("decode response: %w", err))
	}

	if p.config.Dimension > 0 && len(out.Embedding) != p.config.Dimension {
		p.logger.Error("embedding dimension mismatch", map[string]interface{}{
			"want": p.config.Dimension,
			"got":  len(out.Embedding),
		})
		return nil, ragerrors.NewEmbeddingDimensionError(p.config.Dimension, len(out.Embedding))
	}

	return out.Embedding, nil
}
