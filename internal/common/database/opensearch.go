// internal/common/database/opensearch.go
package database

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/HezinTUKE/car-service/internal/common/config"

	"github.com/elastic/go-elasticsearch/v8"
)

// OpenSearchClient wraps the search engine client. The engine exposes the
// Elasticsearch-compatible HTTP API, so the stock ES client is used.
type OpenSearchClient struct {
	Client *elasticsearch.Client
}

// NewOpenSearch creates a new search engine client
func NewOpenSearch(cfg config.OpenSearchConfig) (*OpenSearchClient, error) {
	esCfg := elasticsearch.Config{
		Addresses: cfg.Addresses,
	}

	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create opensearch client: %w", err)
	}

	return &OpenSearchClient{Client: es}, nil
}

// NewOpenSearchWithTransport builds a client on a caller-supplied transport.
// Tests use this to run against a fake engine.
func NewOpenSearchWithTransport(transport http.RoundTripper) (*OpenSearchClient, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://opensearch.test:9200"},
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create opensearch client: %w", err)
	}
	return &OpenSearchClient{Client: es}, nil
}

// Ping tests the search engine connection
func (c *OpenSearchClient) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := c.Client.Ping(
		c.Client.Ping.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("opensearch ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("opensearch ping error: %s", res.Status())
	}

	return nil
}

// Info returns cluster information
func (c *OpenSearchClient) Info(ctx context.Context) error {
	res, err := c.Client.Info(
		c.Client.Info.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("opensearch info error: %s", res.Status())
	}

	return nil
}
