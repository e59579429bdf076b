// Package index owns the search index schema and the thin operations the
// engine exposes: lifecycle, upsert, get, query, wipe. Callers decide
// retry policy; the client only reports SEARCH_BACKEND_ERROR diagnostics.
package index

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	ragerrors "github.com/HezinTUKE/car-service/internal/common/errors"
	"github.com/HezinTUKE/car-service/internal/common/logger"
	"github.com/HezinTUKE/car-service/internal/common/metrics"
	"github.com/HezinTUKE/car-service/internal/rag/query"
)

// Searcher is the read-side surface the query executor depends on.
type Searcher interface {
	Search(ctx context.Context, q *query.StructuredQuery) ([]Hit, error)
}

// Upserter is the write-side surface the document synchronizer depends on.
type Upserter interface {
	Upsert(ctx context.Context, id string, doc *SearchDocument) error
}

type Client struct {
	es     *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewClient(es *elasticsearch.Client, indexName string, log logger.Logger) *Client {
	return &Client{
		es:     es,
		index:  indexName,
		logger: log.WithFields(map[string]interface{}{"component": "index", "index": indexName}),
	}
}

// CreateIndex creates the index with the current mapping. Creating an index
// that already exists is an engine error and surfaces as one.
func (c *Client) CreateIndex(ctx context.Context) error {
	res, err := c.es.Indices.Create(
		c.index,
		c.es.Indices.Create.WithBody(strings.NewReader(mappingV1)),
		c.es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return c.backendError(ctx, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return ragerrors.NewSearchBackendError(res.String())
	}

	c.logger.Info("index created", map[string]interface{}{"mappingVersion": MappingVersion})
	return nil
}

func (c *Client) DeleteIndex(ctx context.Context) error {
	res, err := c.es.Indices.Delete(
		[]string{c.index},
		c.es.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return c.backendError(ctx, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return ragerrors.NewIndexNotFoundError(c.index)
	}
	if res.IsError() {
		return ragerrors.NewSearchBackendError(res.String())
	}

	c.logger.Info("index deleted", nil)
	return nil
}

// Upsert indexes doc under id, replacing any prior document with that id.
func (c *Client) Upsert(ctx context.Context, id string, doc *SearchDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return ragerrors.NewSearchBackendError("encode document: " + err.Error())
	}

	req := esapi.IndexRequest{
		Index:      c.index,
		DocumentID: id,
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return c.backendError(ctx, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return ragerrors.NewSearchBackendError(res.String())
	}
	return nil
}

// GetByID fetches one document; a missing id returns (nil, nil).
func (c *Client) GetByID(ctx context.Context, id string) (*SearchDocument, error) {
	req := esapi.GetRequest{Index: c.index, DocumentID: id}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return nil, c.backendError(ctx, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if res.IsError() {
		return nil, ragerrors.NewSearchBackendError(res.String())
	}

	var envelope struct {
		Source SearchDocument `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, ragerrors.NewSearchBackendError("decode document: " + err.Error())
	}
	return &envelope.Source, nil
}

// Search executes a structured query and returns hits in engine order.
func (c *Client) Search(ctx context.Context, q *query.StructuredQuery) ([]Hit, error) {
	body, err := json.Marshal(q.Serialize())
	if err != nil {
		return nil, ragerrors.NewSearchBackendError("encode query: " + err.Error())
	}

	req := esapi.SearchRequest{
		Index: []string{c.index},
		Body:  bytes.NewReader(body),
	}

	start := time.Now()
	res, err := req.Do(ctx, c.es)
	metrics.ExternalCallDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, c.backendError(ctx, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ragerrors.NewIndexNotFoundError(c.index)
	}
	if res.IsError() {
		return nil, ragerrors.NewSearchBackendError(res.String())
	}

	var envelope struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Score  *float64       `json:"_score"`
				Source SearchDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, ragerrors.NewSearchBackendError("decode response: " + err.Error())
	}

	hits := make([]Hit, 0, len(envelope.Hits.Hits))
	for _, h := range envelope.Hits.Hits {
		hits = append(hits, Hit{ID: h.ID, Score: h.Score, Source: h.Source})
	}
	return hits, nil
}

// DeleteAllDocuments wipes every document while keeping the index mapping.
func (c *Client) DeleteAllDocuments(ctx context.Context) error {
	body := `{"query": {"match_all": {}}}`

	req := esapi.DeleteByQueryRequest{
		Index: []string{c.index},
		Body:  strings.NewReader(body),
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return c.backendError(ctx, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return ragerrors.NewIndexNotFoundError(c.index)
	}
	if res.IsError() {
		return ragerrors.NewSearchBackendError(res.String())
	}

	c.logger.Info("all documents deleted", nil)
	return nil
}

func (c *Client) backendError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return ragerrors.NewSearchTimeoutError()
	}
	return ragerrors.NewSearchBackendError(err.Error())
}
