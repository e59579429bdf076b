package index

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HezinTUKE/car-service/internal/common/database"
	ragerrors "github.com/HezinTUKE/car-service/internal/common/errors"
	"github.com/HezinTUKE/car-service/internal/common/logger"
	"github.com/HezinTUKE/car-service/internal/models"
	"github.com/HezinTUKE/car-service/internal/rag/query"
)

// fakeTransport answers every request with a canned response and records
// what the client sent.
type fakeTransport struct {
	status   int
	body     string
	lastReq  *http.Request
	lastBody string
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.lastReq = req
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		f.lastBody = string(raw)
	}

	header := http.Header{}
	header.Set("X-Elastic-Product", "Elasticsearch")
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Header:     header,
	}, nil
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewTestLogger(t)
}

func newTestClient(t *testing.T, transport *fakeTransport) *Client {
	osClient, err := database.NewOpenSearchWithTransport(transport)
	require.NoError(t, err)
	return NewClient(osClient.Client, "rag_index", createTestLogger(t))
}

func TestSearch_ParsesHits(t *testing.T) {
	transport := &fakeTransport{
		status: http.StatusOK,
		body: `{
			"hits": {
				"hits": [
					{"_id": "svc-1", "_score": 0.92, "_source": {"content": "Service Name: AutoFix", "city": "Bratislava"}},
					{"_id": "svc-2", "_source": {"content": "Service Name: CarCare"}}
				]
			}
		}`,
	}
	client := newTestClient(t, transport)

	q := &query.StructuredQuery{Knn: query.KnnClause{Vector: []float32{0.1, 0.2}, K: 30}}
	hits, err := client.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "svc-1", hits[0].ID)
	require.NotNil(t, hits[0].Score)
	assert.Equal(t, 0.92, *hits[0].Score)
	assert.Equal(t, "Bratislava", hits[0].Source.City)

	assert.Equal(t, "svc-2", hits[1].ID)
	assert.Nil(t, hits[1].Score)

	// the serialized body carried the knn clause
	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(transport.lastBody), &sent))
	boolQuery := sent["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})
	require.Len(t, must, 1)
	assert.Contains(t, must[0], "knn")
}

func TestSearch_EngineErrorSurfacesAsBackendError(t *testing.T) {
	transport := &fakeTransport{
		status: http.StatusBadRequest,
		body:   `{"error": {"type": "parsing_exception", "reason": "unknown field"}}`,
	}
	client := newTestClient(t, transport)

	q := &query.StructuredQuery{Knn: query.KnnClause{Vector: []float32{0.1}, K: 30}}
	_, err := client.Search(context.Background(), q)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ragerrors.ErrSearchBackend))

	var stdErr *ragerrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Contains(t, stdErr.Details, "parsing_exception")
}

func TestSearch_MissingIndexIsIndexNotFound(t *testing.T) {
	transport := &fakeTransport{
		status: http.StatusNotFound,
		body:   `{"error": {"type": "index_not_found_exception"}}`,
	}
	client := newTestClient(t, transport)

	q := &query.StructuredQuery{Knn: query.KnnClause{Vector: []float32{0.1}, K: 30}}
	_, err := client.Search(context.Background(), q)
	require.Error(t, err)

	var stdErr *ragerrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, ragerrors.ErrCodeIndexNotFound, stdErr.Code)
}

func TestGetByID_ReturnsDocument(t *testing.T) {
	transport := &fakeTransport{
		status: http.StatusOK,
		body: `{
			"_id": "svc-1",
			"found": true,
			"_source": {
				"content": "Service Name: AutoFix",
				"name": "AutoFix",
				"city": "Bratislava",
				"country": "SLOVAKIA",
				"offers": [{"base_price": 49.9, "offer_type": "OIL_CHANGE", "currency": "EUR"}]
			}
		}`,
	}
	client := newTestClient(t, transport)

	doc, err := client.GetByID(context.Background(), "svc-1")
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "AutoFix", doc.Name)
	assert.Equal(t, models.CountrySlovakia, doc.Country)
	require.Len(t, doc.Offers, 1)
	assert.Equal(t, models.OfferTypeOilChange, doc.Offers[0].OfferType)
}

func TestGetByID_MissingDocumentReturnsNil(t *testing.T) {
	transport := &fakeTransport{
		status: http.StatusNotFound,
		body:   `{"found": false}`,
	}
	client := newTestClient(t, transport)

	doc, err := client.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestUpsert_SendsDocumentToServiceID(t *testing.T) {
	transport := &fakeTransport{
		status: http.StatusCreated,
		body:   `{"result": "created"}`,
	}
	client := newTestClient(t, transport)

	doc := &SearchDocument{
		Content: "Service Name: AutoFix",
		Name:    "AutoFix",
		Source:  models.SourcePostgreSQL,
	}
	require.NoError(t, client.Upsert(context.Background(), "svc-1", doc))

	assert.Equal(t, "/rag_index/_doc/svc-1", transport.lastReq.URL.Path)

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(transport.lastBody), &sent))
	assert.Equal(t, "POSTGRESQL", sent["source"])
}

func TestCreateIndex_SendsMapping(t *testing.T) {
	transport := &fakeTransport{
		status: http.StatusOK,
		body:   `{"acknowledged": true}`,
	}
	client := newTestClient(t, transport)

	require.NoError(t, client.CreateIndex(context.Background()))

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(transport.lastBody), &sent))

	settings := sent["settings"].(map[string]interface{})["index"].(map[string]interface{})
	assert.Equal(t, true, settings["knn"])

	props := sent["mappings"].(map[string]interface{})["properties"].(map[string]interface{})
	embedding := props["embedding"].(map[string]interface{})
	assert.Equal(t, "knn_vector", embedding["type"])
	assert.Equal(t, 768.0, embedding["dimension"])

	offers := props["offers"].(map[string]interface{})
	assert.Equal(t, "nested", offers["type"])
}

func TestDeleteAllDocuments_UsesMatchAll(t *testing.T) {
	transport := &fakeTransport{
		status: http.StatusOK,
		body:   `{"deleted": 42}`,
	}
	client := newTestClient(t, transport)

	require.NoError(t, client.DeleteAllDocuments(context.Background()))

	assert.Contains(t, transport.lastReq.URL.Path, "_delete_by_query")
	assert.Contains(t, transport.lastBody, "match_all")
}
