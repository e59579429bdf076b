package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ragerrors "github.com/HezinTUKE/car-service/internal/common/errors"
	"github.com/HezinTUKE/car-service/internal/common/logger"
)

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewTestLogger(t)
}

func newTestProvider(t *testing.T, baseURL string, dimension int) *OllamaProvider {
	return NewOllamaProvider(&Config{
		BaseURL:   baseURL,
		Model:     "nomic-embed-text",
		Dimension: dimension,
		Timeout:   5 * time.Second,
	}, createTestLogger(t))
}

func TestEmbed_Success(t *testing.T) {
	vector := make([]float32, 768)
	for i := range vector {
		vector[i] = float32(i) / 768
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/embeddings", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req["model"])
		assert.Equal(t, "cheapest oil change", req["prompt"])

		json.NewEncoder(w).Encode(map[string]interface{}{"embedding": vector})
	}))
	defer server.Close()

	got, err := newTestProvider(t, server.URL, 768).Embed(context.Background(), "cheapest oil change")
	require.NoError(t, err)
	assert.Len(t, got, 768)
}

func TestEmbed_TrimsWhitespaceBeforeSending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "question", req["prompt"])
		json.NewEncoder(w).Encode(map[string]interface{}{"embedding": []float32{1, 2}})
	}))
	defer server.Close()

	_, err := newTestProvider(t, server.URL, 2).Embed(context.Background(), "  question \n")
	require.NoError(t, err)
}

func TestEmbed_EmptyTextFails(t *testing.T) {
	_, err := newTestProvider(t, "http://unused", 768).Embed(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ragerrors.ErrEmbeddingUnavailable))
}

func TestEmbed_ServerErrorFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestProvider(t, server.URL, 768).Embed(context.Background(), "question")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ragerrors.ErrEmbeddingUnavailable))
}

func TestEmbed_DimensionMismatchFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"embedding": []float32{1, 2, 3}})
	}))
	defer server.Close()

	_, err := newTestProvider(t, server.URL, 768).Embed(context.Background(), "question")
	require.Error(t, err)

	var stdErr *ragerrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, ragerrors.ErrCodeEmbeddingDimension, stdErr.Code)
}

func TestEmbed_UnreachableServerFails(t *testing.T) {
	_, err := newTestProvider(t, "http://127.0.0.1:1", 768).Embed(context.Background(), "question")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ragerrors.ErrEmbeddingUnavailable))
}
