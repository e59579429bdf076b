// Package server exposes the engine to collaborators over HTTP: one query
// endpoint, a backfill trigger and the index admin operations.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HezinTUKE/car-service/internal/common/logger"
	"github.com/HezinTUKE/car-service/internal/common/observability"
	"github.com/HezinTUKE/car-service/internal/models"
	"github.com/HezinTUKE/car-service/internal/rag/executor"
)

// Answerer is the query side of the engine.
type Answerer interface {
	Answer(ctx context.Context, question string, userPoint *models.UserPoint) ([]executor.Result, error)
}

// Synchronizer writes service documents into the search index: one service
// at a time or a full backfill from the relational store.
type Synchronizer interface {
	Sync(ctx context.Context, graph *models.ServiceGraph) error
	Backfill(ctx context.Context) (int, error)
}

// IndexAdmin covers the index lifecycle operations.
type IndexAdmin interface {
	CreateIndex(ctx context.Context) error
	DeleteIndex(ctx context.Context) error
	DeleteAllDocuments(ctx context.Context) error
}

type Server struct {
	answerer Answerer
	syncer   Synchronizer
	admin    IndexAdmin
	obs      *observability.Observability
	timeout  time.Duration
	logger   logger.Logger
}

func New(answerer Answerer, syncer Synchronizer, admin IndexAdmin, obs *observability.Observability, timeout time.Duration, log logger.Logger) *Server {
	return &Server{
		answerer: answerer,
		syncer:   syncer,
		admin:    admin,
		obs:      obs,
		timeout:  timeout,
		logger:   log.WithFields(map[string]interface{}{"component": "server"}),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/rag/query", s.handleQuery)
	mux.HandleFunc("/rag/sync", s.handleSync)
	mux.HandleFunc("/admin/index", s.handleIndex)
	mux.HandleFunc("/admin/index/documents", s.handleDocuments)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

type queryRequest struct {
	Question  string            `json:"question"`
	UserPoint *models.UserPoint `json:"user_point,omitempty"`
}

type queryResponse struct {
	Results []executor.Result `json:"results"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	requestID := uuid.NewString()
	log := s.logger.WithFields(map[string]interface{}{"requestId": requestID})
	w.Header().Set("X-Request-ID", requestID)

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	start := time.Now()
	results, err := s.answerer.Answer(ctx, req.Question, req.UserPoint)
	if err != nil {
		s.record(ctx, time.Since(start), "error")
		log.Error("query failed", map[string]interface{}{"error": err.Error()})
		http.Error(w, "query failed", http.StatusBadGateway)
		return
	}
	s.record(ctx, time.Since(start), "ok")

	log.Debug("question answered", map[string]interface{}{"results": len(results)})
	writeJSON(w, http.StatusOK, queryResponse{Results: results})
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// A body carrying a service graph syncs just that service; an empty
	// body triggers a full backfill from the relational store.
	var graph models.ServiceGraph
	if err := json.NewDecoder(r.Body).Decode(&graph); err == nil && graph.Service.ID != "" {
		if err := s.syncer.Sync(r.Context(), &graph); err != nil {
			s.logger.Error("sync failed", map[string]interface{}{
				"error":     err.Error(),
				"serviceId": graph.Service.ID,
			})
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"result": false, "synced": 0})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"result": true, "synced": 1})
		return
	}

	synced, err := s.syncer.Backfill(r.Context())
	if err != nil {
		s.logger.Error("backfill failed", map[string]interface{}{
			"error":  err.Error(),
			"synced": synced,
		})
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"result": false, "synced": synced})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"result": true, "synced": synced})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.adminResult(w, r, "create index", s.admin.CreateIndex)
	case http.MethodDelete:
		s.adminResult(w, r, "delete index", s.admin.DeleteIndex)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.adminResult(w, r, "delete documents", s.admin.DeleteAllDocuments)
}

// adminResult runs one admin operation and reports {"result": bool}. Admin
// failures never crash the server; the boolean carries the outcome.
func (s *Server) adminResult(w http.ResponseWriter, r *http.Request, op string, fn func(context.Context) error) {
	if err := fn(r.Context()); err != nil {
		s.logger.Error("admin operation failed", map[string]interface{}{
			"operation": op,
			"error":     err.Error(),
		})
		writeJSON(w, http.StatusOK, map[string]bool{"result": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"result": true})
}

func (s *Server) record(ctx context.Context, elapsed time.Duration, status string) {
	if s.obs == nil {
		return
	}
	s.obs.RecordQueryProcessed(ctx, status)
	s.obs.RecordQueryDuration(ctx, elapsed, status)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
