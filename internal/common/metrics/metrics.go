// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuestionsAnswered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rag_questions_answered_total",
			Help: "Total number of questions answered by the query executor",
		},
		[]string{"outcome"},
	)

	ResultsBelowThreshold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rag_results_below_threshold_total",
			Help: "Total number of search hits dropped by the relevance threshold",
		},
	)

	DocumentsSynced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rag_documents_synced_total",
			Help: "Total number of search documents upserted",
		},
		[]string{"status"},
	)

	ExternalCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "rag_external_call_duration_seconds",
			Help: "Duration of embedding, interpretation and search engine calls",
		},
		[]string{"target"},
	)

	InterpretationFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rag_interpretation_fallbacks_total",
			Help: "Answers that proceeded with an unconstrained intent after an interpreter failure",
		},
	)
)
