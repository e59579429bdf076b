// Package executor answers questions end to end: interpret, build, search,
// threshold. It is the only package that decides what the caller finally
// sees.
package executor

import (
	"context"

	"github.com/HezinTUKE/car-service/internal/common/logger"
	"github.com/HezinTUKE/car-service/internal/common/metrics"
	"github.com/HezinTUKE/car-service/internal/models"
	"github.com/HezinTUKE/car-service/internal/rag/index"
	"github.com/HezinTUKE/car-service/internal/rag/interpreter"
	"github.com/HezinTUKE/car-service/internal/rag/query"
)

// NoRelevantServiceContent is the content of the synthetic fallback result.
const NoRelevantServiceContent = "No relevant service found."

// Result is one answered item. ServiceID is nil only on the synthetic
// fallback result, which serializes it as JSON null.
type Result struct {
	ServiceID *string `json:"serviceId"`
	Content   string  `json:"content"`
	Score     float64 `json:"score"`
}

// QueryBuilder composes the structured query for one question.
type QueryBuilder interface {
	Build(ctx context.Context, question string, intent *interpreter.QuestionIntent, userPoint *models.UserPoint) (*query.StructuredQuery, error)
}

// IntentCache memoizes interpreted intents. Nil-safe via NoOpCache.
type IntentCache interface {
	Get(ctx context.Context, question string) *interpreter.QuestionIntent
	Put(ctx context.Context, question string, intent *interpreter.QuestionIntent)
}

// NoOpCache satisfies IntentCache without storing anything.
type NoOpCache struct{}

func (NoOpCache) Get(context.Context, string) *interpreter.QuestionIntent  { return nil }
func (NoOpCache) Put(context.Context, string, *interpreter.QuestionIntent) {}

type Executor struct {
	interpreter interpreter.Interpreter
	builder     QueryBuilder
	searcher    index.Searcher
	cache       IntentCache
	threshold   float64
	logger      logger.Logger
}

func New(interp interpreter.Interpreter, builder QueryBuilder, searcher index.Searcher, cache IntentCache, threshold float64, log logger.Logger) *Executor {
	if cache == nil {
		cache = NoOpCache{}
	}
	return &Executor{
		interpreter: interp,
		builder:     builder,
		searcher:    searcher,
		cache:       cache,
		threshold:   threshold,
		logger:      log.WithFields(map[string]interface{}{"component": "executor"}),
	}
}

// Answer resolves a question into at least one result. Interpretation
// failures degrade to an unconstrained intent; embedding and search
// failures are fatal and propagate.
func (e *Executor) Answer(ctx context.Context, question string, userPoint *models.UserPoint) ([]Result, error) {
	intent := e.resolveIntent(ctx, question)

	q, err := e.builder.Build(ctx, question, intent, userPoint)
	if err != nil {
		metrics.QuestionsAnswered.WithLabelValues("error").Inc()
		return nil, err
	}

	hits, err := e.searcher.Search(ctx, q)
	if err != nil {
		metrics.QuestionsAnswered.WithLabelValues("error").Inc()
		return nil, err
	}

	results := e.applyThreshold(hits)
	if len(results) == 0 {
		metrics.QuestionsAnswered.WithLabelValues("empty").Inc()
		return []Result{{ServiceID: nil, Content: NoRelevantServiceContent, Score: 0}}, nil
	}

	metrics.QuestionsAnswered.WithLabelValues("answered").Inc()
	return results, nil
}

func (e *Executor) resolveIntent(ctx context.Context, question string) *interpreter.QuestionIntent {
	if cached := e.cache.Get(ctx, question); cached != nil {
		return cached
	}

	intent, err := e.interpreter.Interpret(ctx, question)
	if err != nil {
		metrics.InterpretationFallbacks.Inc()
		e.logger.Warn("interpretation failed, answering unconstrained", map[string]interface{}{
			"error": err.Error(),
		})
		return &interpreter.QuestionIntent{}
	}

	e.cache.Put(ctx, question, intent)
	return intent
}

// applyThreshold drops hits scored below the cutoff, keeping the engine's
// order. A hit with no score at all is kept: pure sort queries omit scores
// and those hits already passed the engine's filters.
func (e *Executor) applyThreshold(hits []index.Hit) []Result {
	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		if hit.Score != nil && *hit.Score < e.threshold {
			metrics.ResultsBelowThreshold.Inc()
			continue
		}

		score := 0.0
		if hit.Score != nil {
			score = *hit.Score
		}
		id := hit.ID
		results = append(results, Result{
			ServiceID: &id,
			Content:   hit.Source.Content,
			Score:     score,
		})
	}
	return results
}
