// internal/rag/query/builder.go
package query

import (
	"context"

	"github.com/HezinTUKE/car-service/internal/models"
	"github.com/HezinTUKE/car-service/internal/rag/embedding"
	"github.com/HezinTUKE/car-service/internal/rag/interpreter"
)

// Builder composes a StructuredQuery from a question, its interpreted
// intent and the asking user's location.
type Builder struct {
	embedder  embedding.Provider
	neighbors int
}

func NewBuilder(embedder embedding.Provider, neighbors int) *Builder {
	return &Builder{embedder: embedder, neighbors: neighbors}
}

// Build embeds the question and attaches every filter and sort the intent
// justifies. An embedding failure is fatal to the build and propagates.
func (b *Builder) Build(ctx context.Context, question string, intent *interpreter.QuestionIntent, userPoint *models.UserPoint) (*StructuredQuery, error) {
	vector, err := b.embedder.Embed(ctx, question)
	if err != nil {
		return nil, err
	}

	if intent == nil {
		intent = &interpreter.QuestionIntent{}
	}

	q := &StructuredQuery{
		Knn: KnnClause{Vector: vector, K: b.neighbors},
	}

	wantsDistance := intent.Func != nil && *intent.Func == models.QueryFuncMaxDistance

	if intent.MaxDistance != nil && wantsDistance && userPoint != nil {
		q.Geo = &GeoDistanceFilter{
			DistanceKm: *intent.MaxDistance,
			Point:      *userPoint,
		}
	}

	if intent.Country != nil {
		q.Terms = append(q.Terms, TermFilter{Field: "country", Value: string(*intent.Country)})
	}

	if intent.City != nil {
		q.Terms = append(q.Terms, TermFilter{Field: "city", Value: *intent.City})
	}

	if intent.OfferType != nil || intent.MaxPrice != nil {
		nested := &NestedOfferFilter{MaxPrice: intent.MaxPrice}
		if intent.OfferType != nil {
			nested.OfferType = *intent.OfferType
		}
		q.Nested = nested
	}

	if intent.Func != nil && *intent.Func == models.QueryFuncCheapest {
		sort := MinOfferPriceSort{}
		if intent.OfferType != nil {
			sort.OfferType = *intent.OfferType
		}
		q.Sorts = append(q.Sorts, sort)
	}

	if wantsDistance && userPoint != nil {
		q.Sorts = append(q.Sorts, GeoDistanceSort{Point: *userPoint})
	}

	return q, nil
}
