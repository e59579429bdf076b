// Package query composes hybrid search bodies: one k-NN clause plus
// optional structured filters and sorts, serialized for the engine with
// every empty node stripped.
package query

import (
	"fmt"

	"github.com/HezinTUKE/car-service/internal/models"
)

// KnnClause is the mandatory vector-similarity part of every query.
type KnnClause struct {
	Vector []float32
	K      int
}

func (k KnnClause) clause() map[string]interface{} {
	return map[string]interface{}{
		"knn": map[string]interface{}{
			"embedding": map[string]interface{}{
				"vector": k.Vector,
				"k":      k.K,
			},
		},
	}
}

// TermFilter is an exact-match filter on a top-level keyword field.
type TermFilter struct {
	Field string
	Value string
}

func (t TermFilter) clause() map[string]interface{} {
	return map[string]interface{}{
		"term": map[string]interface{}{t.Field: t.Value},
	}
}

// GeoDistanceFilter bounds results to a radius around the user's point.
type GeoDistanceFilter struct {
	DistanceKm float64
	Point      models.UserPoint
}

func (g GeoDistanceFilter) clause() map[string]interface{} {
	return map[string]interface{}{
		"geo_distance": map[string]interface{}{
			"distance": fmt.Sprintf("%gkm", g.DistanceKm),
			"point": map[string]interface{}{
				"lat": g.Point.Latitude,
				"lon": g.Point.Longitude,
			},
		},
	}
}

// NestedOfferFilter matches against elements of the embedded offers array.
// Offer type and price ceiling combine into one compound filter, so a
// question constraining both keeps both constraints.
type NestedOfferFilter struct {
	OfferType models.OfferType
	MaxPrice  *float64
}

func (n NestedOfferFilter) clause() map[string]interface{} {
	inner := []interface{}{}
	if n.OfferType != "" {
		inner = append(inner, map[string]interface{}{
			"term": map[string]interface{}{"offers.offer_type": string(n.OfferType)},
		})
	}
	if n.MaxPrice != nil {
		inner = append(inner, map[string]interface{}{
			"range": map[string]interface{}{
				"offers.base_price": map[string]interface{}{"lte": *n.MaxPrice},
			},
		})
	}
	return map[string]interface{}{
		"nested": map[string]interface{}{
			"path": "offers",
			"query": map[string]interface{}{
				"bool": map[string]interface{}{"filter": inner},
			},
		},
	}
}

// SortSpec is one sort clause of the serialized query.
type SortSpec interface {
	sortClause() map[string]interface{}
}

// MinOfferPriceSort orders by the cheapest matching offer, ascending,
// scoped to the intent's offer type when one was extracted.
type MinOfferPriceSort struct {
	OfferType models.OfferType
}

func (s MinOfferPriceSort) sortClause() map[string]interface{} {
	return map[string]interface{}{
		"offers.base_price": map[string]interface{}{
			"order": "asc",
			"mode":  "min",
			"nested": map[string]interface{}{
				"path": "offers",
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"offers.offer_type": string(s.OfferType)},
				},
			},
		},
	}
}

// GeoDistanceSort orders by arc distance from the user's point, ascending.
type GeoDistanceSort struct {
	Point models.UserPoint
}

func (s GeoDistanceSort) sortClause() map[string]interface{} {
	return map[string]interface{}{
		"_geo_distance": map[string]interface{}{
			"point": map[string]interface{}{
				"lat": s.Point.Latitude,
				"lon": s.Point.Longitude,
			},
			"order":         "asc",
			"unit":          "km",
			"mode":          "min",
			"distance_type": "arc",
		},
	}
}

// StructuredQuery is a hybrid query built fresh per question and discarded
// after execution.
type StructuredQuery struct {
	Knn    KnnClause
	Terms  []TermFilter
	Geo    *GeoDistanceFilter
	Nested *NestedOfferFilter
	Sorts  []SortSpec
}

// Serialize renders the engine's JSON body. Absent clauses are omitted
// entirely; an empty filter object would read as "match nothing" or "match
// everything" depending on clause type, so omission is the only safe
// empty-state representation.
func (q *StructuredQuery) Serialize() map[string]interface{} {
	filters := []interface{}{}
	for _, t := range q.Terms {
		filters = append(filters, t.clause())
	}
	if q.Geo != nil {
		filters = append(filters, q.Geo.clause())
	}
	if q.Nested != nil {
		filters = append(filters, q.Nested.clause())
	}

	sorts := []interface{}{}
	for _, s := range q.Sorts {
		sorts = append(sorts, s.sortClause())
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   []interface{}{q.Knn.clause()},
				"filter": filters,
			},
		},
		"sort": sorts,
	}

	cleaned, _ := Clean(body).(map[string]interface{})
	if cleaned == nil {
		cleaned = map[string]interface{}{}
	}
	return cleaned
}
