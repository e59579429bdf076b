package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HezinTUKE/car-service/internal/models"
	"github.com/HezinTUKE/car-service/internal/rag/interpreter"
)

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

func (f *fakeEmbedder) Dimension() int { return len(f.vector) }

func newTestBuilder() *Builder {
	return NewBuilder(&fakeEmbedder{vector: []float32{0.1, 0.2, 0.3}}, 30)
}

func strPtr(s string) *string                       { return &s }
func floatPtr(f float64) *float64                   { return &f }
func funcPtr(f models.QueryFunc) *models.QueryFunc  { return &f }
func offerPtr(t models.OfferType) *models.OfferType { return &t }
func countryPtr(c models.Country) *models.Country   { return &c }

func TestBuild_EmptyIntentProducesOnlyKnnClause(t *testing.T) {
	b := newTestBuilder()

	q, err := b.Build(context.Background(), "any car service", &interpreter.QuestionIntent{}, nil)
	require.NoError(t, err)

	body := q.Serialize()
	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})

	must := boolQuery["must"].([]interface{})
	assert.Len(t, must, 1)
	assert.Contains(t, must[0], "knn")

	assert.NotContains(t, boolQuery, "filter")
	assert.NotContains(t, body, "sort")
}

func TestBuild_NilIntentBehavesLikeEmpty(t *testing.T) {
	b := newTestBuilder()

	q, err := b.Build(context.Background(), "any car service", nil, nil)
	require.NoError(t, err)

	boolQuery := q.Serialize()["query"].(map[string]interface{})["bool"].(map[string]interface{})
	assert.NotContains(t, boolQuery, "filter")
}

func TestBuild_CountryProducesSingleTermFilter(t *testing.T) {
	b := newTestBuilder()
	intent := &interpreter.QuestionIntent{Country: countryPtr(models.CountrySlovakia)}

	q, err := b.Build(context.Background(), "services in slovakia", intent, nil)
	require.NoError(t, err)

	boolQuery := q.Serialize()["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filters := boolQuery["filter"].([]interface{})
	require.Len(t, filters, 1)

	term := filters[0].(map[string]interface{})["term"].(map[string]interface{})
	assert.Equal(t, "SLOVAKIA", term["country"])
}

func TestBuild_EmbeddingFailurePropagates(t *testing.T) {
	b := NewBuilder(&fakeEmbedder{err: errors.New("service down")}, 30)

	_, err := b.Build(context.Background(), "any", &interpreter.QuestionIntent{}, nil)
	assert.Error(t, err)
}

func TestBuild_CheapestOilChangeInBratislava(t *testing.T) {
	b := newTestBuilder()
	intent := &interpreter.QuestionIntent{
		City:      strPtr("Bratislava"),
		Func:      funcPtr(models.QueryFuncCheapest),
		OfferType: offerPtr(models.OfferTypeOilChange),
	}

	q, err := b.Build(context.Background(), "cheapest oil change in Bratislava", intent, nil)
	require.NoError(t, err)

	body := q.Serialize()
	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filters := boolQuery["filter"].([]interface{})
	require.Len(t, filters, 2)

	var sawCity, sawNested bool
	for _, f := range filters {
		fm := f.(map[string]interface{})
		if term, ok := fm["term"].(map[string]interface{}); ok {
			assert.Equal(t, "Bratislava", term["city"])
			sawCity = true
		}
		if nested, ok := fm["nested"].(map[string]interface{}); ok {
			assert.Equal(t, "offers", nested["path"])
			inner := nested["query"].(map[string]interface{})["bool"].(map[string]interface{})["filter"].([]interface{})
			term := inner[0].(map[string]interface{})["term"].(map[string]interface{})
			assert.Equal(t, "OIL_CHANGE", term["offers.offer_type"])
			sawNested = true
		}
	}
	assert.True(t, sawCity)
	assert.True(t, sawNested)

	sorts := body["sort"].([]interface{})
	require.Len(t, sorts, 1)
	priceSort := sorts[0].(map[string]interface{})["offers.base_price"].(map[string]interface{})
	assert.Equal(t, "asc", priceSort["order"])
	assert.Equal(t, "min", priceSort["mode"])
	scopeTerm := priceSort["nested"].(map[string]interface{})["filter"].(map[string]interface{})["term"].(map[string]interface{})
	assert.Equal(t, "OIL_CHANGE", scopeTerm["offers.offer_type"])
}

func TestBuild_OfferTypeAndPriceCombineIntoOneNestedFilter(t *testing.T) {
	b := newTestBuilder()
	intent := &interpreter.QuestionIntent{
		OfferType: offerPtr(models.OfferTypeOilChange),
		MaxPrice:  floatPtr(150),
	}

	q, err := b.Build(context.Background(), "oil change under 150", intent, nil)
	require.NoError(t, err)

	boolQuery := q.Serialize()["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filters := boolQuery["filter"].([]interface{})
	require.Len(t, filters, 1)

	inner := filters[0].(map[string]interface{})["nested"].(map[string]interface{})["query"].(map[string]interface{})["bool"].(map[string]interface{})["filter"].([]interface{})
	require.Len(t, inner, 2)

	rng := inner[1].(map[string]interface{})["range"].(map[string]interface{})["offers.base_price"].(map[string]interface{})
	assert.Equal(t, 150.0, rng["lte"])
}

func TestBuild_GeoFilterRequiresDistanceFuncAndPoint(t *testing.T) {
	b := newTestBuilder()
	point := &models.UserPoint{Latitude: 48.15, Longitude: 17.11}

	tests := []struct {
		name    string
		intent  *interpreter.QuestionIntent
		point   *models.UserPoint
		wantGeo bool
	}{
		{
			name: "all three conditions met",
			intent: &interpreter.QuestionIntent{
				MaxDistance: floatPtr(10),
				Func:        funcPtr(models.QueryFuncMaxDistance),
			},
			point:   point,
			wantGeo: true,
		},
		{
			name: "distance without MAX_DISTANCE func",
			intent: &interpreter.QuestionIntent{
				MaxDistance: floatPtr(10),
				Func:        funcPtr(models.QueryFuncCheapest),
			},
			point:   point,
			wantGeo: false,
		},
		{
			name: "no user point",
			intent: &interpreter.QuestionIntent{
				MaxDistance: floatPtr(10),
				Func:        funcPtr(models.QueryFuncMaxDistance),
			},
			point:   nil,
			wantGeo: false,
		},
		{
			name: "no distance ceiling",
			intent: &interpreter.QuestionIntent{
				Func: funcPtr(models.QueryFuncMaxDistance),
			},
			point:   point,
			wantGeo: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := b.Build(context.Background(), "services near me", tt.intent, tt.point)
			require.NoError(t, err)
			if tt.wantGeo {
				assert.NotNil(t, q.Geo)
			} else {
				assert.Nil(t, q.Geo)
			}
		})
	}
}

func TestBuild_MaxDistanceAddsGeoSort(t *testing.T) {
	b := newTestBuilder()
	intent := &interpreter.QuestionIntent{
		MaxDistance: floatPtr(25),
		Func:        funcPtr(models.QueryFuncMaxDistance),
	}
	point := &models.UserPoint{Latitude: 48.72, Longitude: 21.25}

	q, err := b.Build(context.Background(), "services within 25 km", intent, point)
	require.NoError(t, err)

	body := q.Serialize()
	sorts := body["sort"].([]interface{})
	require.Len(t, sorts, 1)

	geoSort := sorts[0].(map[string]interface{})["_geo_distance"].(map[string]interface{})
	assert.Equal(t, "asc", geoSort["order"])
	assert.Equal(t, "km", geoSort["unit"])
	assert.Equal(t, "arc", geoSort["distance_type"])

	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filters := boolQuery["filter"].([]interface{})
	require.Len(t, filters, 1)
	geo := filters[0].(map[string]interface{})["geo_distance"].(map[string]interface{})
	assert.Equal(t, "25km", geo["distance"])
}

func TestBuild_CheapestWithoutOfferTypeDropsSortScope(t *testing.T) {
	b := newTestBuilder()
	intent := &interpreter.QuestionIntent{Func: funcPtr(models.QueryFuncCheapest)}

	q, err := b.Build(context.Background(), "cheapest service", intent, nil)
	require.NoError(t, err)

	sorts := q.Serialize()["sort"].([]interface{})
	require.Len(t, sorts, 1)

	priceSort := sorts[0].(map[string]interface{})["offers.base_price"].(map[string]interface{})
	assert.Equal(t, "asc", priceSort["order"])
	nested := priceSort["nested"].(map[string]interface{})
	assert.NotContains(t, nested, "filter")
}
