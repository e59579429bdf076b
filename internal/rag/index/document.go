// internal/rag/index/document.go
package index

import "github.com/HezinTUKE/car-service/internal/models"

// GeoPoint matches the mapping's geo_point field shape.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CarCompatibilityDocument is one car type/brand pair inside an offer.
type CarCompatibilityDocument struct {
	CarType  models.CarType  `json:"car_type"`
	CarBrand models.CarBrand `json:"car_brand"`
}

// OfferDocument is one element of the document's nested offers array.
type OfferDocument struct {
	BasePrice          float64                    `json:"base_price"`
	Sale               int                        `json:"sale"`
	Currency           models.Currency            `json:"currency"`
	OfferType          models.OfferType           `json:"offer_type"`
	CarCompatibilities []CarCompatibilityDocument `json:"car_compatibilities"`
}

// SearchDocument is the index's stored unit: one denormalized document per
// service, keyed by the service id. Re-indexing the same id replaces the
// prior document.
type SearchDocument struct {
	Content   string          `json:"content"`
	Embedding []float32       `json:"embedding"`
	Source    models.Source   `json:"source"`
	Name      string          `json:"name"`
	Point     GeoPoint        `json:"point"`
	City      string          `json:"city"`
	Country   models.Country  `json:"country"`
	Offers    []OfferDocument `json:"offers"`
}

// Hit is one search result. Score is a pointer because the engine omits
// scores for pure sort queries.
type Hit struct {
	ID     string
	Score  *float64
	Source SearchDocument
}
