// internal/models/service.go
package models

// Service is a single car-service location owned by an organization.
type Service struct {
	ID                   string  `json:"id"`
	OrganizationID       string  `json:"organizationId"`
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	Country              Country `json:"country"`
	City                 string  `json:"city"`
	Street               string  `json:"street"`
	HouseNumber          string  `json:"houseNumber"`
	PostalCode           string  `json:"postalCode"`
	PhoneNumber          string  `json:"phoneNumber"`
	Email                string  `json:"email"`
	Longitude            float64 `json:"longitude"`
	Latitude             float64 `json:"latitude"`
	OriginalFullAddress  string  `json:"originalFullAddress"`
	IdentificationNumber string  `json:"identificationNumber"`
	Owner                string  `json:"owner"`
	CreatedAt            int64   `json:"createdAt"`
	UpdatedAt            int64   `json:"updatedAt"`
}

// Offer is a priced unit of work a service sells.
type Offer struct {
	ID                       string    `json:"id"`
	ServiceID                string    `json:"serviceId"`
	OfferType                OfferType `json:"offerType"`
	Description              string    `json:"description"`
	CarType                  CarType   `json:"carType"`
	Currency                 Currency  `json:"currency"`
	BasePrice                float64   `json:"basePrice"`
	Sale                     int       `json:"sale"`
	EstimatedDurationMinutes int       `json:"estimatedDurationMinutes"`
	CreatedAt                int64     `json:"createdAt"`
	UpdatedAt                int64     `json:"updatedAt"`
}

// OfferCarCompatibility marks one car type/brand pair an offer applies to.
type OfferCarCompatibility struct {
	ID       string   `json:"id"`
	OfferID  string   `json:"offerId"`
	CarType  CarType  `json:"carType"`
	CarBrand CarBrand `json:"carBrand"`
}

type Organization struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	Country              Country `json:"country"`
	City                 string  `json:"city"`
	Street               string  `json:"street"`
	HouseNumber          string  `json:"houseNumber"`
	PostalCode           string  `json:"postalCode"`
	PhoneNumber          string  `json:"phoneNumber"`
	Email                string  `json:"email"`
	Longitude            float64 `json:"longitude"`
	Latitude             float64 `json:"latitude"`
	OriginalFullAddress  string  `json:"originalFullAddress"`
	IdentificationNumber string  `json:"identificationNumber"`
	Owner                string  `json:"owner"`
	CreatedAt            int64   `json:"createdAt"`
	UpdatedAt            int64   `json:"updatedAt"`
}

// ServiceGraph is a service with its complete, current set of offers and
// each offer's compatibility rows, as loaded in one eager batch.
type ServiceGraph struct {
	Service         Service                            `json:"service"`
	Offers          []Offer                            `json:"offers"`
	Compatibilities map[string][]OfferCarCompatibility `json:"compatibilities"` // keyed by offer id
}

// UserPoint is the asking user's geographic coordinate.
type UserPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
