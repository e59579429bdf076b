// internal/rag/interpreter/intent.go
package interpreter

import (
	"encoding/json"

	"github.com/xeipuuv/gojsonschema"

	"github.com/HezinTUKE/car-service/internal/models"
)

// QuestionIntent is the structured reading of a free-text question. Every
// field is optional; nil means "unconstrained". It lives for the duration
// of one query build and is never persisted.
type QuestionIntent struct {
	Country     *models.Country   `json:"country,omitempty"`
	City        *string           `json:"city,omitempty"`
	OfferType   *models.OfferType `json:"offer_type,omitempty"`
	Func        *models.QueryFunc `json:"func,omitempty"`
	MaxPrice    *float64          `json:"max_price,omitempty"`
	MaxDistance *float64          `json:"max_distance,omitempty"`
	Currency    *models.Currency  `json:"currency,omitempty"`
}

// Empty reports whether no constraint was extracted at all.
func (qi *QuestionIntent) Empty() bool {
	return qi == nil || (qi.Country == nil && qi.City == nil && qi.OfferType == nil &&
		qi.Func == nil && qi.MaxPrice == nil && qi.MaxDistance == nil && qi.Currency == nil)
}

// intentSchema polices the *shape* of the model's JSON: an object whose
// fields, when present, carry the right primitive types. Enum membership is
// deliberately not enforced here; out-of-vocabulary values degrade to nil
// per field instead of failing the interpretation.
const intentSchema = `{
	"type": "object",
	"properties": {
		"country":      {"type": ["string", "null"]},
		"city":         {"type": ["string", "null"]},
		"offer_type":   {"type": ["string", "null"]},
		"func":         {"type": ["string", "null"]},
		"max_price":    {"type": ["number", "null"]},
		"max_distance": {"type": ["number", "null"]},
		"currency":     {"type": ["string", "null"]}
	}
}`

var intentSchemaLoader = gojsonschema.NewStringLoader(intentSchema)

// rawIntent mirrors the model's JSON before enum validation.
type rawIntent struct {
	Country     *string  `json:"country"`
	City        *string  `json:"city"`
	OfferType   *string  `json:"offer_type"`
	Func        *string  `json:"func"`
	MaxPrice    *float64 `json:"max_price"`
	MaxDistance *float64 `json:"max_distance"`
	Currency    *string  `json:"currency"`
}

// decodeIntent parses the model's raw JSON into a QuestionIntent. A payload
// that is not a well-shaped object is an error; a field holding a value
// outside its closed enum is not, it just becomes nil.
func decodeIntent(raw []byte) (*QuestionIntent, error) {
	result, err := gojsonschema.Validate(intentSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, err
	}
	if !result.Valid() {
		return nil, &schemaError{result: result}
	}

	var ri rawIntent
	if err := json.Unmarshal(raw, &ri); err != nil {
		return nil, err
	}

	intent := &QuestionIntent{
		MaxPrice:    ri.MaxPrice,
		MaxDistance: ri.MaxDistance,
	}

	if ri.City != nil && *ri.City != "" {
		intent.City = ri.City
	}
	if ri.Country != nil {
		if c, ok := models.ParseCountry(*ri.Country); ok {
			intent.Country = &c
		}
	}
	if ri.OfferType != nil {
		if t, ok := models.ParseOfferType(*ri.OfferType); ok {
			intent.OfferType = &t
		}
	}
	if ri.Func != nil {
		if f, ok := models.ParseQueryFunc(*ri.Func); ok {
			intent.Func = &f
		}
	}
	if ri.Currency != nil {
		if c, ok := models.ParseCurrency(*ri.Currency); ok {
			intent.Currency = &c
		}
	}

	return intent, nil
}

type schemaError struct {
	result *gojsonschema.Result
}

func (e *schemaError) Error() string {
	if len(e.result.Errors()) > 0 {
		return "intent payload failed schema validation: " + e.result.Errors()[0].String()
	}
	return "intent payload failed schema validation"
}
