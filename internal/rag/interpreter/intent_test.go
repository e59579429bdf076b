package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HezinTUKE/car-service/internal/models"
)

func TestDecodeIntent_FullPayload(t *testing.T) {
	raw := []byte(`{
		"country": "SLOVAKIA",
		"city": "Bratislava",
		"offer_type": "OIL_CHANGE",
		"func": "CHEAPEST",
		"max_price": 120.5,
		"max_distance": 15,
		"currency": "EUR"
	}`)

	intent, err := decodeIntent(raw)
	require.NoError(t, err)

	require.NotNil(t, intent.Country)
	assert.Equal(t, models.CountrySlovakia, *intent.Country)
	require.NotNil(t, intent.City)
	assert.Equal(t, "Bratislava", *intent.City)
	require.NotNil(t, intent.OfferType)
	assert.Equal(t, models.OfferTypeOilChange, *intent.OfferType)
	require.NotNil(t, intent.Func)
	assert.Equal(t, models.QueryFuncCheapest, *intent.Func)
	require.NotNil(t, intent.MaxPrice)
	assert.Equal(t, 120.5, *intent.MaxPrice)
	require.NotNil(t, intent.MaxDistance)
	assert.Equal(t, 15.0, *intent.MaxDistance)
	require.NotNil(t, intent.Currency)
	assert.Equal(t, models.CurrencyEUR, *intent.Currency)
}

func TestDecodeIntent_OutOfVocabularyValuesDegradeToNil(t *testing.T) {
	raw := []byte(`{
		"country": "GERMANY",
		"offer_type": "SPACESHIP_REPAIR",
		"func": "TELEPORT",
		"currency": "BTC",
		"city": "Brno"
	}`)

	intent, err := decodeIntent(raw)
	require.NoError(t, err)

	assert.Nil(t, intent.Country)
	assert.Nil(t, intent.OfferType)
	assert.Nil(t, intent.Func)
	assert.Nil(t, intent.Currency)
	require.NotNil(t, intent.City)
	assert.Equal(t, "Brno", *intent.City)
}

func TestDecodeIntent_NullAndMissingFieldsAreUnconstrained(t *testing.T) {
	intent, err := decodeIntent([]byte(`{"country": null}`))
	require.NoError(t, err)
	assert.True(t, intent.Empty())

	intent, err = decodeIntent([]byte(`{}`))
	require.NoError(t, err)
	assert.True(t, intent.Empty())
}

func TestDecodeIntent_EmptyCityDegradesToNil(t *testing.T) {
	intent, err := decodeIntent([]byte(`{"city": ""}`))
	require.NoError(t, err)
	assert.Nil(t, intent.City)
}

func TestDecodeIntent_MistypedFieldFailsShapeValidation(t *testing.T) {
	_, err := decodeIntent([]byte(`{"max_price": "expensive"}`))
	assert.Error(t, err)

	_, err = decodeIntent([]byte(`{"country": 42}`))
	assert.Error(t, err)
}

func TestDecodeIntent_NonObjectPayloadFails(t *testing.T) {
	_, err := decodeIntent([]byte(`"just a string"`))
	assert.Error(t, err)

	_, err = decodeIntent([]byte(`not even json`))
	assert.Error(t, err)
}
