package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean_StripsEmptyValues(t *testing.T) {
	in := map[string]interface{}{
		"keep":       "value",
		"nilField":   nil,
		"emptyStr":   "",
		"emptyMap":   map[string]interface{}{},
		"emptyList":  []interface{}{},
		"nestedGone": map[string]interface{}{"inner": map[string]interface{}{"deep": nil}},
		"nestedKept": map[string]interface{}{"inner": "x"},
	}

	out := Clean(in).(map[string]interface{})

	assert.Equal(t, map[string]interface{}{
		"keep":       "value",
		"nestedKept": map[string]interface{}{"inner": "x"},
	}, out)
}

func TestClean_PreservesZeroAndFalse(t *testing.T) {
	in := map[string]interface{}{
		"zero":  0,
		"zeroF": 0.0,
		"false": false,
	}

	out := Clean(in).(map[string]interface{})

	assert.Equal(t, 0, out["zero"])
	assert.Equal(t, 0.0, out["zeroF"])
	assert.Equal(t, false, out["false"])
}

func TestClean_ListsDropEmptyElements(t *testing.T) {
	in := []interface{}{
		"a",
		"",
		map[string]interface{}{},
		map[string]interface{}{"b": 1},
	}

	out := Clean(in).([]interface{})

	assert.Equal(t, []interface{}{"a", map[string]interface{}{"b": 1}}, out)
}

func TestClean_FullyEmptyInputCollapsesToNil(t *testing.T) {
	assert.Nil(t, Clean(map[string]interface{}{"a": nil, "b": map[string]interface{}{}}))
	assert.Nil(t, Clean([]interface{}{nil, ""}))
	assert.Nil(t, Clean(nil))
}

func TestClean_Idempotent(t *testing.T) {
	in := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   []interface{}{map[string]interface{}{"knn": map[string]interface{}{"k": 30}}},
				"filter": []interface{}{},
			},
		},
		"sort": []interface{}{map[string]interface{}{"field": map[string]interface{}{"nested": map[string]interface{}{"filter": nil}}}},
	}

	once := Clean(in)
	twice := Clean(once)

	assert.Equal(t, once, twice)
}
