// internal/rag/query/clean.go
package query

// Clean recursively strips empty values (nil, "", empty list, empty map)
// from a serialized query body. Numeric zero and false survive: a price
// ceiling of 0 or k of 0 is a value, not an absence. Clean is idempotent.
func Clean(v interface{}) interface{} {
	cleaned := clean(v)
	if isEmpty(cleaned) {
		return nil
	}
	return cleaned
}

func clean(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, inner := range val {
			c := clean(inner)
			if !isEmpty(c) {
				out[k] = c
			}
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(val))
		for _, inner := range val {
			c := clean(inner)
			if !isEmpty(c) {
				out = append(out, c)
			}
		}
		return out
	default:
		return v
	}
}

func isEmpty(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case map[string]interface{}:
		return len(val) == 0
	case []interface{}:
		return len(val) == 0
	case []float32:
		return len(val) == 0
	case []float64:
		return len(val) == 0
	case []string:
		return len(val) == 0
	}
	return false
}
