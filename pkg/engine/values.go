package engine

import (
	"encoding/json"
	"strconv"

	"github.com/bisegni/qprint/pkg/result"
)

// fieldOf converts a decoded JSON value into a field. null yields no
// values, an array yields one value per element and anything else a
// single value.
func fieldOf(v interface{}) result.Field {
	switch val := v.(type) {
	case nil:
		return result.Values()
	case []interface{}:
		values := make([]result.Value, 0, len(val))
		for _, item := range val {
			if item == nil {
				continue
			}
			values = append(values, valueOf(item))
		}
		return result.Values(values...)
	}
	return result.Values(valueOf(v))
}

func valueOf(v interface{}) result.Value {
	switch val := v.(type) {
	case string:
		return result.Text(val)
	case float64:
		return result.Text(strconv.FormatFloat(val, 'f', -1, 64))
	case bool:
		return result.Text(strconv.FormatBool(val))
	case int:
		return result.Text(strconv.Itoa(val))
	}
	// Objects and nested arrays keep their JSON form
	b, err := json.Marshal(v)
	if err != nil {
		return result.Text("")
	}
	return result.Text(b)
}
