package database

import (
	"encoding/json"
	"strings"
)

// KeyVal is one column of a projected row.
type KeyVal struct {
	Key string
	Val interface{}
}

// OrderedMap is a projected record. Columns keep SELECT order, which a
// plain map would lose.
type OrderedMap []KeyVal

// Get returns the value of the first column named key.
func (om OrderedMap) Get(key string) (interface{}, bool) {
	for _, kv := range om {
		if kv.Key == key {
			return kv.Val, true
		}
	}
	return nil, false
}

// Keys returns the column names in order.
func (om OrderedMap) Keys() []string {
	keys := make([]string, 0, len(om))
	for _, kv := range om {
		keys = append(keys, kv.Key)
	}
	return keys
}

// ToMap returns the row as a plain map for filter evaluation.
func (om OrderedMap) ToMap() map[string]interface{} {
	m := make(map[string]interface{}, len(om))
	for _, kv := range om {
		m[kv.Key] = kv.Val
	}
	return m
}

// MarshalJSON encodes the row as a JSON object in column order.
func (om OrderedMap) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, kv := range om {
		key, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(kv.Val)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.Write(key)
		sb.WriteByte(':')
		sb.Write(val)
	}
	sb.WriteByte('}')
	return []byte(sb.String()), nil
}

func (om OrderedMap) String() string {
	b, err := om.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(b)
}
