package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is a stored node as it was read back. The keyspace is shared with clients that
// never checked types, so records can carry extra fields, miss fields, or hold values of
// another type than the typed models declare. Reads hand records out unchanged.
type Record map[string]interface{}

// String returns the value at key when it is a string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Float returns the value at key as a number. Numeric strings are accepted.
func (r Record) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Child returns the object stored at key, or nil.
func (r Record) Child(key string) Record {
	m, _ := r[key].(map[string]interface{})
	return m
}
