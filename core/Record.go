package core

import "fmt"

// Record is one raw finding as returned by the source service, decoded into a
// nested mapping.
type Record map[string]interface{}

// Lookup walks path through nested maps. A missing key, a nil value or a
// non-map intermediate node all report false.
func (r Record) Lookup(path ...string) (interface{}, bool) {
	var current interface{} = map[string]interface{}(r)
	for _, key := range path {
		node, ok := asMap(current)
		if !ok {
			return nil, false
		}
		value, exists := node[key]
		if !exists || value == nil {
			return nil, false
		}
		current = value
	}
	return current, current != nil
}

// LookupString resolves path and formats the value as a string, returning def
// when any part of the path is absent.
func (r Record) LookupString(def string, path ...string) string {
	value, ok := r.Lookup(path...)
	if !ok {
		return def
	}
	return toString(value)
}

// ID returns the record identifier if present.
func (r Record) ID() string {
	return r.LookupString("", "Id")
}

func asMap(value interface{}) (map[string]interface{}, bool) {
	switch v := value.(type) {
	case map[string]interface{}:
		return v, true
	case Record:
		return v, true
	default:
		return nil, false
	}
}

func toString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
