package configsync

import (
	json "github.com/goccy/go-json"
)

// ignoredFields names payload fields that must never leave the client,
// neither on upload nor in the prefs cache. Stripped at any nesting depth.
var ignoredFields = map[string]struct{}{
	// add field names here, e.g. "Credentials"
}

// MarshalFiltered serializes v with the ignore-list applied.
func MarshalFiltered(v any) ([]byte, error) {
	return marshalFiltered(v, ignoredFields)
}

func marshalFiltered(v any, ignore map[string]struct{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(ignore) == 0 {
		return raw, nil
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return json.Marshal(stripIgnored(generic, ignore))
}

func stripIgnored(v any, ignore map[string]struct{}) any {
	switch val := v.(type) {
	case map[string]any:
		for name, child := range val {
			if _, skip := ignore[name]; skip {
				delete(val, name)
				continue
			}
			val[name] = stripIgnored(child, ignore)
		}
		return val
	case []any:
		for i, child := range val {
			val[i] = stripIgnored(child, ignore)
		}
		return val
	default:
		return v
	}
}
