package bindings

import (
	"encoding/json"
	"maps"
)

// Generic is a free-form binding used for protocols without a typed
// representation. Merging two of them unions their fields.
type Generic struct {
	Name   string
	Fields map[string]any
}

func NewGeneric(protocol string, fields map[string]any) Generic {
	return Generic{Name: protocol, Fields: fields}
}

func (g Generic) Protocol() string { return g.Name }

func (g Generic) Clone() Binding {
	if g.Fields == nil {
		return g
	}
	return Generic{Name: g.Name, Fields: cloneValue(g.Fields).(map[string]any)}
}

// cloneValue copies the maps and slices a decoded YAML value is built of.
func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func (g Generic) Merge(other Binding) Binding {
	next, ok := other.(Generic)
	if !ok {
		return other
	}
	fields := make(map[string]any, len(g.Fields)+len(next.Fields))
	maps.Copy(fields, g.Fields)
	maps.Copy(fields, next.Fields)
	return Generic{Name: next.Name, Fields: fields}
}

func (g Generic) MarshalJSON() ([]byte, error) {
	if g.Fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(g.Fields)
}

func (g Generic) MarshalYAML() (any, error) {
	if g.Fields == nil {
		return map[string]any{}, nil
	}
	return g.Fields, nil
}
