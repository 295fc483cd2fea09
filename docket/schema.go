package docket

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// Schema is a declared payload schema. Value is either a schema expression
// (string) such as "integer?(0:10)" or "<OrderEvent>[]", or an ordered list
// of Properties describing an object. Expressions are parsed when the
// document is compiled.
type Schema struct {
	Value any
}

type Property struct {
	Name   string
	Schema Schema
}

type Properties []Property

// Expr declares a schema from an expression.
func Expr(expr string) Schema {
	return Schema{Value: expr}
}

// Ref declares a reference to a named component schema.
func Ref(name string) Schema {
	return Schema{Value: "<" + name + ">"}
}

// Object declares an object schema. A property name ending in "?" is
// optional.
func Object(props ...Property) Schema {
	return Schema{Value: Properties(props)}
}

func Prop(name string, schema Schema) Property {
	return Property{Name: name, Schema: schema}
}

// IsZero reports whether nothing was declared.
func (s Schema) IsZero() bool {
	return s.Value == nil
}

func (s Schema) clone() Schema {
	props, ok := s.Value.(Properties)
	if !ok {
		return s
	}
	out := make(Properties, len(props))
	for i, p := range props {
		out[i] = Property{Name: p.Name, Schema: p.Schema.clone()}
	}
	return Schema{Value: out}
}

func (s *Schema) UnmarshalYAML(data []byte) error {
	var str string
	if err := yaml.Unmarshal(data, &str); err == nil {
		s.Value = str
		return nil
	}

	// MapSlice keeps the declaration order of the properties.
	var rawMap yaml.MapSlice
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return fmt.Errorf("failed to unmarshal as string or object: %w", err)
	}

	props := make(Properties, 0, len(rawMap))
	for _, item := range rawMap {
		name, ok := item.Key.(string)
		if !ok {
			return fmt.Errorf("property key must be a string, got %T", item.Key)
		}

		valueBytes, err := yaml.Marshal(item.Value)
		if err != nil {
			return fmt.Errorf("failed to marshal property value: %w", err)
		}

		var propSchema Schema
		if err := yaml.Unmarshal(valueBytes, &propSchema); err != nil {
			return fmt.Errorf("failed to unmarshal property %q: %w", name, err)
		}

		props = append(props, Property{
			Name:   name,
			Schema: propSchema,
		})
	}

	s.Value = props
	return nil
}
