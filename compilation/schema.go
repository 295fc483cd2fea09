package compilation

import (
	"encoding/json"
	"fmt"
	"strings"
)

type SchemaType string

const (
	SchemaNull    SchemaType = "null"
	SchemaBoolean SchemaType = "boolean"
	SchemaInteger SchemaType = "integer"
	SchemaNumber  SchemaType = "number"
	SchemaString  SchemaType = "string"
	SchemaArray   SchemaType = "array"
	SchemaObject  SchemaType = "object"
)

const componentsPrefix = "#/components/schemas/"

type Properties = map[string]SchemaOrRef

type Schema struct {
	Type        SchemaType `json:"type,omitempty" yaml:"type,omitempty"`
	Title       string     `json:"title,omitempty" yaml:"title,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`

	Properties           Properties   `json:"properties,omitempty" yaml:"properties,omitempty"`
	AdditionalProperties *SchemaOrRef `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	Items                *SchemaOrRef `json:"items,omitempty" yaml:"items,omitempty"`

	nullable bool

	Default *any  `json:"default,omitempty" yaml:"default,omitempty"`
	Enum    []any `json:"enum,omitempty" yaml:"enum,omitempty"`

	Required []string `json:"required,omitempty" yaml:"required,omitempty"`

	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	UniqueItems bool `json:"uniqueItems,omitempty" yaml:"uniqueItems,omitempty"`

	Minimum *int `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum *int `json:"maximum,omitempty" yaml:"maximum,omitempty"`

	MinLength *uint `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *uint `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`

	MinItems *uint `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *uint `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`

	Examples []any `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Nullable reports whether null is accepted besides Type.
func (t Schema) Nullable() bool { return t.nullable }

// SchemaOrRef is either an inline Schema or a reference to a component.
type SchemaOrRef struct {
	value any
}

func (SchemaOrRef) IsEmpty() bool { return false }
func (SchemaOrRef) IsZero() bool  { return false }

func NewSchemaRef(ref string) SchemaOrRef {
	return SchemaOrRef{
		value: ref,
	}
}

// NewComponentRef references a schema under components/schemas.
func NewComponentRef(name string) SchemaOrRef {
	return NewSchemaRef(componentsPrefix + name)
}

func NewSchemaDef(schema Schema) SchemaOrRef {
	return SchemaOrRef{
		value: schema,
	}
}

func (t Schema) marshalYAML(nullable bool) (any, error) {
	if nullable {
		// oneOf: [ {type: "null"}, <schema-without-nullable> ]
		nonNull := t
		nonNull.nullable = false

		return map[string]any{
			"oneOf": []any{
				map[string]string{"type": string(SchemaNull)},
				nonNull,
			},
		}, nil
	}

	return t, nil
}

func (t SchemaOrRef) MarshalYAML() (any, error) {
	if t.value == nil {
		return nil, nil
	}

	switch v := t.value.(type) {
	case string:
		return map[string]string{"$ref": v}, nil
	case Schema:
		return v.marshalYAML(v.nullable)
	default:
		return nil, fmt.Errorf("invalid SchemaOrRef value type: %T", v)
	}
}

func (t SchemaOrRef) MarshalJSON() ([]byte, error) {
	switch v := t.value.(type) {
	case string:
		return json.Marshal(map[string]string{"$ref": v})
	case Schema:
		if v.nullable {
			nonNull := v
			nonNull.nullable = false

			oneOf := []any{
				map[string]string{"type": string(SchemaNull)},
				nonNull,
			}
			return json.Marshal(map[string]any{"oneOf": oneOf})
		}
		return json.Marshal(v)
	default:
		return nil, fmt.Errorf("invalid SchemaOrRef value type: %T", t.value)
	}
}

func (t *SchemaOrRef) UnmarshalJSON(data []byte) error {
	var refObj struct {
		Ref string `json:"$ref"`
	}
	if err := json.Unmarshal(data, &refObj); err == nil && refObj.Ref != "" {
		t.value = refObj.Ref
		return nil
	}

	var schema Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return err
	}
	t.value = schema
	return nil
}

func (t SchemaOrRef) IsRef() bool {
	_, ok := t.value.(string)
	return ok
}

func (t SchemaOrRef) GetRef() (string, bool) {
	ref, ok := t.value.(string)
	return ref, ok
}

// ComponentName returns the component a reference points to.
func (t SchemaOrRef) ComponentName() (string, bool) {
	ref, ok := t.GetRef()
	if !ok {
		return "", false
	}
	return strings.CutPrefix(ref, componentsPrefix)
}

func (t SchemaOrRef) GetSchema() (Schema, bool) {
	schema, ok := t.value.(Schema)
	return schema, ok
}
