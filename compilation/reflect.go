package compilation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"
)

var (
	timeType          = reflect.TypeFor[time.Time]()
	rawMessageType    = reflect.TypeFor[json.RawMessage]()
	textMarshalerType = reflect.TypeFor[interface{ MarshalText() ([]byte, error) }]()
)

func (s *SchemasService) schemaFor(t reflect.Type) (SchemaOrRef, error) {
	if t.Kind() == reflect.Pointer {
		inner, err := s.schemaFor(t.Elem())
		if err != nil {
			return SchemaOrRef{}, err
		}
		if schema, ok := inner.GetSchema(); ok {
			schema.nullable = true
			return NewSchemaDef(schema), nil
		}
		return inner, nil
	}

	if name, ok := s.types[t]; ok {
		return NewComponentRef(name), nil
	}

	switch {
	case t == timeType:
		return NewSchemaDef(Schema{Type: SchemaString, Format: "date-time"}), nil
	case t == rawMessageType:
		return NewSchemaDef(Schema{}), nil
	}

	if isComponent(t) {
		return s.registerComponent(t)
	}
	return s.inlineSchema(t)
}

// isComponent reports whether t gets its own entry in components/schemas.
func isComponent(t reflect.Type) bool {
	return t.Name() != "" && t.PkgPath() != "" && t.Kind() != reflect.Interface
}

func (s *SchemasService) registerComponent(t reflect.Type) (SchemaOrRef, error) {
	name := s.uniqueName(t.Name())
	// Reserved before descending so recursive types resolve to a reference.
	s.types[t] = name

	schema, err := s.inlineSchema(t)
	if err != nil {
		delete(s.types, t)
		return SchemaOrRef{}, err
	}
	s.schemas[name] = schema
	return NewComponentRef(name), nil
}

func (s *SchemasService) inlineSchema(t reflect.Type) (SchemaOrRef, error) {
	if t.Implements(textMarshalerType) && t.Kind() != reflect.Struct {
		return NewSchemaDef(Schema{Type: SchemaString}), nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return NewSchemaDef(Schema{Type: SchemaBoolean}), nil
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return NewSchemaDef(Schema{Type: SchemaInteger, Format: "int64"}), nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return NewSchemaDef(Schema{Type: SchemaInteger, Format: "int32"}), nil
	case reflect.Float32:
		return NewSchemaDef(Schema{Type: SchemaNumber, Format: "float"}), nil
	case reflect.Float64:
		return NewSchemaDef(Schema{Type: SchemaNumber, Format: "double"}), nil
	case reflect.String:
		return NewSchemaDef(Schema{Type: SchemaString}), nil
	case reflect.Interface:
		return NewSchemaDef(Schema{}), nil
	case reflect.Slice, reflect.Array:
		return s.arraySchema(t)
	case reflect.Map:
		return s.mapSchema(t)
	case reflect.Struct:
		return s.structSchema(t)
	default:
		return SchemaOrRef{}, fmt.Errorf("unsupported payload type %s", t)
	}
}

func (s *SchemasService) arraySchema(t reflect.Type) (SchemaOrRef, error) {
	if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
		return NewSchemaDef(Schema{Type: SchemaString, Format: "byte"}), nil
	}

	items, err := s.schemaFor(t.Elem())
	if err != nil {
		return SchemaOrRef{}, err
	}

	out := Schema{Type: SchemaArray, Items: &items}
	if t.Kind() == reflect.Array {
		size := uint(t.Len())
		out.MinItems = &size
		out.MaxItems = &size
	}
	return NewSchemaDef(out), nil
}

func (s *SchemasService) mapSchema(t reflect.Type) (SchemaOrRef, error) {
	if t.Key().Kind() != reflect.String && !t.Key().Implements(textMarshalerType) {
		return SchemaOrRef{}, fmt.Errorf("map key type %s unsupported", t.Key())
	}

	values, err := s.schemaFor(t.Elem())
	if err != nil {
		return SchemaOrRef{}, err
	}
	return NewSchemaDef(Schema{Type: SchemaObject, AdditionalProperties: &values}), nil
}

func (s *SchemasService) structSchema(t reflect.Type) (SchemaOrRef, error) {
	out := Schema{
		Type:       SchemaObject,
		Properties: make(Properties),
	}
	if err := s.collectFields(t, &out, map[reflect.Type]bool{t: true}); err != nil {
		return SchemaOrRef{}, err
	}
	return NewSchemaDef(out), nil
}

// collectFields follows encoding/json naming: json tag names, "-" skips,
// omitempty fields are optional and untagged embedded structs are flattened.
// flattening holds the embedding chain; a type embedding itself is skipped.
func (s *SchemasService) collectFields(t reflect.Type, out *Schema, flattening map[reflect.Type]bool) error {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")

		if field.Anonymous && name == "" {
			ft := field.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if flattening[ft] {
					continue
				}
				flattening[ft] = true
				err := s.collectFields(ft, out, flattening)
				delete(flattening, ft)
				if err != nil {
					return err
				}
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}

		var (
			schema SchemaOrRef
			err    error
		)
		if hasOption(opts, "string") {
			schema = NewSchemaDef(Schema{Type: SchemaString})
		} else if schema, err = s.schemaFor(field.Type); err != nil {
			return fmt.Errorf("field %s.%s: %w", t.Name(), field.Name, err)
		}

		if def, ok := schema.GetSchema(); ok {
			if desc := field.Tag.Get("description"); desc != "" {
				def.Description = desc
			}
			if example, ok := field.Tag.Lookup("example"); ok {
				def.Examples = []any{exampleValue(def.Type, example)}
			}
			schema = NewSchemaDef(def)
		}

		out.Properties[name] = schema
		if slices.Contains(out.Required, name) {
			continue
		}
		if !hasOption(opts, "omitempty") && !hasOption(opts, "omitzero") && field.Type.Kind() != reflect.Pointer {
			out.Required = append(out.Required, name)
		}
	}
	return nil
}

// exampleValue reads an example tag as JSON unless the field is a string.
func exampleValue(t SchemaType, raw string) any {
	if t == SchemaString {
		return raw
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

func hasOption(opts, option string) bool {
	for opt := range strings.SplitSeq(opts, ",") {
		if opt == option {
			return true
		}
	}
	return false
}
