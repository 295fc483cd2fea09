package compilation

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/masnyjimmy/asyncdocket/docket"
)

// ErrUnknownComponent is returned when a reference names no registered schema.
var ErrUnknownComponent = errors.New("unknown component")

// SchemasService collects the component schemas of a document. Entries are
// deduplicated by name: the first registration of a name wins.
type SchemasService struct {
	schemas   map[string]SchemaOrRef
	types     map[reflect.Type]string
	usedNames map[string]struct{}
}

func NewSchemasService() *SchemasService {
	return &SchemasService{
		schemas:   make(map[string]SchemaOrRef),
		types:     make(map[reflect.Type]string),
		usedNames: make(map[string]struct{}),
	}
}

// Register adds a named schema unless the name is already taken. It reports
// whether the schema was added.
func (s *SchemasService) Register(name string, schema SchemaOrRef) bool {
	if _, ok := s.schemas[name]; ok {
		return false
	}
	s.schemas[name] = schema
	s.usedNames[name] = struct{}{}
	return true
}

// Definitions returns the registered schemas, nil when there are none.
func (s *SchemasService) Definitions() map[string]SchemaOrRef {
	if len(s.schemas) == 0 {
		return nil
	}
	return maps.Clone(s.schemas)
}

// Names returns the registered component names in sorted order.
func (s *SchemasService) Names() []string {
	names := make([]string, 0, len(s.schemas))
	for name := range s.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse turns a declared schema into a SchemaOrRef. Property names ending
// with "?" are optional.
func (s *SchemasService) Parse(schema docket.Schema) (SchemaOrRef, error) {
	switch v := schema.Value.(type) {
	case string:
		return ParseExpr(v)
	case docket.Properties:
		object := Schema{
			Type:       SchemaObject,
			Properties: make(Properties, len(v)),
		}
		for _, property := range v {
			name, opt := strings.CutSuffix(property.Name, "?")
			parsed, err := s.Parse(property.Schema)
			if err != nil {
				return SchemaOrRef{}, fmt.Errorf("property %q: %w", name, err)
			}
			object.Properties[name] = parsed
			if !opt {
				object.Required = append(object.Required, name)
			}
		}
		return NewSchemaDef(object), nil
	case nil:
		return SchemaOrRef{}, fmt.Errorf("empty schema")
	default:
		return SchemaOrRef{}, fmt.Errorf("invalid schema type %T", v)
	}
}

// Resolve checks that every component reference inside schema names a
// registered schema.
func (s *SchemasService) Resolve(schema SchemaOrRef) error {
	if name, ok := schema.ComponentName(); ok {
		if _, found := s.schemas[name]; !found {
			return fmt.Errorf("%w %q", ErrUnknownComponent, name)
		}
		return nil
	}

	def, ok := schema.GetSchema()
	if !ok {
		return nil
	}
	names := make([]string, 0, len(def.Properties))
	for name := range def.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := s.Resolve(def.Properties[name]); err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
	}
	if def.Items != nil {
		if err := s.Resolve(*def.Items); err != nil {
			return fmt.Errorf("items: %w", err)
		}
	}
	if def.AdditionalProperties != nil {
		if err := s.Resolve(*def.AdditionalProperties); err != nil {
			return fmt.Errorf("additionalProperties: %w", err)
		}
	}
	return nil
}

// RegisterType introspects a Go type. Named structs and named non builtin
// types are registered as components and returned as references, the rest
// is inlined. The returned name is the component name, or the type name for
// inlined schemas.
func (s *SchemasService) RegisterType(t reflect.Type) (SchemaOrRef, string, error) {
	if t == nil {
		return SchemaOrRef{}, "", fmt.Errorf("nil type")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	schema, err := s.schemaFor(t)
	if err != nil {
		return SchemaOrRef{}, "", err
	}
	if name, ok := schema.ComponentName(); ok {
		return schema, name, nil
	}
	return schema, t.String(), nil
}

var componentNameRegexp = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func (s *SchemasService) uniqueName(name string) string {
	safe := strings.Trim(componentNameRegexp.ReplaceAllString(name, "_"), "_")
	if safe == "" {
		safe = "Schema"
	}
	if _, exists := s.usedNames[safe]; !exists {
		s.usedNames[safe] = struct{}{}
		return safe
	}
	for suffix := 1; ; suffix++ {
		candidate := fmt.Sprintf("%s%d", safe, suffix)
		if _, exists := s.usedNames[candidate]; !exists {
			s.usedNames[candidate] = struct{}{}
			return candidate
		}
	}
}
