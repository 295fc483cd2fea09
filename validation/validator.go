// Package validation checks docket files and generated documents against
// embedded JSON schemas.
package validation

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	//go:embed docket.schema.json
	docketSchemaBytes []byte
	//go:embed asyncapi.schema.json
	documentSchemaBytes []byte
)

var (
	docketSchema   = mustCompile("asyncdocket-docket.json", docketSchemaBytes)
	documentSchema = mustCompile("asyncdocket-asyncapi.json", documentSchemaBytes)
)

func mustCompile(name string, schemaBytes []byte) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft2020)

	object, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		panic(err)
	}

	if err := compiler.AddResource(name, object); err != nil {
		panic(err)
	}

	return compiler.MustCompile(name)
}

// ValidateDocket validates a YAML (or JSON) docket file.
func ValidateDocket(data []byte) error {
	jsonBytes, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("unable to parse docket: %w", err)
	}
	return validate(docketSchema, jsonBytes)
}

// ValidateDocument validates a generated AsyncAPI document in JSON form.
func ValidateDocument(data []byte) error {
	return validate(documentSchema, data)
}

func validate(schema *jsonschema.Schema, jsonBytes []byte) error {
	document, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonBytes))
	if err != nil {
		return fmt.Errorf("unable to parse document: %w", err)
	}

	return schema.Validate(document)
}
