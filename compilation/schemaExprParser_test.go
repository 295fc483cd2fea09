package compilation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestParseExpr(t *testing.T) {
	tests := []struct {
		expr     string
		expected Schema
	}{
		{expr: "string", expected: Schema{Type: SchemaString}},
		{expr: "boolean", expected: Schema{Type: SchemaBoolean}},
		{expr: "string($email)", expected: Schema{Type: SchemaString, Format: "email"}},
		{expr: "integer(0:10)", expected: Schema{Type: SchemaInteger, Minimum: ptr(0), Maximum: ptr(10)}},
		{expr: "integer(0<)", expected: Schema{Type: SchemaInteger, Minimum: ptr(0)}},
		{expr: "string(1:64)", expected: Schema{Type: SchemaString, MinLength: ptr(uint(1)), MaxLength: ptr(uint(64))}},
		{expr: "integer(5)", expected: Schema{Type: SchemaInteger, Default: ptr(any(5))}},
		{expr: `string("eu")`, expected: Schema{Type: SchemaString, Default: ptr(any("eu"))}},
		{expr: `string("a"|"b")`, expected: Schema{Type: SchemaString, Enum: []any{"a", "b"}}},
		{expr: "integer(1|2|3)", expected: Schema{Type: SchemaInteger, Enum: []any{1, 2, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			out, err := ParseExpr(tt.expr)
			require.NoError(t, err)

			schema, ok := out.GetSchema()
			require.True(t, ok)
			assert.Equal(t, tt.expected, schema)
		})
	}
}

func TestParseExprNullable(t *testing.T) {
	out, err := ParseExpr("integer?")
	require.NoError(t, err)

	schema, ok := out.GetSchema()
	require.True(t, ok)
	assert.True(t, schema.Nullable())
	assert.Equal(t, SchemaInteger, schema.Type)
}

func TestParseExprRef(t *testing.T) {
	out, err := ParseExpr("<OrderEvent>")
	require.NoError(t, err)

	ref, ok := out.GetRef()
	require.True(t, ok)
	assert.Equal(t, "#/components/schemas/OrderEvent", ref)

	name, ok := out.ComponentName()
	require.True(t, ok)
	assert.Equal(t, "OrderEvent", name)
}

func TestParseExprArrays(t *testing.T) {
	out, err := ParseExpr("<Order>[1:5,*]")
	require.NoError(t, err)

	schema, ok := out.GetSchema()
	require.True(t, ok)
	assert.Equal(t, SchemaArray, schema.Type)
	assert.Equal(t, ptr(uint(1)), schema.MinItems)
	assert.Equal(t, ptr(uint(5)), schema.MaxItems)
	assert.True(t, schema.UniqueItems)
	require.NotNil(t, schema.Items)
	assert.True(t, schema.Items.IsRef())

	out, err = ParseExpr("string[][]")
	require.NoError(t, err)
	outer, _ := out.GetSchema()
	require.NotNil(t, outer.Items)
	inner, ok := outer.Items.GetSchema()
	require.True(t, ok)
	assert.Equal(t, SchemaArray, inner.Type)
	leaf, ok := inner.Items.GetSchema()
	require.True(t, ok)
	assert.Equal(t, SchemaString, leaf.Type)
}

func TestParseExprArrayBounds(t *testing.T) {
	tests := []struct {
		expr     string
		min, max *uint
	}{
		{expr: "string[3]", max: ptr(uint(3))},
		{expr: "string[1:]", min: ptr(uint(1))},
		{expr: "string[:4]", max: ptr(uint(4))},
		{expr: "string[2:4]", min: ptr(uint(2)), max: ptr(uint(4))},
		{expr: "string[]"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			out, err := ParseExpr(tt.expr)
			require.NoError(t, err)

			schema, ok := out.GetSchema()
			require.True(t, ok)
			assert.Equal(t, tt.min, schema.MinItems)
			assert.Equal(t, tt.max, schema.MaxItems)
		})
	}
}

func TestParseExprErrors(t *testing.T) {
	for _, expr := range []string{
		"strin",
		"object",
		"integer(abc)",
		"boolean(maybe)",
		`string(unquoted)`,
		"string(-1:5)",
		"string[",
		"string[a:1]",
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := ParseExpr(expr)
			assert.Error(t, err)
		})
	}
}
