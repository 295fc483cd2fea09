package compilation

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var schemaExprRegex = regexp.MustCompile(`^(?:((?:boolean|string|integer|number)\??)(?:\((.*)\))?|(?:<(\w+)>))((?:\??\[[^\]]*\])*)$`)

func extractBetween(s string, left, right string) (string, bool) {
	s, ok := strings.CutPrefix(s, left)
	if !ok {
		return "", false
	}
	return strings.CutSuffix(s, right)
}

// parseArraySize reads "N" (at most N), "N:M", "N:" or ":M".
func parseArraySize(expr string) (min, max *uint, err error) {
	bound := func(s string) (*uint, error) {
		if s == "" {
			return nil, nil
		}
		val, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, err
		}
		return valToPtr(uint(val)), nil
	}

	lower, upper, found := strings.Cut(expr, ":")
	if !found {
		max, err = bound(lower)
		return nil, max, err
	}

	if min, err = bound(lower); err != nil {
		return nil, nil, err
	}
	if max, err = bound(upper); err != nil {
		return nil, nil, err
	}
	return min, max, nil
}

func applyArrayParams(schema *Schema, arrExpr string) error {
	if arrExpr == "" {
		return nil
	}

	params := strings.Split(arrExpr, ",")

	for _, param := range params {
		param = strings.TrimSpace(param)
		if param == "" {
			continue
		}

		switch param {
		case "*":
			schema.UniqueItems = true
		default:
			min, max, err := parseArraySize(param)
			if err != nil {
				return err
			}
			schema.MinItems = min
			schema.MaxItems = max
		}
	}

	return nil
}

func parseArraySchema(element SchemaOrRef, reader *strings.Reader) (Schema, error) {
	ch, _, err := reader.ReadRune()

	if err != nil {
		return Schema{}, err
	}

	schema := Schema{
		Type:  SchemaArray,
		Items: &element,
	}

	// first can be optional ? which means its nullable
	if ch == '?' {
		schema.nullable = true
		ch, _, err = reader.ReadRune()
		if err != nil {
			return Schema{}, err
		}
	}
	// then read [] content
	if ch != '[' {
		return Schema{}, fmt.Errorf("invalid glyph found: %v", ch)
	}

	var result strings.Builder
	for {
		ch, _, err := reader.ReadRune()
		if err == io.EOF {
			return Schema{}, fmt.Errorf("] not found, reached EOF")
		}
		if err != nil {
			return Schema{}, err
		}

		if ch == ']' {
			break
		}

		if _, err := result.WriteRune(ch); err != nil {
			return Schema{}, err
		}
	}

	if err := applyArrayParams(&schema, result.String()); err != nil {
		return Schema{}, err
	}

	if reader.Len() != 0 {
		return parseArraySchema(NewSchemaDef(schema), reader)
	}

	return schema, nil
}

func valToPtr[T any](value T) *T {
	return &value
}

func parseRange(schema *Schema, param string) error {
	idx := strings.IndexAny(param, "<>:")

	if idx == -1 {
		return fmt.Errorf("range operator not found")
	}

	var left, right *int

	// Parse left side
	if idx > 0 {
		val, err := strconv.ParseInt(param[:idx], 10, 64)
		if err != nil {
			return err
		}
		left = valToPtr(int(val))
	}

	// Parse right side
	if idx < len(param)-1 {
		val, err := strconv.ParseInt(param[idx+1:], 10, 64)
		if err != nil {
			return err
		}
		right = valToPtr(int(val))
	}

	var lower, upper *int
	switch param[idx] {
	case '<', ':':
		lower, upper = left, right
	case '>':
		lower, upper = right, left
	default:
		return fmt.Errorf("unknown range operator: %c", param[idx])
	}

	if schema.Type != SchemaString {
		schema.Minimum = lower
		schema.Maximum = upper
		return nil
	}

	// ranges on strings bound the length
	toLength := func(v *int) (*uint, error) {
		if v == nil {
			return nil, nil
		}
		if *v < 0 {
			return nil, fmt.Errorf("negative string length: %d", *v)
		}
		return valToPtr(uint(*v)), nil
	}
	var err error
	if schema.MinLength, err = toLength(lower); err != nil {
		return err
	}
	if schema.MaxLength, err = toLength(upper); err != nil {
		return err
	}
	return nil
}

func parseLiteral(t SchemaType, p string) (any, error) {
	switch t {
	case SchemaInteger:
		val, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer: %s", p)
		}
		return int(val), nil
	case SchemaNumber:
		val, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number: %s", p)
		}
		return val, nil
	case SchemaBoolean:
		switch p {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean: %s", p)
	case SchemaString:
		if s, ok := extractBetween(p, "\"", "\""); ok {
			return s, nil
		}
		return nil, fmt.Errorf("invalid string: %s", p)
	default:
		return nil, fmt.Errorf("cannot set a value for type: %s", t)
	}
}

func splitAt(s string, idx int) (string, string) {
	return s[:idx], s[idx:]
}

func parseObjectSchema(t string, params string) (Schema, error) {
	t, nullable := strings.CutSuffix(t, "?")

	out := Schema{
		Type:     SchemaType(t),
		nullable: nullable,
	}

	handleSigned := func(p string) bool {
		if len(p) < 2 {
			return false
		}
		sign, rest := splitAt(p, 1)
		switch sign {
		case "$":
			out.Format = rest
			return true
		}
		return false
	}

	handleDefault := func(p string) (bool, error) {
		if p == "null" {
			out.Default = valToPtr(any(nil))
			return true, nil
		}
		val, err := parseLiteral(out.Type, p)
		if err != nil {
			return false, fmt.Errorf("invalid default value: %w", err)
		}
		out.Default = valToPtr(val)
		return true, nil
	}

	handleEnum := func(p string) error {
		for item := range strings.SplitSeq(p, "|") {
			val, err := parseLiteral(out.Type, strings.TrimSpace(item))
			if err != nil {
				return fmt.Errorf("invalid enum value: %w", err)
			}
			out.Enum = append(out.Enum, val)
		}
		return nil
	}

	if params == "" {
		return out, nil
	}

	for _, param := range strings.Split(params, ",") {
		param = strings.TrimSpace(param)
		if param == "" {
			continue
		}

		if handleSigned(param) {
			continue
		}

		if strings.Contains(param, "|") {
			if err := handleEnum(param); err != nil {
				return Schema{}, err
			}
			continue
		}

		if strings.ContainsAny(param, "<>:") && !strings.HasPrefix(param, "\"") {
			if err := parseRange(&out, param); err != nil {
				return Schema{}, err
			}
			continue
		}

		// Try to handle as default value
		handled, err := handleDefault(param)
		if err != nil {
			return Schema{}, err
		}
		if handled {
			continue
		}

		return Schema{}, fmt.Errorf("unknown parameter: %s", param)
	}

	return out, nil
}

// ParseExpr parses a compact schema expression such as "string($email)",
// "integer?(0:10)", "<Order>[1:5,*]" or "string(\"a\"|\"b\")".
func ParseExpr(expr string) (SchemaOrRef, error) {
	sub := schemaExprRegex.FindStringSubmatch(strings.TrimSpace(expr))
	if sub == nil {
		return SchemaOrRef{}, fmt.Errorf("invalid schema expression: %s", expr)
	}

	baseType := sub[1] // boolean, string, integer, number
	params := sub[2]   // parameters in parentheses
	ref := sub[3]      // reference like <Type>
	arr := sub[4]      // array notation

	var out SchemaOrRef

	if ref != "" {
		out = NewComponentRef(ref)
	} else {
		schema, err := parseObjectSchema(baseType, params)
		if err != nil {
			return SchemaOrRef{}, err
		}
		out = NewSchemaDef(schema)
	}

	if arr != "" {
		arrReader := strings.NewReader(arr)
		schema, err := parseArraySchema(out, arrReader)
		if err != nil {
			return SchemaOrRef{}, err
		}
		return NewSchemaDef(schema), nil
	}

	return out, nil
}
