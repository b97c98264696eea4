package validate

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/ormasoftchile/pitwall/pkg/strategy"
)

// ParseError means the document text did not deserialize at all.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "YAML parse error: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError means the document deserialized but violates the structural
// schema. Path uses pointer-like notation rooted at "$", e.g.
// "$.stints[2].compound".
type SchemaError struct {
	Path   string
	Detail string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("Schema validation error at %s:\n%s", e.Path, e.Detail)
}

// ValidateSchema checks document text against the generated strategy schema.
// It returns nil when the document is structurally valid, *ParseError when
// the text does not deserialize, and *SchemaError otherwise. The check is a
// pure function of the text; it knows nothing about racing semantics.
func ValidateSchema(text string) error {
	var raw any
	if err := yaml.Unmarshal([]byte(text), &raw); err != nil {
		return &ParseError{Err: err}
	}

	// Round-trip through JSON so the instance uses the value types the
	// schema engine expects (float64 numbers, string keys).
	data, err := json.Marshal(raw)
	if err != nil {
		return &ParseError{Err: err}
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &ParseError{Err: err}
	}

	sch, err := compiledSchema()
	if err != nil {
		return &SchemaError{Path: "$", Detail: fmt.Sprintf("schema unavailable: %v", err)}
	}

	if err := sch.Validate(doc); err != nil {
		if ve, ok := err.(*sjsonschema.ValidationError); ok {
			leaf := flattenCauses(ve)[0]
			return &SchemaError{
				Path:   pointerPath(leaf.InstanceLocation),
				Detail: fmt.Sprintf("%v", leaf.ErrorKind),
			}
		}
		return &SchemaError{Path: "$", Detail: err.Error()}
	}
	return nil
}

// compiledSchema compiles the generated strategy schema. The schema is
// static for the process lifetime, so the compiled form is built once and
// shared by concurrent validations.
var (
	schemaOnce   sync.Once
	cachedSchema *sjsonschema.Schema
	schemaErr    error
)

func compiledSchema() (*sjsonschema.Schema, error) {
	schemaOnce.Do(func() {
		cachedSchema, schemaErr = buildSchema()
	})
	return cachedSchema, schemaErr
}

func buildSchema() (*sjsonschema.Schema, error) {
	schemaJSON, err := strategy.GenerateJSONSchema()
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}
	schemaDoc, err := sjsonschema.UnmarshalJSON(strings.NewReader(string(schemaJSON)))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource("strategy-v1.json", schemaDoc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	sch, err := c.Compile("strategy-v1.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return sch, nil
}

// flattenCauses recursively collects all leaf validation errors.
func flattenCauses(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenCauses(cause)...)
	}
	return flat
}

// pointerPath renders an instance location as $-rooted pointer notation:
// ["stints", "2", "compound"] → "$.stints[2].compound".
func pointerPath(location []string) string {
	var b strings.Builder
	b.WriteString("$")
	for _, seg := range location {
		if _, err := strconv.Atoi(seg); err == nil {
			fmt.Fprintf(&b, "[%s]", seg)
		} else {
			b.WriteString(".")
			b.WriteString(seg)
		}
	}
	return b.String()
}
