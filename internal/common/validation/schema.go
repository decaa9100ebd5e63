// Package validation checks job variables against JSON schemas with gojsonschema.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// rootField is how gojsonschema names the document root.
const rootField = "(root)"

// Schema is a compiled JSON schema, safe for concurrent use.
type Schema struct {
	schema *gojsonschema.Schema
}

// Compile parses a JSON schema document.
func Compile(schemaJSON string) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{schema: s}, nil
}

// MustCompile is Compile for package-level schemas; it panics on a malformed schema.
func MustCompile(schemaJSON string) *Schema {
	s, err := Compile(schemaJSON)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks doc, which may be raw JSON bytes, a json.RawMessage or any Go value.
func (s *Schema) Validate(doc interface{}) (*ValidationResult, error) {
	var loader gojsonschema.JSONLoader
	switch d := doc.(type) {
	case []byte:
		loader = gojsonschema.NewBytesLoader(d)
	case string:
		loader = gojsonschema.NewStringLoader(d)
	default:
		loader = gojsonschema.NewGoLoader(doc)
	}

	res, err := s.schema.Validate(loader)
	if err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}

	result := &ValidationResult{Valid: res.Valid()}
	for _, desc := range res.Errors() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   fieldOf(desc),
			Message: desc.Description(),
			Code:    codeOf(desc.Type()),
		})
	}
	return result, nil
}

// ValidateDocument compiles schemaJSON and validates doc against it.
func ValidateDocument(schemaJSON string, doc interface{}) (*ValidationResult, error) {
	s, err := Compile(schemaJSON)
	if err != nil {
		return nil, err
	}
	return s.Validate(doc)
}

// fieldOf names the offending property. Required and additional-property errors are
// reported on the parent object, so the property name is appended.
func fieldOf(desc gojsonschema.ResultError) string {
	field := desc.Field()
	switch desc.Type() {
	case "required", "additional_property_not_allowed":
		prop, ok := desc.Details()["property"].(string)
		if !ok || field == prop || strings.HasSuffix(field, "."+prop) {
			return field
		}
		if field == rootField {
			return prop
		}
		return field + "." + prop
	}
	return field
}

func codeOf(errType string) string {
	switch errType {
	case "required":
		return "REQUIRED_FIELD_MISSING"
	case "additional_property_not_allowed":
		return "EXTRA_FIELD"
	case "invalid_type":
		return "INVALID_TYPE"
	case "enum":
		return "INVALID_ENUM_VALUE"
	case "number_gte", "number_gt", "number_lte", "number_lt":
		return "RANGE_VIOLATION"
	default:
		return strings.ToUpper(errType)
	}
}

// GetErrorMessages renders each error as "field: message".
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return messages
}

func (vr *ValidationResult) HasErrors(field string) bool {
	return len(vr.GetErrorsForField(field)) > 0
}

func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var out []ValidationError
	for _, e := range vr.Errors {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}
