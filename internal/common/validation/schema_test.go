package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"type": "object",
	"additionalProperties": false,
	"required": ["name", "age", "level"],
	"properties": {
		"name":  {"type": "string", "minLength": 1},
		"age":   {"type": "integer", "minimum": 18, "maximum": 120},
		"level": {"type": "string", "enum": ["beginner", "advanced"]}
	}
}`

func TestSchema_Validate(t *testing.T) {
	schema := MustCompile(personSchema)

	tests := []struct {
		name          string
		doc           interface{}
		expectedValid bool
		expectedField string
		expectedCode  string
	}{
		{
			name:          "valid go value",
			doc:           map[string]interface{}{"name": "Ana", "age": 30, "level": "beginner"},
			expectedValid: true,
		},
		{
			name:          "valid raw json",
			doc:           []byte(`{"name":"Ana","age":30,"level":"advanced"}`),
			expectedValid: true,
		},
		{
			name:          "missing field",
			doc:           `{"name":"Ana","level":"beginner"}`,
			expectedField: "age",
			expectedCode:  "REQUIRED_FIELD_MISSING",
		},
		{
			name:          "below minimum",
			doc:           map[string]interface{}{"name": "Ana", "age": 17, "level": "beginner"},
			expectedField: "age",
			expectedCode:  "RANGE_VIOLATION",
		},
		{
			name:          "not an integer",
			doc:           `{"name":"Ana","age":30.5,"level":"beginner"}`,
			expectedField: "age",
			expectedCode:  "INVALID_TYPE",
		},
		{
			name:          "unknown enum value",
			doc:           `{"name":"Ana","age":30,"level":"expert"}`,
			expectedField: "level",
			expectedCode:  "INVALID_ENUM_VALUE",
		},
		{
			name:          "extra property",
			doc:           `{"name":"Ana","age":30,"level":"beginner","nickname":"A"}`,
			expectedField: "nickname",
			expectedCode:  "EXTRA_FIELD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := schema.Validate(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedValid, result.Valid)

			if tt.expectedValid {
				assert.Empty(t, result.Errors)
				return
			}
			require.True(t, result.HasErrors(tt.expectedField), "errors: %v", result.GetErrorMessages())
			assert.Equal(t, tt.expectedCode, result.GetErrorsForField(tt.expectedField)[0].Code)
		})
	}
}

func TestValidationResult_GetErrorMessages(t *testing.T) {
	vr := &ValidationResult{Errors: []ValidationError{
		{Field: "age", Message: "Must be greater than or equal to 18"},
		{Field: "level", Message: "level must be one of the following"},
	}}

	assert.Equal(t, []string{
		"age: Must be greater than or equal to 18",
		"level: level must be one of the following",
	}, vr.GetErrorMessages())
	assert.False(t, vr.HasErrors("name"))
}

func TestCompile_Malformed(t *testing.T) {
	_, err := Compile(`{"type": 12}`)
	assert.Error(t, err)

	_, err = ValidateDocument(`not json`, map[string]interface{}{})
	assert.Error(t, err)
}

func TestSchema_MalformedDocument(t *testing.T) {
	_, err := MustCompile(personSchema).Validate([]byte(`{"name":`))
	assert.Error(t, err)
}
