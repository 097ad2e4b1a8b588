package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResume_Valid(t *testing.T) {
	doc := `{
		"personal": {"name": "Jane Doe", "email": "jane@example.com", "phone": "555-123-4567"},
		"summary": "Engineer.",
		"experience": [{"company": "Acme", "title": "Engineer", "bullets": ["Shipped"]}],
		"education": [{"school": "State University", "gpa": 3.8}],
		"skills": ["Go", "SQL"]
	}`
	assert.NoError(t, ValidateResume([]byte(doc)))
}

func TestValidateResume_MissingPersonal(t *testing.T) {
	err := ValidateResume([]byte(`{"skills": ["Go"]}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, ResumeSchema, validationErr.Schema)
	assert.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, err.Error(), "personal")
}

func TestValidateResume_WrongType(t *testing.T) {
	err := ValidateResume([]byte(`{"personal": {"name": "Jane"}, "skills": "Go, SQL"}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "skills", validationErr.Errors[0].Field)
}

func TestValidateResume_NotJSON(t *testing.T) {
	err := ValidateResume([]byte(`not json`))
	require.Error(t, err)

	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestValidateValue_Assignments(t *testing.T) {
	valid := map[string]any{"id:email": "personal.email", "name:first": "personal.firstName"}
	assert.NoError(t, ValidateValue(AssignmentsSchema, valid))

	badKey := map[string]any{"email": "personal.email"}
	assert.Error(t, ValidateValue(AssignmentsSchema, badKey))

	badValue := map[string]any{"id:email": 3}
	assert.Error(t, ValidateValue(AssignmentsSchema, badValue))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "missing.schema.json", loadErr.Path)
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name": "x"}`))

	err := ValidateJSONString(schema, `{}`)
	require.Error(t, err)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)

	err = ValidateJSONString(`{"type": 12}`, `{}`)
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}
