package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(ResumeFile, KeyParseResumeUser)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Parse this resume into structured JSON")
	assert.Contains(t, prompt, "{{.Text}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(AutofillFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_AllKeys(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet(ResumeFile, KeyParseResumeUser))
		assert.NotEmpty(t, MustGet(AutofillFile, KeyMapFieldsSystem))
		assert.NotEmpty(t, MustGet(AutofillFile, KeyMapFieldsUser))
	})
}

func TestRender(t *testing.T) {
	ClearCache()

	prompt, err := Render(AutofillFile, KeyMapFieldsUser, map[string]string{
		"Fields": "id:email input[email] Email",
		"Resume": `{"personal":{}}`,
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "id:email input[email] Email")
	assert.Contains(t, prompt, `{"personal":{}}`)
	assert.NotContains(t, prompt, "{{.")
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		expected string
	}{
		{"replaces", "Hello {{.Name}}, welcome to {{.Company}}!", map[string]string{"Name": "Alice", "Company": "Acme Corp"}, "Hello Alice, welcome to Acme Corp!"},
		{"no placeholders", "No placeholders here", map[string]string{"Key": "Value"}, "No placeholders here"},
		{"missing value kept", "Hello {{.Name}}", map[string]string{}, "Hello {{.Name}}"},
		{"value is not re-expanded", "{{.A}}", map[string]string{"A": "{{.B}}", "B": "x"}, "{{.B}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.template, tt.data))
		})
	}
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List(AutofillFile)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyMapFieldsSystem, KeyMapFieldsUser}, keys)
}
