package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobfiller/internal/mapping"
)

func TestMappingsCommands(t *testing.T) {
	dir := isolate(t)

	out := mustExecute(t, "mappings", "list")
	assert.Contains(t, out, "No field mappings saved.")

	out = mustExecute(t, "mappings", "set", "example.com", "personal.email", "id:q-17", "re:e-?mail")
	assert.Contains(t, out, "Field mappings saved successfully")

	out = mustExecute(t, "mappings", "get", "example.com")
	assert.Contains(t, out, "personal.email")
	assert.Contains(t, out, "id:q-17, re:e-?mail")

	out = mustExecute(t, "mappings", "list")
	assert.Contains(t, out, "example.com")

	out = mustExecute(t, "mappings", "export", "example.com")
	assert.Contains(t, out, "domain: example.com")

	exported := filepath.Join(dir, "example.yaml")
	mustExecute(t, "mappings", "export", "example.com", "--out", exported)
	file, err := mapping.LoadFile(exported)
	require.NoError(t, err)
	patterns, ok := file.Mappings.Get("personal.email")
	require.True(t, ok)
	assert.Equal(t, []string{"id:q-17", "re:e-?mail"}, patterns)

	out = mustExecute(t, "mappings", "delete", "example.com")
	assert.Contains(t, out, "deleted")
	out = mustExecute(t, "mappings", "get", "example.com")
	assert.Contains(t, out, "Mappings for example.com (0 entries)")

	out = mustExecute(t, "mappings", "import", exported, "--domain", "jobs.example.org")
	assert.Contains(t, out, "Field mappings saved successfully")
	out = mustExecute(t, "mappings", "get", "jobs.example.org")
	assert.Contains(t, out, "personal.email")
}

func TestMappingsSet_RemovesPath(t *testing.T) {
	isolate(t)
	mustExecute(t, "mappings", "set", "example.com", "personal.email", "id:q-17")
	mustExecute(t, "mappings", "set", "example.com", "personal.phone", "id:tel")

	mustExecute(t, "mappings", "set", "example.com", "personal.email")
	out := mustExecute(t, "mappings", "get", "example.com")
	assert.NotContains(t, out, "personal.email")
	assert.Contains(t, out, "personal.phone")

	_, err := execute(t, "mappings", "set", "example.com", "personal.email")
	assert.ErrorContains(t, err, "no mapping for personal.email")
}

func TestMappingsSet_InvalidPattern(t *testing.T) {
	isolate(t)
	_, err := execute(t, "mappings", "set", "example.com", "personal.email", "re:(")
	assert.Error(t, err)
}
