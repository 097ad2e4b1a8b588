package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobfiller/internal/types"
)

func TestStructureCommand(t *testing.T) {
	dir := isolate(t)
	outDir := filepath.Join(dir, "out")
	text := writeFile(t, dir, "jane.txt", "Jane Doe\njane@x.com\n\nSKILLS\nGo, SQL\n")
	doc := writeFile(t, dir, "john.json", `{"personal": {"name": "John Roe"}}`)

	out := mustExecute(t, "structure", text, doc, "--out", outDir, "--heuristic", "-c", "2")
	assert.Contains(t, out, "jane.resume.json (heuristic)")
	assert.Contains(t, out, "john.resume.json (json)")

	data, err := os.ReadFile(filepath.Join(outDir, "jane.resume.json"))
	require.NoError(t, err)
	parsed, err := types.ParseDocument(data)
	require.NoError(t, err)
	resume, err := parsed.Resume()
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", resume.Personal.Email)

	assert.FileExists(t, filepath.Join(outDir, "jane.meta.json"))
	assert.FileExists(t, filepath.Join(outDir, "john.resume.json"))
}

func TestStructureCommand_Errors(t *testing.T) {
	dir := isolate(t)

	_, err := execute(t, "structure", "x.txt")
	assert.ErrorContains(t, err, "required flag")

	_, err = execute(t, "structure", filepath.Join(dir, "missing.txt"), "--out", dir)
	assert.ErrorContains(t, err, "missing.txt")

	_, err = execute(t, "structure", "x.txt", "--out", dir, "-c", "0")
	assert.ErrorContains(t, err, "--concurrency")
}
