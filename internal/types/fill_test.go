package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	r := OK("Filled %d of %d fields", 2, 3)
	assert.True(t, r.Success)
	assert.Equal(t, "Filled 2 of 3 fields", r.Message)
	assert.NoError(t, r.Err)
}

func TestFail(t *testing.T) {
	cause := errors.New("storage unavailable")
	r := Fail("Error saving field mappings", cause)
	assert.False(t, r.Success)
	assert.Equal(t, "Error saving field mappings: storage unavailable", r.Message)
	assert.ErrorIs(t, r.Err, cause)
}

func TestFillOutcome_JSON(t *testing.T) {
	out := FillOutcome{
		Result: Fail("Error filling form", errors.New("boom")),
		FillID: "abc",
		Counts: FillResult{Total: 3, Filled: 1, Skipped: 1, Failed: 1},
	}
	data, err := json.Marshal(out)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, "Error filling form: boom", decoded["message"])
	assert.NotContains(t, decoded, "Err")
	assert.Equal(t, map[string]any{"total": 3.0, "filled": 1.0, "skipped": 1.0, "failed": 1.0}, decoded["counts"])
}
