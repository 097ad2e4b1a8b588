package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobfiller/internal/config"
	"github.com/jonathan/jobfiller/internal/types"
)

func TestLoadConfig_Precedence(t *testing.T) {
	dir := isolate(t)
	t.Setenv("JOBFILLER_STORAGE", "")
	t.Cleanup(func() { resetFlags(rootCmd) })
	resetFlags(rootCmd)

	configPath = writeFile(t, dir, "config.json", `{"storage": "memory", "model": "gpt-4o", "port": 9000}`)
	require.NoError(t, loadConfig(nil, nil))
	assert.Equal(t, config.StorageMemory, cfg.Storage)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "openai", cfg.Provider)

	// env beats file
	t.Setenv("JOBFILLER_STORAGE", "sqlite")
	t.Setenv("JOBFILLER_MODEL", "gpt-4.1")
	require.NoError(t, loadConfig(nil, nil))
	assert.Equal(t, config.StorageSQLite, cfg.Storage)
	assert.Equal(t, "gpt-4.1", cfg.Model)

	// flags beat env
	storageFlag = config.StorageMemory
	logLevel = "debug"
	require.NoError(t, loadConfig(nil, nil))
	assert.Equal(t, config.StorageMemory, cfg.Storage)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := isolate(t)
	t.Cleanup(func() { resetFlags(rootCmd) })
	resetFlags(rootCmd)

	storageFlag = "mongo"
	assert.Error(t, loadConfig(nil, nil))

	storageFlag = ""
	configPath = writeFile(t, dir, "broken.json", `{"storage": `)
	assert.Error(t, loadConfig(nil, nil))
}

func TestReport(t *testing.T) {
	cmd := rootCmd
	assert.NoError(t, report(cmd, types.OK("done")))
	assert.NoError(t, report(cmd, types.Result{Message: "Filled 0 of 2 fields"}))
	assert.EqualError(t, report(cmd, types.Fail("Error saving", assert.AnError)), "Error saving: "+assert.AnError.Error())
}
