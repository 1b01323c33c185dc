package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInit_CreatesMemoryAndConfigFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, false))

	assert.FileExists(t, filepath.Join(dir, "MEMORY.md"))
	assert.FileExists(t, filepath.Join(dir, ".mind", "config.yaml"))
	assert.FileExists(t, filepath.Join(dir, ".mind", "project.toml"))
}

func TestRunInit_DoesNotOverwriteExistingFilesWithoutForce(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, false))

	memoryPath := filepath.Join(dir, "MEMORY.md")
	require.NoError(t, os.WriteFile(memoryPath, []byte("custom content"), 0o644))

	require.NoError(t, runInit(dir, false))
	data, err := os.ReadFile(memoryPath)
	require.NoError(t, err)
	assert.Equal(t, "custom content", string(data))
}

func TestRunInit_ForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, false))

	memoryPath := filepath.Join(dir, "MEMORY.md")
	require.NoError(t, os.WriteFile(memoryPath, []byte("custom content"), 0o644))

	require.NoError(t, runInit(dir, true))
	data, err := os.ReadFile(memoryPath)
	require.NoError(t, err)
	assert.NotEqual(t, "custom content", string(data))
}

func TestRunParse_MissingMemoryFile_ReturnsExitCode1(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, 1, runParse(dir, false, false))
}

func TestRunParse_ValidMemoryFile_ReturnsExitCode0(t *testing.T) {
	dir := t.TempDir()
	writeMemory(t, dir, "**Decided:** use SQLite because local-first\n")
	assert.Equal(t, 0, runParse(dir, false, true))
}

func TestRunSearch_ReturnsMatches(t *testing.T) {
	dir := t.TempDir()
	writeMemory(t, dir, "**Problem:** postgres connection pool exhausted\n")
	assert.Equal(t, 0, runSearch(dir, "postgres", "keyword_only", 5, true))
}

func TestRunPrimer_RendersBriefing(t *testing.T) {
	dir := t.TempDir()
	writeMemory(t, dir, "## Project State\n- Goal: ship the thing\n\n**Problem:** auth is broken\n")
	assert.Equal(t, 0, runPrimer(dir, false))
}

func writeMemory(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "MEMORY.md"), []byte(content), 0o644))
}
