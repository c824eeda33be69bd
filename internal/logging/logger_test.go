package logging

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/goal-lattice/internal/config"
	"github.com/kingrea/goal-lattice/internal/goals"
)

func loadConfig(t *testing.T, level string) *config.Config {
	t.Helper()
	t.Setenv(config.LogLevelEnv, level)
	projectDir := t.TempDir()
	require.NoError(t, config.InitDir(projectDir))
	cfg, err := config.Load(projectDir)
	require.NoError(t, err)
	return cfg
}

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		entries = append(entries, entry)
	}
	return entries
}

func TestNewWritesStoreMutationsToLogFile(t *testing.T) {
	cfg := loadConfig(t, "debug")
	logger, err := New(cfg)
	require.NoError(t, err)

	store := goals.New(goals.WithLogger(logger.Logger))
	parent := store.CreateGoal("ship release")
	child := store.CreateGoal("write changelog")
	require.NoError(t, store.AddRequirement(parent.ID, child.ID))
	require.NoError(t, logger.Close())

	entries := readLines(t, cfg.LogPath())
	require.Len(t, entries, 3)
	assert.Equal(t, "goal created", entries[0]["msg"])
	assert.Equal(t, "ship release", entries[0]["title"])
	assert.Equal(t, "requirement added", entries[2]["msg"])
	assert.EqualValues(t, parent.ID, entries[2]["parent_id"])
	assert.EqualValues(t, child.ID, entries[2]["child_id"])
}

func TestNewRespectsLevel(t *testing.T) {
	cfg := loadConfig(t, "info")
	logger, err := New(cfg)
	require.NoError(t, err)

	store := goals.New(goals.WithLogger(logger.Logger))
	store.CreateGoal("quiet")
	logger.Info("store ready")
	require.NoError(t, logger.Close())

	entries := readLines(t, cfg.LogPath())
	require.Len(t, entries, 1)
	assert.Equal(t, "store ready", entries[0]["msg"])
	assert.Equal(t, "info", entries[0]["level"])
}

func TestNewAppendsAcrossInstances(t *testing.T) {
	cfg := loadConfig(t, "info")
	for _, msg := range []string{"first", "second"} {
		logger, err := New(cfg)
		require.NoError(t, err)
		logger.Info(msg)
		require.NoError(t, logger.Close())
	}

	entries := readLines(t, cfg.LogPath())
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0]["msg"])
	assert.Equal(t, "second", entries[1]["msg"])
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestNopAndNilClose(t *testing.T) {
	logger := Nop()
	logger.Info("discarded")
	assert.NoError(t, logger.Close())

	var missing *Logger
	assert.NoError(t, missing.Close())
}
