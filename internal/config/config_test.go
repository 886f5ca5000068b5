package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.True(t, cfg.IncludeMetadata)
	assert.True(t, cfg.History)
	assert.Empty(t, cfg.ServerAddr)
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	assert.False(t, Exists())

	cfg := Default()
	cfg.Port = 9999
	cfg.ServerAddr = "http://localhost:9999"
	cfg.Language = "de"
	cfg.IncludeMetadata = false
	require.NoError(t, Save(cfg))

	assert.True(t, Exists())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	assert.Equal(t, Default(), LoadOrDefault())
}

func TestSavePath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "ytsubsdown", "config.yml"), SavePath())
}
