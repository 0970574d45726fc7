package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadConfig(t *testing.T) {
	tmp := t.TempDir()

	cfg := Default()
	cfg.ContentURL = "git@example.com:acme/content.git"
	cfg.IgnoreFile = ".syncignore"
	require.NoError(t, Save(tmp, cfg))

	loaded, err := Load(tmp)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	loaded, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}

func TestLoadCandidatePriority(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "contentsync.json"),
		[]byte(`{"content_dir": "primary"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "sync.json"),
		[]byte(`{"content_dir": "secondary"}`), 0o644))

	loaded, err := Load(tmp)
	require.NoError(t, err)
	assert.Equal(t, "primary", loaded.ContentDir)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "sync.json"),
		[]byte(`{"custom_dir": "elsewhere"}`), 0o644))

	loaded, err := Load(tmp)
	require.NoError(t, err)
	assert.Equal(t, "elsewhere", loaded.CustomDir)
	assert.Equal(t, Default().ContentURL, loaded.ContentURL)
	assert.Equal(t, Default().IgnoreFile, loaded.IgnoreFile)
}

func TestLoadMalformedFile(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "contentsync.json"),
		[]byte(`{not json`), 0o644))

	_, err := Load(tmp)
	assert.Error(t, err)
}
