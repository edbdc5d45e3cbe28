package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfig_Defaults tests struct-tag defaults.
func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "books.json", cfg.Catalog.Path)
	assert.True(t, cfg.Catalog.Lock)
	assert.False(t, cfg.Scan.FollowSymlinks)
	assert.Empty(t, cfg.Scan.Exclude)
	assert.Equal(t, 0, cfg.Engine.Threads)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Storage.Retain)
}

// TestLoadConfig_Environment tests environment and .env overrides.
func TestLoadConfig_Environment(t *testing.T) {
	dir := t.TempDir()
	env := "CATALOG_PATH=/srv/books.json\nENGINE_THREADS=3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))

	t.Setenv("SCAN_EXCLUDE", "drafts,**/*.tmp.pdf")
	t.Setenv("SCAN_FOLLOW_SYMLINKS", "true")
	// godotenv.Overload writes these into the process environment.
	t.Setenv("CATALOG_PATH", "")
	t.Setenv("ENGINE_THREADS", "")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/books.json", cfg.Catalog.Path)
	assert.Equal(t, 3, cfg.Engine.Threads)
	assert.True(t, cfg.Scan.FollowSymlinks)
	assert.Equal(t, []string{"drafts", "**/*.tmp.pdf"}, cfg.Scan.Exclude)
}
