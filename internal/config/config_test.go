package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsWhenUnspecified(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corec.yaml")
	require.NoError(t, os.WriteFile(path, []byte("module: Demo\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Demo", cfg.Module)
	require.Equal(t, []string{"Integer", "Double"}, cfg.Defaults)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corec.yaml")
	doc := "module: Demo\ndefaults: [Int, Double]\nextensions:\n  GADTs: true\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Int", "Double"}, cfg.Defaults)
	require.True(t, cfg.Extensions["GADTs"])
}

func TestLoadRequiresModule(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corec.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults: [Int]\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/corec.yaml")
	require.Error(t, err)
}
