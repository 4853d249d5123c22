package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for configuration:
// - Defaults are valid on their own
// - A config file under .langgen overrides defaults
// - An explicit config file path bypasses the directory search, and a
//   missing explicit file is an error
// - Environment variables override the config file
// - Validate rejects unknown targets, empty output dirs, negative
//   debounce, and empty schema patterns

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, "rust", cfg.Generator.Target)
	assert.Equal(t, "generated", cfg.Generator.OutputDir)
	assert.True(t, cfg.Generator.ManifestEnabled)
}

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	cfgDir := filepath.Join(tmpDir, ".langgen")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))

	yml := "generator:\n  target: go\n  output_dir: out\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yml"), []byte(yml), 0o644))

	cfg, err := LoadFromDir(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "go", cfg.Generator.Target)
	assert.Equal(t, "out", cfg.Generator.OutputDir)
	// Untouched keys keep their defaults.
	assert.Equal(t, Default().Paths.Schemas, cfg.Paths.Schemas)
}

func TestLoadFromFile_ExplicitPathIsHonored(t *testing.T) {
	t.Parallel()

	// The file lives outside any .langgen directory, with a name the
	// directory search would never find.
	path := filepath.Join(t.TempDir(), "custom.yml")
	yml := "generator:\n  target: go\n  output_dir: elsewhere\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "go", cfg.Generator.Target)
	assert.Equal(t, "elsewhere", cfg.Generator.OutputDir)
	assert.Equal(t, Default().Paths.Schemas, cfg.Paths.Schemas)
}

func TestLoadFromFile_MissingFileIsAnError(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverridesConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfgDir := filepath.Join(tmpDir, ".langgen")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yml"),
		[]byte("generator:\n  target: go\n"), 0o644))

	t.Setenv("LANGGEN_GENERATOR_TARGET", "rust")

	cfg, err := LoadFromDir(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "rust", cfg.Generator.Target)
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	cfgDir := filepath.Join(tmpDir, ".langgen")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yml"),
		[]byte("generator:\n  target: cobol\n"), 0o644))

	_, err := LoadFromDir(tmpDir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown target", func(c *Config) { c.Generator.Target = "cobol" }},
		{"empty output dir", func(c *Config) { c.Generator.OutputDir = "" }},
		{"negative debounce", func(c *Config) { c.Generator.DebounceMillis = -1 }},
		{"no schema patterns", func(c *Config) { c.Paths.Schemas = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}
