package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string // explicit path; skips the .langgen search when set
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (LANGGEN_*)
// 2. Config file (.langgen/config.yml or .langgen/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		configDir := filepath.Join(l.rootDir, ".langgen")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
	}

	// Enable environment variable overrides, e.g. LANGGEN_GENERATOR_TARGET
	v.SetEnvPrefix("LANGGEN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("generator.target")
	v.BindEnv("generator.output_dir")
	v.BindEnv("generator.debounce_millis")
	v.BindEnv("generator.manifest_enabled")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults registers Default() values with viper so partial config
// files inherit the rest.
func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("generator.target", def.Generator.Target)
	v.SetDefault("generator.output_dir", def.Generator.OutputDir)
	v.SetDefault("generator.debounce_millis", def.Generator.DebounceMillis)
	v.SetDefault("generator.manifest_enabled", def.Generator.ManifestEnabled)
	v.SetDefault("paths.schemas", def.Paths.Schemas)
	v.SetDefault("paths.ignore", def.Paths.Ignore)
}

// LoadFromDir is a convenience wrapper over NewLoader(...).Load().
func LoadFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}

// LoadFromFile loads configuration from an explicit config file path.
// Unlike the directory search, a missing file is an error here: the
// caller asked for that exact file.
func LoadFromFile(path string) (*Config, error) {
	return (&loader{configFile: path}).Load()
}
