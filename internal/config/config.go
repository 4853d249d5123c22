package config

// Config is the complete langgen configuration. It can be loaded from
// .langgen/config.yml with environment variable overrides.
type Config struct {
	Generator GeneratorConfig `yaml:"generator" mapstructure:"generator"`
	Paths     PathsConfig     `yaml:"paths" mapstructure:"paths"`
}

// GeneratorConfig configures compilation and emission.
type GeneratorConfig struct {
	Target          string `yaml:"target" mapstructure:"target"`                     // "rust" or "go"
	OutputDir       string `yaml:"output_dir" mapstructure:"output_dir"`             // where generated files land
	DebounceMillis  int    `yaml:"debounce_millis" mapstructure:"debounce_millis"`   // watch-mode quiet period
	ManifestEnabled bool   `yaml:"manifest_enabled" mapstructure:"manifest_enabled"` // record runs, skip unchanged inputs
}

// PathsConfig defines which schema files to compile and which to skip.
type PathsConfig struct {
	Schemas []string `yaml:"schemas" mapstructure:"schemas"` // glob patterns for schema files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Target:          "rust",
			OutputDir:       "generated",
			DebounceMillis:  500,
			ManifestEnabled: true,
		},
		Paths: PathsConfig{
			Schemas: []string{"**.steamd"},
			Ignore: []string{
				".git/**",
				"generated/**",
				"target/**",
			},
		},
	}
}
