package config

import "fmt"

// validTargets enumerates supported target languages.
var validTargets = map[string]bool{
	"rust": true,
	"go":   true,
}

// Validate checks a configuration for values the generator cannot run with.
func Validate(cfg *Config) error {
	if !validTargets[cfg.Generator.Target] {
		return fmt.Errorf("generator.target: unknown target %q (want rust or go)", cfg.Generator.Target)
	}
	if cfg.Generator.OutputDir == "" {
		return fmt.Errorf("generator.output_dir: must not be empty")
	}
	if cfg.Generator.DebounceMillis < 0 {
		return fmt.Errorf("generator.debounce_millis: must not be negative")
	}
	if len(cfg.Paths.Schemas) == 0 {
		return fmt.Errorf("paths.schemas: at least one pattern is required")
	}
	return nil
}
