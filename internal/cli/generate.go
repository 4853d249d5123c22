package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/steamforge/langgen/internal/config"
	"github.com/steamforge/langgen/internal/generator"
	"github.com/steamforge/langgen/internal/manifest"
	"github.com/steamforge/langgen/internal/watcher"
)

var (
	quietFlag  bool
	watchFlag  bool
	forceFlag  bool
	targetFlag string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile steamd schemas into target-language structs",
	Long: `Generate discovers .steamd schema files, compiles each into a
schema graph, and renders one source file per input.

The generator:
  - Matches schema files against paths.schemas / paths.ignore globs
  - Extracts classes and normalizes field declarations
  - Builds the schema graph handed to the emitter
  - Writes generated sources to the output directory
  - Records content hashes so unchanged inputs are skipped

Examples:
  # Generate in the current directory
  langgen generate

  # Regenerate everything, ignoring the manifest
  langgen generate --force

  # Emit Go instead of the configured target
  langgen generate --target go

  # Watch for changes and regenerate
  langgen generate --watch
`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	generateCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for schema changes and regenerate")
	generateCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Compile every input even if unchanged")
	generateCmd.Flags().StringVarP(&targetFlag, "target", "t", "", "Override target language (rust or go)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling generation...")
		cancel()
	}()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	var cfg *config.Config
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
	} else {
		cfg, err = config.LoadFromDir(rootDir)
	}
	if err != nil {
		return err
	}
	if targetFlag != "" {
		cfg.Generator.Target = targetFlag
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}

	opts := []generator.Option{
		generator.WithProgress(NewCLIProgressReporter(quietFlag)),
		generator.WithForce(forceFlag),
	}

	if cfg.Generator.ManifestEnabled {
		store, err := openManifest(rootDir)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, generator.WithManifest(store))
	}

	gen := generator.New(rootDir, cfg, opts...)

	if _, err := gen.Run(ctx); err != nil {
		return err
	}

	if !watchFlag {
		return nil
	}
	return watchAndRegenerate(ctx, rootDir, cfg, gen)
}

// watchAndRegenerate blocks, re-running the generator whenever schema
// files change, until the context is cancelled.
func watchAndRegenerate(ctx context.Context, rootDir string, cfg *config.Config, gen *generator.Generator) error {
	debounce := time.Duration(cfg.Generator.DebounceMillis) * time.Millisecond
	w, err := watcher.New(rootDir, ".steamd", debounce)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Stop()

	regen := make(chan []string, 1)
	if err := w.Start(ctx, func(files []string) {
		select {
		case regen <- files:
		default:
			// A run is already queued; the next pass picks everything up.
		}
	}); err != nil {
		return err
	}

	log.Printf("Watching %s for schema changes...", rootDir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case files := <-regen:
			log.Printf("%d schema file(s) changed, regenerating", len(files))
			if _, err := gen.Run(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.Printf("Warning: regeneration failed: %v", err)
			}
		}
	}
}

func openManifest(rootDir string) (*manifest.Store, error) {
	dir := filepath.Join(rootDir, ".langgen")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create .langgen directory: %w", err)
	}
	return manifest.Open(filepath.Join(dir, "manifest.db"))
}
