// Package generator orchestrates a generation run: discover schema files,
// compile each into a schema graph, render the configured target, and
// record the run in the manifest.
package generator

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/steamforge/langgen/internal/config"
	"github.com/steamforge/langgen/internal/discovery"
	"github.com/steamforge/langgen/internal/emit"
	"github.com/steamforge/langgen/internal/graph"
	"github.com/steamforge/langgen/internal/manifest"
	"github.com/steamforge/langgen/internal/steamd"
)

// ProgressReporter reports progress during a generation run.
type ProgressReporter interface {
	OnDiscoveryComplete(schemaFiles int)
	OnFileStart(totalFiles int)
	OnFileDone(processed, totalFiles int, fileName string)
	OnRunComplete(classes, skippedInputs int, duration time.Duration)
}

// Result summarizes one generation run.
type Result struct {
	Inputs   int // schema files discovered
	Compiled int // files actually compiled (not skipped)
	Skipped  int // files skipped as unchanged
	Classes  int // classes emitted across all files
	Outputs  []string
}

// Generator runs the compile-and-emit pipeline over a project directory.
type Generator struct {
	rootDir  string
	cfg      *config.Config
	store    *manifest.Store // nil when the manifest is disabled
	progress ProgressReporter
	force    bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithProgress configures progress reporting.
func WithProgress(p ProgressReporter) Option {
	return func(g *Generator) { g.progress = p }
}

// WithForce disables manifest-based skipping of unchanged inputs.
func WithForce(force bool) Option {
	return func(g *Generator) { g.force = force }
}

// WithManifest attaches a manifest store. Without one, every input is
// compiled on every run.
func WithManifest(store *manifest.Store) Option {
	return func(g *Generator) { g.store = store }
}

// New creates a Generator for rootDir with the given configuration.
func New(rootDir string, cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{rootDir: rootDir, cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run executes one generation pass. Malformed declarations inside a
// schema are skipped and logged, never fatal; unreadable or non-UTF-8
// inputs fail the run.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()

	fd, err := discovery.New(g.rootDir, g.cfg.Paths.Schemas, g.cfg.Paths.Ignore)
	if err != nil {
		return nil, fmt.Errorf("failed to compile path patterns: %w", err)
	}
	files, err := fd.Discover()
	if err != nil {
		return nil, fmt.Errorf("failed to discover schema files: %w", err)
	}
	if g.progress != nil {
		g.progress.OnDiscoveryComplete(len(files))
	}

	renderer, err := emit.ForTarget(g.cfg.Generator.Target)
	if err != nil {
		return nil, err
	}
	writer := emit.NewWriter(renderer, filepath.Join(g.rootDir, g.cfg.Generator.OutputDir))

	compiler := steamd.NewCompiler(func(d steamd.Diagnostic) {
		log.Printf("Warning: %s: skipped declaration %q: %v", d.Class, d.Raw, d.Err)
	})

	var run *manifest.Run
	inputs := make(map[string]manifest.InputRecord)
	if g.store != nil {
		run = g.store.BeginRun(g.cfg.Generator.Target)
	}

	result := &Result{Inputs: len(files)}
	if g.progress != nil {
		g.progress.OnFileStart(len(files))
	}

	for i, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		doc, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		relPath, err := filepath.Rel(g.rootDir, file)
		if err != nil {
			relPath = file
		}
		hash := manifest.HashContent(doc)

		if prev, found, err := g.lookup(relPath); err != nil {
			return nil, err
		} else if found && !g.force && prev.SHA256 == hash && fileExists(prev.OutputPath) {
			result.Skipped++
			inputs[relPath] = prev
			g.fileDone(i+1, len(files), file)
			continue
		}

		schema, err := compiler.Compile(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s: %w", file, err)
		}

		// Build the handoff graph and hand its walked view to the
		// emitter; rendering goes through the graph contract, not
		// around it.
		sg := graph.FromSchema(schema)
		walked, err := graph.Walk(sg)
		if err != nil {
			return nil, fmt.Errorf("failed to walk schema graph for %s: %w", file, err)
		}
		mergeArrayMetadata(walked, schema)

		outPath, err := writer.Write(relPath, walked)
		if err != nil {
			return nil, err
		}

		result.Compiled++
		result.Classes += len(schema.Classes)
		result.Outputs = append(result.Outputs, outPath)
		inputs[relPath] = manifest.InputRecord{SHA256: hash, OutputPath: outPath}
		g.fileDone(i+1, len(files), file)
	}

	if g.store != nil {
		run.Inputs = result.Inputs
		run.Classes = result.Classes
		if err := g.store.FinishRun(run, inputs); err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
	}

	if g.progress != nil {
		g.progress.OnRunComplete(result.Classes, result.Skipped, time.Since(startTime))
	}
	return result, nil
}

func (g *Generator) lookup(relPath string) (manifest.InputRecord, bool, error) {
	if g.store == nil {
		return manifest.InputRecord{}, false, nil
	}
	return g.store.Lookup(relPath)
}

func (g *Generator) fileDone(processed, total int, file string) {
	if g.progress != nil {
		g.progress.OnFileDone(processed, total, filepath.Base(file))
	}
}

// mergeArrayMetadata restores IsArray/ArraySize on a graph-walked schema.
// The graph carries only leaf labels, so array metadata rides alongside
// from the record model; positions match because both views preserve
// declaration order.
func mergeArrayMetadata(walked, source *steamd.Schema) {
	for i := range walked.Classes {
		if i >= len(source.Classes) {
			return
		}
		for j := range walked.Classes[i].Fields {
			if j >= len(source.Classes[i].Fields) {
				break
			}
			src := source.Classes[i].Fields[j]
			walked.Classes[i].Fields[j].IsArray = src.IsArray
			walked.Classes[i].Fields[j].ArraySize = src.ArraySize
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
