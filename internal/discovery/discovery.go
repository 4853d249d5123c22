// Package discovery locates schema files under a root directory using
// glob patterns with ignore rules.
package discovery

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery walks a tree and matches schema files against include and
// ignore patterns.
type FileDiscovery struct {
	rootDir        string
	schemaPatterns []compiledPattern
	ignorePatterns []compiledPattern
}

// New compiles the given patterns for the root directory.
func New(rootDir string, schemaPatterns, ignorePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{rootDir: rootDir}

	for _, pattern := range schemaPatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		fd.schemaPatterns = append(fd.schemaPatterns, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		fd.ignorePatterns = append(fd.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return fd, nil
}

// Discover walks the root and returns matching schema files in walk order.
func (fd *FileDiscovery) Discover() ([]string, error) {
	files := []string{}

	err := filepath.Walk(fd.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}
		// Normalize path separators for glob matching
		relPath = filepath.ToSlash(relPath)

		if fd.shouldIgnore(relPath) {
			return nil
		}
		if matchesAny(relPath, fd.schemaPatterns) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// shouldIgnore checks if a path matches any ignore pattern. The .langgen
// directory is always skipped.
func (fd *FileDiscovery) shouldIgnore(relPath string) bool {
	if strings.HasPrefix(relPath, ".langgen/") || relPath == ".langgen" {
		return true
	}
	return matchesAny(relPath, fd.ignorePatterns)
}

func matchesAny(relPath string, patterns []compiledPattern) bool {
	for _, p := range patterns {
		if p.glob.Match(relPath) {
			return true
		}
	}
	return false
}
