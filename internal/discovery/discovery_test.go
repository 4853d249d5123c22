package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for discovery:
// - Schema patterns match nested files
// - Ignore patterns win over schema patterns
// - The .langgen directory is always skipped
// - Invalid glob patterns fail construction

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("class X<Y>\r\n{\r\n};\r\n"), 0o644))
}

func TestDiscover_MatchesNestedSchemas(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "steammsg.steamd"))
	writeFile(t, filepath.Join(tmpDir, "resources", "gamemsg.steamd"))
	writeFile(t, filepath.Join(tmpDir, "README.md"))

	fd, err := New(tmpDir, []string{"**.steamd"}, nil)
	require.NoError(t, err)

	files, err := fd.Discover()
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDiscover_IgnoreWins(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "steammsg.steamd"))
	writeFile(t, filepath.Join(tmpDir, "vendor", "old.steamd"))

	fd, err := New(tmpDir, []string{"**.steamd"}, []string{"vendor/**"})
	require.NoError(t, err)

	files, err := fd.Discover()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(tmpDir, "steammsg.steamd"), files[0])
}

func TestDiscover_LanggenDirSkipped(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".langgen", "cached.steamd"))

	fd, err := New(tmpDir, []string{"**.steamd"}, nil)
	require.NoError(t, err)

	files, err := fd.Discover()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestNew_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := New(t.TempDir(), []string{"[unclosed"}, nil)
	assert.Error(t, err)
}
