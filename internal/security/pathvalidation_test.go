package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePathWithinDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	assert.NoError(t, ValidatePathWithinDirectory(filepath.Join(dir, "out.csv"), dir))
	assert.NoError(t, ValidatePathWithinDirectory(filepath.Join(dir, "sub", "out.csv"), dir))

	// Traversal out of the safe directory is rejected even for paths
	// that do not exist yet.
	assert.Error(t, ValidatePathWithinDirectory(filepath.Join(dir, "..", "out.csv"), dir))
	assert.Error(t, ValidatePathWithinDirectory("/etc/passwd", dir))
}

func TestValidatePathWithinDirectorySymlink(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()

	link := filepath.Join(dir, "escape")
	require.NoError(t, os.Symlink(outside, link))

	assert.Error(t, ValidatePathWithinDirectory(filepath.Join(link, "out.csv"), dir))
}

func TestValidateExportPath(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateExportPath(filepath.Join(os.TempDir(), "aggregate.csv")))
	assert.NoError(t, ValidateExportPath("aggregate.csv"))
	assert.Error(t, ValidateExportPath("/nonexistent-root-dir/aggregate.csv"))
}
