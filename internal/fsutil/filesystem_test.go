package fsutil

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem(t *testing.T) {
	t.Parallel()

	m := NewMemoryFileSystem()

	_, err := m.ReadFile("absent.csv")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.False(t, m.Exists("absent.csv"))

	require.NoError(t, m.WriteFile("data/accidents.csv", []byte("an,date,grav\n"), 0o644))
	assert.True(t, m.Exists("data/accidents.csv"))

	data, err := m.ReadFile("data/accidents.csv")
	require.NoError(t, err)
	assert.Equal(t, "an,date,grav\n", string(data))

	info, err := m.Stat("data/accidents.csv")
	require.NoError(t, err)
	assert.Equal(t, "accidents.csv", info.Name())
	assert.Equal(t, int64(13), info.Size())
}

func TestMemoryFileSystemReadIsACopy(t *testing.T) {
	t.Parallel()

	m := NewMemoryFileSystem()
	require.NoError(t, m.WriteFile("f", []byte("abc"), 0o644))

	data, err := m.ReadFile("f")
	require.NoError(t, err)
	data[0] = 'x'

	again, err := m.ReadFile("f")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestMemoryFileSystemCleansPaths(t *testing.T) {
	t.Parallel()

	m := NewMemoryFileSystem()
	require.NoError(t, m.WriteFile("./dir/../f.csv", []byte("x"), 0o644))
	assert.True(t, m.Exists("f.csv"))
}
