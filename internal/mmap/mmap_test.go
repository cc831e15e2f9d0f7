package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMap(t *testing.T) {
	path := tempFile(t, "1.5,2.5\n3,4\n")

	f, err := Map(path, HintSequential)
	require.NoError(t, err)
	defer f.Unmap()

	assert.Equal(t, path, f.Name())
	assert.Equal(t, 12, f.Len())

	data, err := f.Data()
	require.NoError(t, err)
	assert.Equal(t, "1.5,2.5\n3,4\n", string(data))

	for _, h := range []Hint{HintNormal, HintRandom, HintWillNeed, HintDontNeed, Hint(200)} {
		assert.NoError(t, f.Hint(h))
	}
}

func TestMap_Empty(t *testing.T) {
	f, err := Map(tempFile(t, ""), HintSequential)
	require.NoError(t, err)

	assert.Zero(t, f.Len())
	data, err := f.Data()
	require.NoError(t, err)
	assert.Empty(t, data)
	require.NoError(t, f.Unmap())
}

func TestMap_Missing(t *testing.T) {
	_, err := Map(filepath.Join(t.TempDir(), "missing"), HintNormal)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUnmap(t *testing.T) {
	f, err := Map(tempFile(t, "abc"), HintNormal)
	require.NoError(t, err)

	require.NoError(t, f.Unmap())
	require.NoError(t, f.Unmap())

	_, err = f.Data()
	assert.ErrorIs(t, err, ErrUnmapped)
	assert.ErrorIs(t, f.Hint(HintSequential), ErrUnmapped)
}
