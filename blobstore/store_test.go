package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Open(ctx, "missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	content := []byte("0,0\n0,1\n10,0\n10,1\n")
	require.NoError(t, store.Put(ctx, "sets/points.txt", content))

	blob, err := store.Open(ctx, "sets/points.txt")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(len(content)), blob.Size())

	buf := make([]byte, 3)
	n, err := blob.ReadAt(ctx, buf, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "0,1", string(buf))

	n, err = blob.ReadAt(ctx, make([]byte, 10), int64(len(content))-2)
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, io.EOF)

	rc, err := blob.ReadRange(ctx, 8, 4)
	require.NoError(t, err)
	part, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "10,0", string(part))

	all, err := io.ReadAll(NewReader(ctx, blob))
	require.NoError(t, err)
	assert.Equal(t, content, all)

	copied, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, content, copied)

	// Put replaces existing content.
	require.NoError(t, store.Put(ctx, "sets/points.txt", []byte("1,2\n")))
	replaced, err := store.Open(ctx, "sets/points.txt")
	require.NoError(t, err)
	defer replaced.Close()
	assert.Equal(t, int64(4), replaced.Size())
}

func TestLocalStore(t *testing.T) {
	testStore(t, NewLocalStore(t.TempDir()))
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestLocalStore_NoTempFilesLeft(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root)
	require.NoError(t, store.Put(context.Background(), "report.json", []byte(`{"k":2}`)))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "report.json", entries[0].Name())

	data, err := os.ReadFile(filepath.Join(root, "report.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"k":2}`, string(data))
}

func TestLocalStore_EmptyBlob(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())
	require.NoError(t, store.Put(ctx, "empty.txt", nil))

	blob, err := store.Open(ctx, "empty.txt")
	require.NoError(t, err)
	defer blob.Close()

	assert.Zero(t, blob.Size())
	all, err := io.ReadAll(NewReader(ctx, blob))
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLocalStore_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewLocalStore(t.TempDir())
	assert.ErrorIs(t, store.Put(ctx, "x", []byte("x")), context.Canceled)
	_, err := store.Open(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore_List(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "b/2", nil))
	require.NoError(t, store.Put(ctx, "a/1", nil))
	require.NoError(t, store.Put(ctx, "b/1", nil))

	assert.Equal(t, []string{"b/1", "b/2"}, store.List("b/"))
	assert.Len(t, store.List(""), 3)
}

func TestMemoryStore_PutCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("abc")
	require.NoError(t, store.Put(ctx, "k", data))
	data[0] = 'x'

	blob, err := store.Open(ctx, "k")
	require.NoError(t, err)
	got, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestRemoteReadAt(t *testing.T) {
	ctx := context.Background()
	const content = "0123456789"

	var ranges []string
	fetch := func(_ context.Context, first, last int64) (io.ReadCloser, error) {
		ranges = append(ranges, fmt.Sprintf("%d-%d", first, last))
		return io.NopCloser(strings.NewReader(content[first : last+1])), nil
	}
	size := int64(len(content))

	buf := make([]byte, 4)
	n, err := RemoteReadAt(ctx, fetch, size, buf, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "3456", string(buf))

	n, err = RemoteReadAt(ctx, fetch, size, buf, 8)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "89", string(buf[:n]))

	_, err = RemoteReadAt(ctx, fetch, size, buf, size)
	assert.ErrorIs(t, err, io.EOF)

	n, err = RemoteReadAt(ctx, fetch, size, nil, 2)
	assert.NoError(t, err)
	assert.Zero(t, n)

	_, err = RemoteReadAt(ctx, fetch, size, buf, -1)
	assert.ErrorIs(t, err, ErrInvalidRange)

	rc, err := RemoteRange(ctx, fetch, size, 5, 100)
	require.NoError(t, err)
	tail, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "56789", string(tail))

	_, err = RemoteRange(ctx, fetch, size, 0, -1)
	assert.ErrorIs(t, err, ErrInvalidRange)

	assert.Equal(t, []string{"3-6", "8-9", "5-9"}, ranges)
}

func TestLocalStore_ClosedBlob(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())
	require.NoError(t, store.Put(ctx, "points.txt", []byte("1,2\n")))

	blob, err := store.Open(ctx, "points.txt")
	require.NoError(t, err)
	require.NoError(t, blob.Close())

	_, err = blob.ReadAt(ctx, make([]byte, 1), 0)
	assert.Error(t, err)
	_, err = ReadAll(ctx, blob)
	assert.Error(t, err)
}
