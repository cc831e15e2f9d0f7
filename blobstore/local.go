package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hupe1980/clusteval/internal/mmap"
)

// LocalStore implements BlobStore on the local filesystem.
// Names are slash-separated paths relative to the root.
type LocalStore struct {
	root string
}

// NewLocalStore returns a LocalStore rooted at root. An empty root resolves
// names against the working directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// Open maps the file into memory for a front-to-back read.
func (s *LocalStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := mmap.Map(s.path(name), mmap.HintSequential)
	if err != nil {
		return nil, err
	}
	return &contentBlob{
		content: f.Data,
		size:    int64(f.Len()),
		release: f.Unmap,
	}, nil
}

// Put writes data next to the target and renames it into place, so readers
// never observe a partial file.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := s.path(name)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
