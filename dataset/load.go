package dataset

import (
	"bytes"
	"context"
	"fmt"

	"github.com/hupe1980/clusteval/blobstore"
)

// Load reads and parses the named blob, decompressing it if its name says so.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*Dataset, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = blob.Close() }()

	rc, err := Decompress(name, blobstore.NewReader(ctx, blob))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	d, err := Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

// Encode renders rows in the text format, compressed according to name.
func Encode(name string, rows [][]float64) ([]byte, error) {
	var buf bytes.Buffer
	w, err := Compress(name, &buf)
	if err != nil {
		return nil, err
	}
	if err := WriteRows(w, rows); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
