package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
)

var (
	// ErrNotFound is returned when a blob does not exist.
	// It matches os.ErrNotExist.
	ErrNotFound = os.ErrNotExist

	// ErrInvalidRange is returned for negative offsets or lengths.
	ErrInvalidRange = errors.New("blobstore: invalid range")
)

// BlobStore opens and writes named blobs. Implementations must be safe for
// concurrent use.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Put writes a blob, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error
}

// Blob is a read-only handle to a blob.
type Blob interface {
	io.Closer
	// ReadAt reads len(p) bytes at offset off.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// ReadRange returns a reader over at most length bytes starting at off.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
	// Size returns the size of the blob in bytes.
	Size() int64
}

// Mappable is implemented by blobs whose content is directly addressable.
type Mappable interface {
	// Bytes returns the content. The slice is valid until the blob is closed.
	Bytes() ([]byte, error)
}

// NewReader returns a reader over the whole blob.
func NewReader(ctx context.Context, b Blob) io.Reader {
	return io.NewSectionReader(readerAtFunc(func(p []byte, off int64) (int, error) {
		return b.ReadAt(ctx, p, off)
	}), 0, b.Size())
}

// ReadAll returns a copy of the blob's content.
func ReadAll(ctx context.Context, b Blob) ([]byte, error) {
	if m, ok := b.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		return bytes.Clone(data), nil
	}

	rc, err := b.ReadRange(ctx, 0, b.Size())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	return io.ReadAll(rc)
}

// RangeFunc fetches the inclusive byte range [first, last] of a remote object.
type RangeFunc func(ctx context.Context, first, last int64) (io.ReadCloser, error)

// RemoteReadAt implements Blob.ReadAt for a remote object of size bytes.
func RemoteReadAt(ctx context.Context, fetch RangeFunc, size int64, p []byte, off int64) (int, error) {
	first, last, ok, err := span(size, off, int64(len(p)))
	switch {
	case err != nil:
		return 0, err
	case !ok && len(p) == 0:
		return 0, nil
	case !ok:
		return 0, io.EOF
	}

	body, err := fetch(ctx, first, last)
	if err != nil {
		return 0, err
	}
	defer func() { _ = body.Close() }()

	n, err := io.ReadFull(body, p[:last-first+1])
	if err == nil && n < len(p) {
		err = io.EOF
	}
	return n, err
}

// RemoteRange implements Blob.ReadRange for a remote object of size bytes.
func RemoteRange(ctx context.Context, fetch RangeFunc, size, off, length int64) (io.ReadCloser, error) {
	first, last, ok, err := span(size, off, length)
	if err != nil {
		return nil, err
	}
	if !ok {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	return fetch(ctx, first, last)
}

// span clips length bytes at off to a blob of size bytes and returns the
// inclusive range. ok is false for an empty range.
func span(size, off, length int64) (first, last int64, ok bool, err error) {
	if off < 0 || length < 0 {
		return 0, 0, false, ErrInvalidRange
	}
	if length == 0 || off >= size {
		return 0, 0, false, nil
	}
	return off, min(off+length, size) - 1, true, nil
}

// contentBlob serves a Blob from addressable content.
type contentBlob struct {
	content func() ([]byte, error)
	size    int64
	release func() error
}

func (b *contentBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	data, err := b.content()
	if err != nil {
		return 0, err
	}
	if off < 0 {
		return 0, ErrInvalidRange
	}
	return bytes.NewReader(data).ReadAt(p, off)
}

func (b *contentBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	data, err := b.content()
	if err != nil {
		return nil, err
	}
	first, last, ok, err := span(int64(len(data)), off, length)
	if err != nil {
		return nil, err
	}
	if !ok {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	return io.NopCloser(bytes.NewReader(data[first : last+1])), nil
}

func (b *contentBlob) Bytes() ([]byte, error) { return b.content() }

func (b *contentBlob) Size() int64 { return b.size }

func (b *contentBlob) Close() error {
	if b.release == nil {
		return nil
	}
	return b.release()
}

type readerAtFunc func(p []byte, off int64) (int, error)

func (f readerAtFunc) ReadAt(p []byte, off int64) (int, error) { return f(p, off) }
