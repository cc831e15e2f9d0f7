package mmap

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync/atomic"
)

// Hint tells the kernel how the mapped bytes will be read.
type Hint uint8

const (
	HintNormal Hint = iota
	HintSequential
	HintRandom
	HintWillNeed
	HintDontNeed
)

var (
	// ErrUnmapped is returned by accessors called after Unmap.
	ErrUnmapped = errors.New("mmap: file is unmapped")
	// ErrTooLarge is returned for files that do not fit the address space.
	ErrTooLarge = errors.New("mmap: file too large")
)

// File is a read-only mapping of a whole file. Empty files are represented
// without a mapping.
type File struct {
	name     string
	buf      []byte
	unmapped atomic.Bool
}

// Map maps the file at path and applies hint.
func Map(path string, hint Hint) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	info, err := fd.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() > math.MaxInt {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, path, info.Size())
	}

	f := &File{name: path}
	if info.Size() == 0 {
		return f, nil
	}

	if f.buf, err = mapFd(fd, int(info.Size())); err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	if err := f.Hint(hint); err != nil {
		_ = f.Unmap()
		return nil, err
	}
	return f, nil
}

// Name returns the path the file was mapped from.
func (f *File) Name() string { return f.name }

// Len returns the file size in bytes.
func (f *File) Len() int { return len(f.buf) }

// Data returns the mapped bytes. Callers must not write to them.
func (f *File) Data() ([]byte, error) {
	if f.unmapped.Load() {
		return nil, ErrUnmapped
	}
	return f.buf, nil
}

// Hint updates the access hint of the whole mapping.
func (f *File) Hint(h Hint) error {
	if f.unmapped.Load() {
		return ErrUnmapped
	}
	if len(f.buf) == 0 {
		return nil
	}
	return advise(f.buf, h)
}

// Unmap releases the mapping. Repeated calls are no-ops.
func (f *File) Unmap() error {
	if f.unmapped.Swap(true) || len(f.buf) == 0 {
		return nil
	}
	return unmap(f.buf)
}
