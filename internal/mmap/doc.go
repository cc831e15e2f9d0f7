// Package mmap exposes whole files as read-only byte slices.
//
//	f, err := mmap.Map("points.txt", mmap.HintSequential)
//	if err != nil { ... }
//	defer f.Unmap()
//
//	data, err := f.Data()
//
// Unix platforms use mmap(2) and madvise(2); Windows uses a read-only file
// view and ignores hints. Data stays valid until Unmap.
package mmap
