//go:build unix

package mmap

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

var advice = [...]int{
	HintNormal:     unix.MADV_NORMAL,
	HintSequential: unix.MADV_SEQUENTIAL,
	HintRandom:     unix.MADV_RANDOM,
	HintWillNeed:   unix.MADV_WILLNEED,
	HintDontNeed:   unix.MADV_DONTNEED,
}

func mapFd(fd *os.File, length int) ([]byte, error) {
	return unix.Mmap(int(fd.Fd()), 0, length, unix.PROT_READ, unix.MAP_SHARED)
}

func unmap(buf []byte) error { return unix.Munmap(buf) }

func advise(buf []byte, h Hint) error {
	a := unix.MADV_NORMAL
	if int(h) < len(advice) {
		a = advice[h]
	}
	// EINVAL only means the kernel rejected the hint.
	if err := unix.Madvise(buf, a); err != nil && !errors.Is(err, unix.EINVAL) {
		return err
	}
	return nil
}
