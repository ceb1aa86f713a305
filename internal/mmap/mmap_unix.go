//go:build unix

package mmap

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Map returns size bytes of zero-filled anonymous memory.
func Map(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap: failed to map %d bytes: %w", size, err)
	}
	return mem, nil
}

// Unmap releases a mapping obtained from Map.
func Unmap(mem []byte) error {
	if len(mem) == 0 {
		return ErrNotMapped
	}
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("mmap: failed to unmap memory: %w", err)
	}
	return nil
}
