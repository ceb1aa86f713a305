//go:build !unix

package mmap

import (
	"os"
	"unsafe"
)

// Map returns size bytes of zeroed, page-aligned heap memory.
func Map(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	page := os.Getpagesize()
	if size > int(^uint(0)>>1)-page {
		return nil, ErrInvalidSize
	}
	buf := make([]byte, size+page)
	off := int(-uintptr(unsafe.Pointer(&buf[0])) & uintptr(page-1))
	return buf[off : off+size : off+size], nil
}

// Unmap is a no-op; the buffer is reclaimed by the garbage collector once
// it becomes unreachable.
func Unmap(mem []byte) error {
	if len(mem) == 0 {
		return ErrNotMapped
	}
	return nil
}
