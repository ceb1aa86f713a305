// Package mmap hands out anonymous, private, read-write memory mappings.
//
// Each call to Map returns a fresh mapping that lives outside the Go heap, so
// the garbage collector neither scans nor moves it. Callers release it with
// Unmap, passing the exact slice Map returned (not a sub-slice).
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE
//   - Everything else: a page-aligned heap buffer; Unmap is a no-op and the
//     buffer is reclaimed by the garbage collector
package mmap

import "errors"

var (
	// ErrInvalidSize is returned when a mapping of a non-positive size is requested.
	ErrInvalidSize = errors.New("mmap: invalid size")
	// ErrNotMapped is returned when Unmap is given an empty slice.
	ErrNotMapped = errors.New("mmap: not mapped")
)
