package arena

import (
	"math"
	"unsafe"
)

// The helpers below place Go values in arena memory. The garbage collector
// does not scan arena chunks, so T must not contain pointers, slices,
// strings, maps, channels, funcs or interfaces that are the only reference
// to heap memory.

// Alloc returns a pointer to a zeroed T stored inside the arena, aligned to
// T's natural alignment.
func Alloc[T any](a *Arena, flags Flags) (*T, error) {
	var zero T
	b, err := a.Allocate(sizeOf(zero), int(unsafe.Alignof(zero)), flags)
	if err != nil {
		return nil, err
	}
	clear(b)
	return (*T)(unsafe.Pointer(unsafe.SliceData(b))), nil
}

// PushValue copies v into the arena and returns a pointer to the copy.
func PushValue[T any](a *Arena, v T, flags Flags) (*T, error) {
	b, err := a.Allocate(sizeOf(v), int(unsafe.Alignof(v)), flags)
	if err != nil {
		return nil, err
	}
	p := (*T)(unsafe.Pointer(unsafe.SliceData(b)))
	*p = v
	return p, nil
}

// MakeSlice allocates a zeroed slice of n elements of type T inside the arena.
// n must be positive.
func MakeSlice[T any](a *Arena, n int, flags Flags) ([]T, error) {
	if n <= 0 {
		return nil, ErrInvalidArgument
	}
	b, err := allocElems[T](a, n, flags)
	if err != nil {
		return nil, err
	}
	clear(b)
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), nil
}

// PushSlice copies s into the arena and returns the copy.
// s must not be empty.
func PushSlice[T any](a *Arena, s []T, flags Flags) ([]T, error) {
	if len(s) == 0 {
		return nil, ErrInvalidArgument
	}
	b, err := allocElems[T](a, len(s), flags)
	if err != nil {
		return nil, err
	}
	dst := unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), len(s))
	copy(dst, s)
	return dst, nil
}

func allocElems[T any](a *Arena, n int, flags Flags) ([]byte, error) {
	var zero T
	elem := int(unsafe.Sizeof(zero))
	if elem > 0 && n > math.MaxInt/elem {
		return nil, ErrOverflow
	}
	total := elem * n
	if total == 0 {
		total = 1
	}
	return a.Allocate(total, int(unsafe.Alignof(zero)), flags)
}

// sizeOf returns the allocation size for v; zero-sized types still take
// one byte so that every pointer handed out is distinct and in bounds.
func sizeOf[T any](v T) int {
	if s := int(unsafe.Sizeof(v)); s > 0 {
		return s
	}
	return 1
}
