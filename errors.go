package arena

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for a nil arena or data source, a
	// non-positive size or an alignment that is not a power of two.
	ErrInvalidArgument = errors.New("arena: invalid argument")
	// ErrOverflow is returned when a size computation would overflow int.
	// It matches ErrInvalidArgument.
	ErrOverflow = fmt.Errorf("%w: size overflow", ErrInvalidArgument)
	// ErrOutOfMemory is matched by every mapping failure.
	ErrOutOfMemory = errors.New("arena: out of memory")
	// ErrNotEmpty is returned by Copy when the destination already owns chunks.
	ErrNotEmpty = errors.New("arena: destination arena is not empty")
	// ErrEmpty is returned by CropAndCoalesce when nothing is allocated.
	ErrEmpty = errors.New("arena: arena is empty")
)

// OutOfMemoryError reports a chunk mapping that could not be obtained,
// either because the OS refused it or a memory budget did.
type OutOfMemoryError struct {
	Size int // bytes requested from the OS, header included
	Err  error
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("arena: out of memory mapping %d bytes: %v", e.Size, e.Err)
}

func (e *OutOfMemoryError) Unwrap() error { return e.Err }

// Is reports whether target is ErrOutOfMemory.
func (e *OutOfMemoryError) Is(target error) bool { return target == ErrOutOfMemory }

// panicOnOutOfMemory is the default out-of-memory handler.
func panicOnOutOfMemory(err error) {
	panic(err)
}

// checkOutOfMemory hands a mapping failure to onOOM unless flags carry
// SoftFail. err is returned unchanged so a handler that returns lets the
// failure propagate as a value.
func checkOutOfMemory(err error, flags Flags, onOOM func(error)) error {
	if err == nil || flags&SoftFail != 0 || !errors.Is(err, ErrOutOfMemory) {
		return err
	}
	if onOOM == nil {
		onOOM = panicOnOutOfMemory
	}
	onOOM(err)
	return err
}
