// Package arena implements a region allocator (memory arena) backed by
// anonymous OS mappings.
//
// # Overview
//
// An arena hands out byte ranges by bumping a cursor inside large chunks of
// memory mapped straight from the OS, outside the Go heap. Allocations are
// never freed one by one; the whole arena is reset, cleared, copied,
// coalesced or freed at once. This suits workloads where many allocations
// share one lifetime:
//
//   - Parsers and compilers building a tree for one input
//   - Request-scoped scratch memory
//   - Large buffers the garbage collector should not scan
//
// # Basic Usage
//
//	var a arena.Arena // the zero value is ready to use
//	defer a.Free(0)
//
//	// Raw bytes with an explicit alignment
//	buf, err := a.Allocate(1024, 64, 0)
//
//	// Copy a buffer in
//	rec, err := a.Push([]byte("header"), 8, 0)
//
//	// Typed values (pointer-free types only)
//	p, err := arena.Alloc[Point](&a, 0)
//	xs, err := arena.MakeSlice[float64](&a, 128, 0)
//
//	// Logically empty again, chunks kept for reuse
//	a.Reset()
//
// # Memory Layout
//
// Each chunk is one mapping: a small header followed by the data buffer.
// A new chunk is a multiple of the growth granularity (DefaultChunkSize,
// 4 MiB, unless WithChunkSize says otherwise); a request too large for it
// gets a chunk at least twice its size. Allocation is first fit: chunks are
// tried oldest first and the cursor of each is padded up to the requested
// alignment. Padding bytes are consumed and never reused.
// EnsureCapacity maps a chunk ahead of time when a burst of allocations
// must not stall on the OS.
//
// # Bulk Operations
//
//   - Reset: mark every chunk empty, memory untouched
//   - Clear: zero every chunk and mark it empty
//   - Free: unmap every chunk; the arena is empty and reusable afterwards
//   - Copy: deep-copy one arena into an empty one, all or nothing
//   - CropAndCoalesce: move all claimed bytes into one exactly sized chunk
//
// # Failure Handling
//
// Invalid arguments (nil arena, non-positive size, alignment that is not a
// power of two) return ErrInvalidArgument and change nothing. A mapping the
// OS refuses is an *OutOfMemoryError. By default it is passed to the
// out-of-memory handler, which panics; pass SoftFail to get the error back
// instead, or install a handler with WithOutOfMemoryHandler. A memory budget
// from package limit can be attached with WithMemoryAcquirer; a refused
// reservation fails exactly like a refused mapping.
//
// # Important Notes
//
//   - Allocated memory is valid until the arena is reset, cleared, coalesced
//     or freed
//   - An Arena is not safe for concurrent use; shard arenas per goroutine
//   - The garbage collector does not see arena memory: never store the only
//     reference to a heap object in it
//   - Nothing is released automatically; call Free
package arena
