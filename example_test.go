package arena

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unsafe"

	"github.com/pavanmanishd/arena/v2/limit"
)

// Example demonstrates basic arena usage
func Example() {
	// Create a new arena with the default chunk size
	a := New()
	defer a.Free(0) // Always clean up

	// Allocate raw bytes
	buf, _ := a.Allocate(1024, 8, 0)
	fmt.Printf("Allocated buffer of size: %d\n", len(buf))

	// Allocate a typed value (zeroed)
	ptr, _ := Alloc[int](a, 0)
	*ptr = 42
	fmt.Printf("Allocated int with value: %d\n", *ptr)

	// Allocate a slice
	slice, _ := MakeSlice[int](a, 5, 0)
	for i := range slice {
		slice[i] = i * 2
	}
	fmt.Printf("Allocated slice: %v\n", slice)

	// Check memory usage
	fmt.Printf("Memory in use: %d bytes\n", a.Size())
	fmt.Printf("Utilization: %.2f%%\n", a.Utilization()*100)

	// Reset for reuse
	a.Reset()
	fmt.Printf("After reset, memory in use: %d bytes\n", a.Size())

	// Output:
	// Allocated buffer of size: 1024
	// Allocated int with value: 42
	// Allocated slice: [0 2 4 6 8]
	// Memory in use: 1072 bytes
	// Utilization: 0.03%
	// After reset, memory in use: 0 bytes
}

// ExampleArena_Reset demonstrates arena reuse with Reset
func ExampleArena_Reset() {
	a := New(WithChunkSize(1024))
	defer a.Free(0)

	for round := 1; round <= 3; round++ {
		for i := 0; i < 5; i++ {
			_, _ = Alloc[int64](a, 0)
		}

		fmt.Printf("Round %d - Memory in use: %d bytes, chunks: %d\n", round, a.Size(), a.NumChunks())

		a.Reset()
	}

	// Output:
	// Round 1 - Memory in use: 40 bytes, chunks: 1
	// Round 2 - Memory in use: 40 bytes, chunks: 1
	// Round 3 - Memory in use: 40 bytes, chunks: 1
}

// ExampleArena_Metrics demonstrates monitoring arena usage
func ExampleArena_Metrics() {
	a := New(WithChunkSize(1024))
	defer a.Free(0)

	// Allocate various sizes to see metrics
	_, _ = a.Allocate(100, 1, 0)
	_, _ = Alloc[int64](a, 0) // padded to the next 8-byte boundary
	_, _ = MakeSlice[int32](a, 50, 0)

	metrics := a.Metrics()
	fmt.Printf("Metrics:\n")
	fmt.Printf("  Size in use: %d bytes\n", metrics.Size)
	fmt.Printf("  Capacity: %d bytes\n", metrics.Capacity)
	fmt.Printf("  Mapped: %d bytes\n", metrics.Mapped)
	fmt.Printf("  Chunks: %d\n", metrics.NumChunks)
	fmt.Printf("  Chunk size: %d bytes\n", metrics.ChunkSize)
	fmt.Printf("  Utilization: %.1f%%\n", metrics.Utilization*100)

	// Output:
	// Metrics:
	//   Size in use: 312 bytes
	//   Capacity: 1024 bytes
	//   Mapped: 1056 bytes
	//   Chunks: 1
	//   Chunk size: 1024 bytes
	//   Utilization: 30.5%
}

// ExampleArena_alignment demonstrates that allocations are properly aligned
func ExampleArena_alignment() {
	a := New(WithChunkSize(1024))
	defer a.Free(0)

	p8, _ := Alloc[int8](a, 0)
	p64, _ := Alloc[int64](a, 0)
	p32, _ := Alloc[int32](a, 0)
	buf, _ := a.Allocate(10, 64, 0)

	fmt.Printf("int8 misalignment: %d\n", uintptr(unsafe.Pointer(p8))%unsafe.Alignof(*p8))
	fmt.Printf("int64 misalignment: %d\n", uintptr(unsafe.Pointer(p64))%unsafe.Alignof(*p64))
	fmt.Printf("int32 misalignment: %d\n", uintptr(unsafe.Pointer(p32))%unsafe.Alignof(*p32))
	fmt.Printf("64-byte buffer misalignment: %d\n", uintptr(unsafe.Pointer(&buf[0]))%64)

	// Output:
	// int8 misalignment: 0
	// int64 misalignment: 0
	// int32 misalignment: 0
	// 64-byte buffer misalignment: 0
}

// ExampleArena_CropAndCoalesce packs a two-chunk arena into a single chunk.
func ExampleArena_CropAndCoalesce() {
	a := New(WithChunkSize(4096))
	defer a.Free(0)

	_, _ = a.Allocate(4090, 1, 0)
	_, _ = PushValue(a, int64(42), 0) // does not fit the first chunk
	fmt.Printf("Before: %d chunks, %d bytes\n", a.NumChunks(), a.Size())

	b, err := a.CropAndCoalesce(0)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("After: %d chunk, %d bytes, capacity %d\n", a.NumChunks(), len(b), a.Capacity())
	fmt.Printf("Pushed value: %d\n", binary.NativeEndian.Uint64(b[4090:]))

	// Output:
	// Before: 2 chunks, 4098 bytes
	// After: 1 chunk, 4098 bytes, capacity 4098
	// Pushed value: 42
}

// ExampleCopy duplicates an arena chunk for chunk.
func ExampleCopy() {
	src := New(WithChunkSize(1024))
	defer src.Free(0)
	_, _ = src.Push([]byte("hello, arena"), 1, 0)

	dst := New()
	defer dst.Free(0)
	if err := Copy(dst, src, 0); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%s\n", dst.Head().Bytes())
	fmt.Printf("Chunks: %d, capacity: %d\n", dst.NumChunks(), dst.Capacity())

	// Output:
	// hello, arena
	// Chunks: 1, capacity: 1024
}

// ExampleWithMemoryAcquirer caps the memory an arena may map.
func ExampleWithMemoryAcquirer() {
	budget := limit.NewController(limit.Config{MemoryLimitBytes: 8192})
	a := New(WithChunkSize(4096), WithMemoryAcquirer(budget))
	defer a.Free(0)

	_, _ = a.Allocate(4000, 1, SoftFail)
	fmt.Printf("Budget used: %d bytes\n", budget.MemoryUsage())

	// A second 4 KiB chunk plus its header no longer fits the budget.
	_, err := a.Allocate(4000, 1, SoftFail)
	fmt.Println(errors.Is(err, ErrOutOfMemory))

	// Output:
	// Budget used: 4128 bytes
	// true
}
