package arena

import (
	"fmt"
	"math"
)

// DefaultChunkSize is the default growth granularity for new chunks (4 MiB).
const DefaultChunkSize = 4 << 20

// Arena is an ordered chain of chunks. Allocation searches the chain from
// the oldest chunk and appends a new chunk when none has room.
//
// The zero value is an empty arena with default options. Arena is not safe
// for concurrent use.
type Arena struct {
	// chunks[0] is the head and chunks[len-1] the tail; each chunk's header
	// links to the index of the next one.
	chunks []*Chunk
	opts   options
}

// New creates an empty Arena. No memory is mapped until the first allocation.
func New(opts ...Option) *Arena {
	a := &Arena{}
	for _, opt := range opts {
		opt(&a.opts)
	}
	return a
}

// Allocate returns size bytes whose first byte is aligned to alignment,
// which must be a power of two.
//
// The returned slice stays valid until the arena is cleared, reset, freed or
// coalesced. Without SoftFail a mapping failure runs the out-of-memory
// handler, which by default panics.
func (a *Arena) Allocate(size, alignment int, flags Flags) ([]byte, error) {
	if a == nil || size <= 0 || !isPowerOfTwo(alignment) {
		return nil, ErrInvalidArgument
	}
	n, ok := roundUp(size, alignment)
	if !ok {
		return nil, ErrOverflow
	}
	growth, ok := a.growthSize(n, alignment)
	if !ok {
		return nil, ErrOverflow
	}

	if a.head() == noChunk {
		c, err := a.acquire(growth, flags)
		if err != nil {
			return nil, err
		}
		a.link(c)
	}

	// First fit, oldest chunk first.
	for i := a.head(); i != noChunk; i = a.chunks[i].Next() {
		c := a.live(i)
		if start, ok := c.claim(n, alignment); ok {
			return c.region(start, size), nil
		}
	}

	c, err := a.acquire(growth, flags)
	if err != nil {
		return nil, err
	}
	start, ok := c.claim(n, alignment)
	if !ok {
		a.release(c)
		return nil, ErrOverflow
	}
	a.link(c)
	return c.region(start, size), nil
}

// Push allocates len(data) bytes aligned to alignment and copies data into them.
func (a *Arena) Push(data []byte, alignment int, flags Flags) ([]byte, error) {
	if a == nil || len(data) == 0 {
		return nil, ErrInvalidArgument
	}
	b, err := a.Allocate(len(data), alignment, flags)
	if err != nil {
		return nil, err
	}
	copy(b, data)
	return b, nil
}

// EnsureCapacity makes sure the next Allocate(size, alignment, ...) is served
// without mapping a new chunk, mapping one now if no chunk has room.
func (a *Arena) EnsureCapacity(size, alignment int, flags Flags) error {
	if a == nil || size <= 0 || !isPowerOfTwo(alignment) {
		return ErrInvalidArgument
	}
	n, ok := roundUp(size, alignment)
	if !ok {
		return ErrOverflow
	}
	growth, ok := a.growthSize(n, alignment)
	if !ok {
		return ErrOverflow
	}
	for i := a.head(); i != noChunk; i = a.chunks[i].Next() {
		if _, ok := a.live(i).fit(n, alignment); ok {
			return nil
		}
	}
	c, err := a.acquire(growth, flags)
	if err != nil {
		return err
	}
	a.link(c)
	return nil
}

// Head returns the oldest chunk, or nil for an empty arena.
func (a *Arena) Head() *Chunk {
	return a.Chunk(a.head())
}

// Tail returns the most recently appended chunk, or nil for an empty arena.
func (a *Arena) Tail() *Chunk {
	return a.Chunk(a.tail())
}

// Chunk returns the i-th chunk in chain order, or nil if out of range.
func (a *Arena) Chunk(i int) *Chunk {
	if a == nil || i < 0 || i >= len(a.chunks) {
		return nil
	}
	return a.chunks[i]
}

func (a *Arena) head() int {
	if a == nil || len(a.chunks) == 0 {
		return noChunk
	}
	return 0
}

func (a *Arena) tail() int {
	if a == nil {
		return noChunk
	}
	return len(a.chunks) - 1
}

// link appends c as the new tail.
func (a *Arena) link(c *Chunk) {
	idx := len(a.chunks)
	if t := a.tail(); t != noChunk {
		a.chunks[t].hdr.next = int64(idx)
	}
	c.hdr.next = noChunk
	a.chunks = append(a.chunks, c)
}

// acquire maps a chunk charged to the arena's acquirer and applies the
// arena's out-of-memory policy.
func (a *Arena) acquire(size int, flags Flags) (*Chunk, error) {
	c, err := acquireChunk(size, flags, a.opts.acquirer)
	return c, checkOutOfMemory(err, flags, a.opts.onOOM)
}

// release unmaps a chunk obtained from acquire; ReleaseChunk returns its
// reservation.
func (a *Arena) release(c *Chunk) {
	ReleaseChunk(c)
}

// live returns chunk i, panicking if it was released behind the arena's back.
func (a *Arena) live(i int) *Chunk {
	c := a.chunks[i]
	if c.hdr == nil {
		panic(fmt.Sprintf("%s (chunk %d released outside its arena)", corruptHeader, i))
	}
	return c
}

// growthSize returns the capacity of a chunk mapped to hold an n-byte
// allocation at the given alignment. Chunks are a multiple of the
// granularity and never smaller than it; a request that does not fit the
// granularity gets at least twice its worst-case size.
func (a *Arena) growthSize(n, alignment int) (int, bool) {
	g := a.opts.granularity()
	if n > math.MaxInt-(alignment-1) {
		return 0, false
	}
	want := n + alignment - 1
	if want <= g {
		return g, true
	}
	if want > math.MaxInt/2 {
		return 0, false
	}
	return roundUp(2*want, g)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// roundUp rounds n up to a multiple of m (m > 0).
func roundUp(n, m int) (int, bool) {
	if n > math.MaxInt-(m-1) {
		return 0, false
	}
	return (n + m - 1) / m * m, true
}
