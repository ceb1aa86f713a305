package arena

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/pavanmanishd/arena/v2/internal/mmap"
)

// chunkMagic marks a live chunk header.
const chunkMagic uint64 = 0x676c61642d636b31

// noChunk terminates the chunk chain.
const noChunk = -1

const corruptHeader = "arena: corrupted chunk header"

// header sits at the start of every chunk mapping, ahead of the data buffer.
type header struct {
	magic    uint64
	next     int64 // index of the next chunk in the owning arena, or noChunk
	capacity int64
	offset   int64
}

const headerSize = int(unsafe.Sizeof(header{}))

// Chunk is a single mapping holding a header and the data buffer that
// allocations are carved from.
type Chunk struct {
	mem  []byte // whole mapping
	hdr  *header
	data []byte // mem[headerSize:]

	// acq is charged for the mapping and credited on release.
	acq MemoryAcquirer
}

// AcquireChunk maps a chunk with room for size bytes of data.
//
// Without SoftFail a mapping failure panics with an *OutOfMemoryError.
func AcquireChunk(size int, flags Flags) (*Chunk, error) {
	c, err := acquireChunk(size, flags, nil)
	return c, checkOutOfMemory(err, flags, nil)
}

// acquireChunk maps a chunk, charging acq first if it is set. Mapping
// failures are always returned as errors; callers apply the OOM policy.
func acquireChunk(size int, flags Flags, acq MemoryAcquirer) (*Chunk, error) {
	if size <= 0 {
		return nil, ErrInvalidArgument
	}
	if size > math.MaxInt-headerSize {
		return nil, ErrOverflow
	}
	total := headerSize + size

	if acq != nil {
		if err := acq.AcquireMemory(int64(total)); err != nil {
			return nil, &OutOfMemoryError{Size: total, Err: err}
		}
	}

	mem, err := mmap.Map(total)
	if err != nil {
		if acq != nil {
			acq.ReleaseMemory(int64(total))
		}
		return nil, &OutOfMemoryError{Size: total, Err: err}
	}
	if flags&ZeroMem != 0 {
		clear(mem)
	}

	c := &Chunk{
		mem:  mem,
		hdr:  (*header)(unsafe.Pointer(unsafe.SliceData(mem))),
		data: mem[headerSize:total:total],
		acq:  acq,
	}
	c.hdr.magic = chunkMagic
	c.hdr.next = noChunk
	c.hdr.capacity = int64(size)
	c.hdr.offset = 0
	return c, nil
}

// ReleaseChunk unmaps c and returns its reservation to the memory acquirer
// it was charged to. A nil or already released chunk is a no-op.
// A chunk whose header no longer describes its mapping panics: that is
// memory corruption, not a recoverable condition.
func ReleaseChunk(c *Chunk) {
	if c == nil || c.mem == nil {
		return
	}
	h := c.hdr
	if h.magic != chunkMagic || h.capacity != int64(len(c.mem)-headerSize) ||
		h.offset < 0 || h.offset > h.capacity {
		panic(fmt.Sprintf("%s (magic=%#x capacity=%d offset=%d mapping=%d)", corruptHeader,
			h.magic, h.capacity, h.offset, len(c.mem)))
	}
	if err := mmap.Unmap(c.mem); err != nil {
		panic(fmt.Sprintf("arena: release chunk: %v", err))
	}
	size := len(c.mem)
	c.mem, c.hdr, c.data = nil, nil, nil
	if c.acq != nil {
		c.acq.ReleaseMemory(int64(size))
		c.acq = nil
	}
}

// Capacity returns the number of data bytes the chunk can hold.
func (c *Chunk) Capacity() int {
	if c == nil || c.hdr == nil {
		return 0
	}
	return int(c.hdr.capacity)
}

// Offset returns the number of data bytes claimed, alignment padding included.
func (c *Chunk) Offset() int {
	if c == nil || c.hdr == nil {
		return 0
	}
	return int(c.hdr.offset)
}

// Available returns the unclaimed tail of the data buffer, before any
// alignment padding the next claim may need.
func (c *Chunk) Available() int {
	return c.Capacity() - c.Offset()
}

// Bytes returns the claimed prefix of the data buffer.
func (c *Chunk) Bytes() []byte {
	if c == nil || c.hdr == nil {
		return nil
	}
	n := int(c.hdr.offset)
	return c.data[:n:n]
}

// Data returns the whole data buffer, claimed or not.
func (c *Chunk) Data() []byte {
	if c == nil {
		return nil
	}
	return c.data
}

// Next returns the index of the following chunk in the owning arena, or -1.
func (c *Chunk) Next() int {
	if c == nil || c.hdr == nil {
		return noChunk
	}
	return int(c.hdr.next)
}

func (c *Chunk) mappedSize() int {
	return len(c.mem)
}

// claim reserves n bytes whose start address is a multiple of align
// (a power of two). The padding in front of it is consumed.
// It returns the start offset within the data buffer.
func (c *Chunk) claim(n, align int) (int, bool) {
	start, ok := c.fit(n, align)
	if !ok {
		return 0, false
	}
	c.hdr.offset = int64(start + n)
	return start, true
}

// fit reports where claim(n, align) would place its bytes.
func (c *Chunk) fit(n, align int) (int, bool) {
	off := int(c.hdr.offset)
	capacity := int(c.hdr.capacity)

	cursor := uintptr(unsafe.Pointer(unsafe.SliceData(c.data))) + uintptr(off)
	pad := int(-cursor & uintptr(align-1))
	if pad > capacity-off {
		return 0, false
	}
	start := off + pad
	if capacity-start < n {
		return 0, false
	}
	return start, true
}

// region returns the size-byte allocation claimed at start.
func (c *Chunk) region(start, size int) []byte {
	return c.data[start : start+size : start+size]
}
