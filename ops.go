package arena

// Clear zeroes the data buffer of every chunk and marks it unclaimed.
// Chunks are kept for reuse.
func (a *Arena) Clear() {
	if a == nil {
		return
	}
	for i := a.head(); i != noChunk; i = a.chunks[i].Next() {
		c := a.live(i)
		clear(c.data)
		c.hdr.offset = 0
	}
}

// Reset marks every chunk unclaimed without touching its memory.
// Bytes written before the reset stay readable until overwritten, so do not
// use Reset on arenas that held sensitive data.
func (a *Arena) Reset() {
	if a == nil {
		return
	}
	for i := a.head(); i != noChunk; i = a.chunks[i].Next() {
		a.live(i).hdr.offset = 0
	}
}

// Free releases every chunk and leaves the arena empty and reusable.
// With ZeroMem each data buffer is scrubbed before it is unmapped.
// Chunks already released through ReleaseChunk are skipped.
func (a *Arena) Free(flags Flags) {
	if a == nil {
		return
	}
	for _, c := range a.chunks {
		if flags&ZeroMem != 0 {
			clear(c.data)
		}
		a.release(c)
	}
	clear(a.chunks)
	a.chunks = nil
}

// CropAndCoalesce moves the claimed bytes of every chunk, in chain order,
// into one chunk of exactly Size() bytes and releases the old chunks.
// Alignment padding already claimed inside a chunk is carried over as is.
// The new data buffer starts headerSize (32) bytes past a page boundary, so
// regions that were aligned to more than 32 bytes may lose that alignment.
//
// It returns the coalesced region. On failure the arena is left untouched.
func (a *Arena) CropAndCoalesce(flags Flags) ([]byte, error) {
	if a == nil {
		return nil, ErrInvalidArgument
	}
	total := a.Size()
	if total == 0 {
		return nil, ErrEmpty
	}

	cropped, err := a.acquire(total, flags)
	if err != nil {
		return nil, err
	}

	off := 0
	for i := a.head(); i != noChunk; i = a.chunks[i].Next() {
		off += copy(cropped.data[off:], a.live(i).Bytes())
	}
	cropped.hdr.offset = int64(off)

	for i := a.head(); i != noChunk; {
		c := a.chunks[i]
		i = c.Next()
		a.release(c)
	}
	clear(a.chunks)
	a.chunks = a.chunks[:0]
	a.link(cropped)

	return cropped.Bytes(), nil
}

// Copy deep-copies src into dst, which must be empty. Each chunk of dst gets
// the capacity and claimed size of its counterpart in src; only claimed bytes
// are copied. Chunks are charged to dst's memory acquirer.
//
// If any mapping fails, every chunk already mapped for dst is scrubbed and
// released, leaving dst empty, before the error is returned or handed to
// dst's out-of-memory handler.
func Copy(dst, src *Arena, flags Flags) error {
	if dst == nil || src == nil || dst == src {
		return ErrInvalidArgument
	}
	if len(dst.chunks) != 0 {
		return ErrNotEmpty
	}

	for i := src.head(); i != noChunk; i = src.chunks[i].Next() {
		s := src.live(i)
		c, err := acquireChunk(s.Capacity(), flags, dst.opts.acquirer)
		if err != nil {
			dst.Free(ZeroMem)
			return checkOutOfMemory(err, flags, dst.opts.onOOM)
		}
		n := copy(c.data, s.Bytes())
		c.hdr.offset = int64(n)
		dst.link(c)
	}
	return nil
}
