package arena

// Size returns the number of bytes claimed across all chunks, alignment
// padding included. It walks the chain; no running total is kept.
func (a *Arena) Size() int {
	if a == nil {
		return 0
	}
	sum := 0
	for i := a.head(); i != noChunk; i = a.chunks[i].Next() {
		sum += a.live(i).Offset()
	}
	return sum
}

// NumChunks returns the number of chunks currently mapped by the arena.
func (a *Arena) NumChunks() int {
	if a == nil {
		return 0
	}
	return len(a.chunks)
}

// Capacity returns the total data capacity (in bytes) of all chunks.
func (a *Arena) Capacity() int {
	if a == nil {
		return 0
	}
	sum := 0
	for _, c := range a.chunks {
		sum += c.Capacity()
	}
	return sum
}

// Mapped returns the bytes mapped from the OS, chunk headers included.
func (a *Arena) Mapped() int {
	if a == nil {
		return 0
	}
	sum := 0
	for _, c := range a.chunks {
		sum += c.mappedSize()
	}
	return sum
}

// Utilization returns the ratio of claimed bytes to total capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.Size()) / float64(capacity)
}

// ChunkSize returns the growth granularity used for new chunks.
func (a *Arena) ChunkSize() int {
	if a == nil {
		return DefaultChunkSize
	}
	return a.opts.granularity()
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() Metrics {
	return Metrics{
		Size:        a.Size(),
		Capacity:    a.Capacity(),
		Mapped:      a.Mapped(),
		NumChunks:   a.NumChunks(),
		ChunkSize:   a.ChunkSize(),
		Utilization: a.Utilization(),
	}
}

// Metrics contains statistical information about an arena.
type Metrics struct {
	Size        int     // Bytes claimed, padding included
	Capacity    int     // Data capacity in bytes
	Mapped      int     // Bytes mapped from the OS, headers included
	NumChunks   int     // Number of chunks
	ChunkSize   int     // Growth granularity
	Utilization float64 // Ratio of claimed to total capacity (0.0-1.0)
}
