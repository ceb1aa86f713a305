package arena

// MemoryAcquirer reserves memory before an arena maps a chunk and is told
// when the chunk is released. A refused reservation fails the mapping.
type MemoryAcquirer interface {
	AcquireMemory(bytes int64) error
	ReleaseMemory(bytes int64)
}

type options struct {
	chunkSize int
	acquirer  MemoryAcquirer
	onOOM     func(error)
}

// Option configures an Arena.
type Option func(*options)

// WithChunkSize sets the growth granularity: every chunk the placement
// engine maps is a multiple of n bytes. If n <= 0, DefaultChunkSize is used.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithMemoryAcquirer charges every chunk mapping (header included) to acq.
// See package limit for a ready-made budget.
func WithMemoryAcquirer(acq MemoryAcquirer) Option {
	return func(o *options) {
		o.acquirer = acq
	}
}

// WithOutOfMemoryHandler replaces the handler run when a mapping fails and
// the operation was not given SoftFail. The default handler panics with the
// *OutOfMemoryError; a handler that wants the process to terminate must do so
// itself. If fn returns, the error is returned to the caller.
func WithOutOfMemoryHandler(fn func(error)) Option {
	return func(o *options) {
		o.onOOM = fn
	}
}

func (o *options) granularity() int {
	if o.chunkSize <= 0 {
		return DefaultChunkSize
	}
	return o.chunkSize
}
