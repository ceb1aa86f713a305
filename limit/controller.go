package limit

import (
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrBudgetExceeded refuses a chunk mapping that would take the budget past
// its limit.
var ErrBudgetExceeded = errors.New("limit: memory budget exceeded")

// Config sets how many bytes of chunk mappings a Controller admits.
type Config struct {
	// MemoryLimitBytes caps the bytes mapped by arena chunks, headers
	// included. Zero or less only counts.
	MemoryLimitBytes int64
}

// Controller is a memory budget shared by any number of arenas. It
// satisfies arena.MemoryAcquirer and is safe for concurrent use.
type Controller struct {
	cfg Config

	limit   *semaphore.Weighted // unset when only counting
	mapped  atomic.Int64
	peak    atomic.Int64
	refused atomic.Int64
}

// NewController returns a budget for cfg.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}
	if cfg.MemoryLimitBytes > 0 {
		c.limit = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	return c
}

// AcquireMemory charges a chunk mapping of n bytes to the budget. It never
// waits for other arenas to release memory: a mapping that does not fit
// fails at once with ErrBudgetExceeded and charges nothing.
// A nil Controller admits everything.
func (c *Controller) AcquireMemory(n int64) error {
	if c == nil || n <= 0 {
		return nil
	}
	if c.limit != nil && !c.limit.TryAcquire(n) {
		c.refused.Add(1)
		return ErrBudgetExceeded
	}

	now := c.mapped.Add(n)
	for p := c.peak.Load(); now > p; p = c.peak.Load() {
		if c.peak.CompareAndSwap(p, now) {
			break
		}
	}
	return nil
}

// ReleaseMemory credits back a mapping charged by AcquireMemory.
func (c *Controller) ReleaseMemory(n int64) {
	if c == nil || n <= 0 {
		return
	}
	if c.limit != nil {
		c.limit.Release(n)
	}
	c.mapped.Add(-n)
}

// MemoryUsage returns the bytes of chunk mappings currently charged.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.mapped.Load()
}

// PeakUsage returns the high-water mark of MemoryUsage.
func (c *Controller) PeakUsage() int64 {
	if c == nil {
		return 0
	}
	return c.peak.Load()
}

// Refused counts the mappings turned down for lack of budget.
func (c *Controller) Refused() int64 {
	if c == nil {
		return 0
	}
	return c.refused.Load()
}

// MemoryLimit returns the configured cap, or 0 when only counting.
func (c *Controller) MemoryLimit() int64 {
	if c == nil || c.cfg.MemoryLimitBytes < 0 {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}
