// Package limit provides a memory budget that arenas consult before mapping
// new chunks.
//
// A Controller tracks the bytes reserved by every arena it is attached to and,
// when configured with a hard limit, refuses reservations that would exceed
// it. Refusals are immediate: AcquireMemory never blocks, so the arena can
// turn a refusal into the same failure it reports for a failed mapping.
//
//	budget := limit.NewController(limit.Config{MemoryLimitBytes: 64 << 20})
//	a := arena.New(arena.WithMemoryAcquirer(budget))
//	defer a.Free(0)
//
//	if _, err := a.Allocate(1<<30, 8, arena.SoftFail); err != nil {
//	    // errors.Is(err, limit.ErrBudgetExceeded)
//	}
//
// # Thread Safety
//
// Controller methods are safe for concurrent use, so one budget can be shared
// by arenas owned by different goroutines. The arenas themselves are not
// safe for concurrent use.
//
// # Nil Safety
//
// All methods handle a nil *Controller as an unlimited, untracked budget.
package limit
