// Command arenabench times a fill-and-read allocation loop on the Go heap
// and on an arena and logs the results.
//
// Usage:
//
//	arenabench [-size 128] [-iterations 1000000] [-chunk-size N] [-limit N] [-json]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pavanmanishd/arena/v2"
	"github.com/pavanmanishd/arena/v2/limit"
)

type config struct {
	size       int
	iterations int
	chunkSize  int
	limit      int64
	resetEvery int
	json       bool
}

type result struct {
	name     string
	elapsed  time.Duration
	checksum int
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "arenabench:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("arenabench", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cfg config
	fs.IntVar(&cfg.size, "size", 128, "bytes per allocation")
	fs.IntVar(&cfg.iterations, "iterations", 1000000, "number of allocations per run")
	fs.IntVar(&cfg.chunkSize, "chunk-size", arena.DefaultChunkSize, "arena chunk size in bytes")
	fs.Int64Var(&cfg.limit, "limit", 0, "memory budget for the arena in bytes (0 = unlimited)")
	fs.IntVar(&cfg.resetEvery, "reset-every", 0, "reset the arena every N allocations (0 = never)")
	fs.BoolVar(&cfg.json, "json", false, "log as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.size <= 0 || cfg.iterations <= 0 {
		return fmt.Errorf("-size and -iterations must be positive")
	}

	var handler slog.Handler
	if cfg.json {
		handler = slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(handler)

	logger.Info("benchmarking heap vs arena",
		"size", cfg.size,
		"iterations", cfg.iterations,
		"chunk_size", cfg.chunkSize,
		"limit", cfg.limit,
	)

	heap := benchHeap(cfg)
	report(logger, cfg, heap)

	budget := limit.NewController(limit.Config{MemoryLimitBytes: cfg.limit})
	a := arena.New(arena.WithChunkSize(cfg.chunkSize), arena.WithMemoryAcquirer(budget))
	defer a.Free(0)

	res, err := benchArena(cfg, a)
	if err != nil {
		logger.Error("arena run failed",
			"error", err,
			"chunks", a.NumChunks(),
			"mapped", a.Mapped(),
			"budget_refused", budget.Refused(),
		)
		return err
	}
	report(logger, cfg, res)
	logger.Info("arena state",
		"chunks", a.NumChunks(),
		"size", a.Size(),
		"mapped", a.Mapped(),
		"utilization", a.Utilization(),
		"peak_budget", budget.PeakUsage(),
	)
	return nil
}

func benchHeap(cfg config) result {
	sum := 0
	start := time.Now()
	for i := 0; i < cfg.iterations; i++ {
		buf := make([]byte, cfg.size)
		fill(buf, byte(i))
		sum += int(buf[cfg.size-1])
	}
	return result{name: "heap", elapsed: time.Since(start), checksum: sum}
}

func benchArena(cfg config, a *arena.Arena) (result, error) {
	sum := 0
	start := time.Now()
	for i := 0; i < cfg.iterations; i++ {
		buf, err := a.Allocate(cfg.size, 1, arena.SoftFail)
		if err != nil {
			return result{}, fmt.Errorf("allocation %d: %w", i, err)
		}
		fill(buf, byte(i))
		sum += int(buf[cfg.size-1])
		if cfg.resetEvery > 0 && (i+1)%cfg.resetEvery == 0 {
			a.Reset()
		}
	}
	return result{name: "arena", elapsed: time.Since(start), checksum: sum}, nil
}

func fill(buf []byte, v byte) {
	for i := range buf {
		buf[i] = v
	}
}

func report(logger *slog.Logger, cfg config, r result) {
	logger.Info(r.name,
		"elapsed", r.elapsed,
		"ns_per_op", float64(r.elapsed.Nanoseconds())/float64(cfg.iterations),
		"checksum", r.checksum,
	)
}
