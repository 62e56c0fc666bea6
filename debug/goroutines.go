package debug

// Debug goroutine metrics logger. Started only when config.Debug is true.
// Emits goroutine count (runtime metrics) and stack usage at a fixed interval.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/dustin/go-humanize"
)

// GoroutineSample is one reading of the scheduler and stack counters.
type GoroutineSample struct {
	Goroutines uint64
	StackInuse uint64
	StackSys   uint64
	HeapAlloc  uint64
}

// ReadGoroutines samples the current goroutine count and stack memory.
func ReadGoroutines() GoroutineSample {
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	metrics.Read(samples)
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	var n uint64
	if samples[0].Value.Kind() == metrics.KindUint64 {
		n = samples[0].Value.Uint64()
	}
	return GoroutineSample{Goroutines: n, StackInuse: ms.StackInuse, StackSys: ms.StackSys, HeapAlloc: ms.HeapAlloc}
}

// StartGoroutineLogger logs goroutine count and stack memory every interval
// until ctx is done.
func StartGoroutineLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if logger == nil {
		return
	}
	if interval <= 0 {
		interval = time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			s := ReadGoroutines()
			logger.Info("goroutine-stacks",
				slog.Uint64("goroutines", s.Goroutines),
				slog.String("stack_inuse", humanize.IBytes(s.StackInuse)),
				slog.String("stack_sys", humanize.IBytes(s.StackSys)),
				slog.String("heap_alloc", humanize.IBytes(s.HeapAlloc)),
			)
		}
	}()
}
