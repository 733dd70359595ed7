package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate, per-tick cost, and memory statistics for
// performance monitoring. Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration

	tickStart   time.Time
	tickTotal   time.Duration
	tickMax     time.Duration
	memStats    runtime.MemStats
	lastGCCount uint32
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithUpdateInterval sets how often statistics are logged.
//
// Parameters:
//   - d: the log interval
//
// Returns:
//   - ProfilerOption: option function to apply
func WithUpdateInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// NewProfiler creates a new Profiler. Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// BeginTick marks the start of a frame tick so EndTick can measure its cost.
func (p *Profiler) BeginTick() {
	p.tickStart = time.Now()
}

// EndTick should be called once per frame after the tick's work completes.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, average and worst tick cost, heap usage, GC count.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) EndTick() bool {
	if !p.tickStart.IsZero() {
		cost := time.Since(p.tickStart)
		p.tickTotal += cost
		if cost > p.tickMax {
			p.tickMax = cost
		}
	}
	p.frameCount++

	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	avgTickUs := int64(0)
	if p.frameCount > 0 {
		avgTickUs = p.tickTotal.Microseconds() / int64(p.frameCount)
	}

	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024
	gcDelta := p.memStats.NumGC - p.lastGCCount

	log.Printf("[Profiler] FPS: %.2f | Tick: avg %d µs, max %d µs | Heap: %.2f MB | GC: +%d",
		fps, avgTickUs, p.tickMax.Microseconds(), heapMB, gcDelta)

	p.frameCount = 0
	p.tickTotal = 0
	p.tickMax = 0
	p.lastTime = currentTime
	p.lastGCCount = p.memStats.NumGC
	return true
}
