package profiler

import (
	"log"
	"runtime"
	"time"
)

// Sample is one reporting window of the profiler.
type Sample struct {
	// FPS is the frame rate over the window.
	FPS float64

	// DrawsPerFrame is the mean number of draw calls per frame.
	DrawsPerFrame float64

	// HeapMB is the live heap at the end of the window.
	HeapMB float64

	// AllocRateMB is the allocation rate over the window in MB/s.
	AllocRateMB float64

	// GCCount is the total number of completed GC cycles.
	GCCount uint32
}

// Profiler tracks frame rate, draw calls and memory statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	drawCount      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
	last           Sample
	now            func() time.Time
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: variadic list of ProfilerBuilderOption functions
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame with the number of draw calls the frame recorded.
// Logs a Sample when the update interval has elapsed.
//
// Parameters:
//   - draws: draw calls in the frame
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(draws int) bool {
	p.frameCount++
	p.drawCount += draws
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	p.last = Sample{
		FPS:           float64(p.frameCount) / elapsed.Seconds(),
		DrawsPerFrame: float64(p.drawCount) / float64(p.frameCount),
		HeapMB:        float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:   float64(allocDelta) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:       p.memStats.NumGC,
	}
	log.Printf("[Profiler] FPS: %.2f | Draws/frame: %.1f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d",
		p.last.FPS, p.last.DrawsPerFrame, p.last.HeapMB, p.last.AllocRateMB, p.last.GCCount)

	p.frameCount = 0
	p.drawCount = 0
	p.lastTime = currentTime
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last retrieves the most recently logged Sample.
//
// Returns:
//   - Sample: the sample, zero before the first report
func (p *Profiler) Last() Sample {
	return p.last
}
