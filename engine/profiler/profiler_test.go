package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfilerReportsPerInterval(t *testing.T) {
	clock := time.Unix(100, 0)
	p := NewProfiler(WithClock(func() time.Time { return clock }))

	clock = clock.Add(250 * time.Millisecond)
	assert.False(t, p.Tick(2))
	clock = clock.Add(250 * time.Millisecond)
	assert.False(t, p.Tick(4))
	assert.Zero(t, p.Last())

	clock = clock.Add(500 * time.Millisecond)
	assert.True(t, p.Tick(6))

	s := p.Last()
	assert.InDelta(t, 3.0, s.FPS, 1e-9)
	assert.InDelta(t, 4.0, s.DrawsPerFrame, 1e-9)
	assert.Positive(t, s.HeapMB)

	clock = clock.Add(10 * time.Millisecond)
	assert.False(t, p.Tick(1), "counters restart after a report")
}

func TestProfilerInterval(t *testing.T) {
	clock := time.Unix(0, 0)
	p := NewProfiler(WithInterval(10*time.Millisecond), WithClock(func() time.Time { return clock }))

	assert.False(t, p.Tick(0), "no time has passed")
	clock = clock.Add(10 * time.Millisecond)
	assert.True(t, p.Tick(0))
	assert.InDelta(t, 200.0, p.Last().FPS, 1e-9)
}
