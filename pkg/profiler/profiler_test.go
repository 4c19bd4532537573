package profiler

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zpam/nbayes/pkg/learning"
)

var _ learning.Recorder = (*Profiler)(nil)

func TestProfilerStats(t *testing.T) {
	p := NewProfiler()
	p.ObservePhase(learning.PhaseCount, 300*time.Millisecond)
	p.ObservePhase(learning.PhaseCount, 100*time.Millisecond)
	p.AddDocuments(learning.PhaseCount, "ham", 30)
	p.AddDocuments(learning.PhaseCount, "spam", 10)

	stats := p.GetStats(learning.PhaseCount)
	assert.Equal(t, 2, stats.Runs)
	assert.Equal(t, 40, stats.Documents)
	assert.Equal(t, 400*time.Millisecond, stats.Total)
	assert.Equal(t, 200*time.Millisecond, stats.Average)
	assert.Equal(t, 100*time.Millisecond, stats.Min)
	assert.Equal(t, 300*time.Millisecond, stats.Max)
	assert.InDelta(t, 100.0, stats.Throughput, 1e-9)

	assert.Equal(t, map[string]int{"ham": 30, "spam": 10}, p.Documents(learning.PhaseCount))
}

func TestProfilerUnknownPhase(t *testing.T) {
	stats := NewProfiler().GetStats("missing")
	assert.Equal(t, 0, stats.Runs)
	assert.Zero(t, stats.Throughput)
}

func TestProfilerConcurrent(t *testing.T) {
	p := NewProfiler()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.ObservePhase(learning.PhaseClassify, time.Millisecond)
			p.AddDocuments(learning.PhaseClassify, "spam", 1)
		}()
	}
	wg.Wait()

	stats := p.GetStats(learning.PhaseClassify)
	assert.Equal(t, 20, stats.Runs)
	assert.Equal(t, 20, stats.Documents)
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewProfiler()
	p.PrintReport(&buf)
	assert.Contains(t, buf.String(), "No timing data available")

	p.ObservePhase(learning.PhaseEstimate, 2*time.Millisecond)
	p.AddDocuments(learning.PhaseCount, "ham", 5)

	buf.Reset()
	p.PrintReport(&buf)
	out := buf.String()
	assert.Contains(t, out, "Performance Profile Report")
	assert.Contains(t, out, "estimate")
	assert.Contains(t, out, "count")
	assert.Contains(t, out, "2.00ms")

	p.Reset()
	assert.Empty(t, p.GetAllStats())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500ns", formatDuration(500*time.Nanosecond))
	assert.Equal(t, "1.5μs", formatDuration(1500*time.Nanosecond))
	assert.Equal(t, "2.50ms", formatDuration(2500*time.Microsecond))
	assert.Equal(t, "1.250s", formatDuration(1250*time.Millisecond))
}
