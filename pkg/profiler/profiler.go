package profiler

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Profiler accumulates phase timings and document counts reported by the
// trainer and classifier, and prints them as a table.
type Profiler struct {
	mu    sync.RWMutex
	times map[string][]time.Duration
	docs  map[string]map[string]int
}

// NewProfiler creates a new profiler
func NewProfiler() *Profiler {
	return &Profiler{
		times: make(map[string][]time.Duration),
		docs:  make(map[string]map[string]int),
	}
}

// ObservePhase records the duration of one run of a phase
func (p *Profiler) ObservePhase(phase string, elapsed time.Duration) {
	p.mu.Lock()
	p.times[phase] = append(p.times[phase], elapsed)
	p.mu.Unlock()
}

// AddDocuments counts documents of a label processed by a phase
func (p *Profiler) AddDocuments(phase, label string, n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	byLabel, ok := p.docs[phase]
	if !ok {
		byLabel = make(map[string]int)
		p.docs[phase] = byLabel
	}
	byLabel[label] += n
}

// Stats contains timing statistics for a phase
type Stats struct {
	Phase      string
	Runs       int
	Documents  int
	Total      time.Duration
	Average    time.Duration
	Min        time.Duration
	Max        time.Duration
	Throughput float64 // documents per second over Total
}

// GetStats returns statistics for a phase
func (p *Profiler) GetStats(phase string) *Stats {
	p.mu.RLock()
	times := append([]time.Duration(nil), p.times[phase]...)
	documents := 0
	for _, n := range p.docs[phase] {
		documents += n
	}
	p.mu.RUnlock()

	stats := &Stats{Phase: phase, Documents: documents}
	if len(times) == 0 {
		return stats
	}

	sort.Slice(times, func(i, j int) bool {
		return times[i] < times[j]
	})

	for _, t := range times {
		stats.Total += t
	}
	stats.Runs = len(times)
	stats.Average = stats.Total / time.Duration(len(times))
	stats.Min = times[0]
	stats.Max = times[len(times)-1]
	if stats.Total > 0 {
		stats.Throughput = float64(documents) / stats.Total.Seconds()
	}

	return stats
}

// Documents returns the per-label document counts for a phase
func (p *Profiler) Documents(phase string) map[string]int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]int, len(p.docs[phase]))
	for label, n := range p.docs[phase] {
		out[label] = n
	}
	return out
}

// GetAllStats returns statistics for every phase seen, sorted by name
func (p *Profiler) GetAllStats() []*Stats {
	p.mu.RLock()
	seen := make(map[string]struct{}, len(p.times)+len(p.docs))
	for phase := range p.times {
		seen[phase] = struct{}{}
	}
	for phase := range p.docs {
		seen[phase] = struct{}{}
	}
	p.mu.RUnlock()

	names := make([]string, 0, len(seen))
	for phase := range seen {
		names = append(names, phase)
	}
	sort.Strings(names)

	stats := make([]*Stats, 0, len(names))
	for _, name := range names {
		stats = append(stats, p.GetStats(name))
	}
	return stats
}

// Reset clears all data
func (p *Profiler) Reset() {
	p.mu.Lock()
	p.times = make(map[string][]time.Duration)
	p.docs = make(map[string]map[string]int)
	p.mu.Unlock()
}

// PrintReport prints a formatted timing report
func (p *Profiler) PrintReport(w io.Writer) {
	stats := p.GetAllStats()

	if len(stats) == 0 {
		fmt.Fprintln(w, "No timing data available")
		return
	}

	fmt.Fprintf(w, "⏱️  Performance Profile Report\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "%-12s %6s %8s %10s %10s %10s %12s\n",
		"Phase", "Runs", "Docs", "Total", "Avg", "Max", "Docs/sec")
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────────────\n")

	for _, stat := range stats {
		throughput := "-"
		if stat.Throughput > 0 {
			throughput = fmt.Sprintf("%.1f", stat.Throughput)
		}
		fmt.Fprintf(w, "%-12s %6d %8d %10s %10s %10s %12s\n",
			truncate(stat.Phase, 12),
			stat.Runs,
			stat.Documents,
			formatDuration(stat.Total),
			formatDuration(stat.Average),
			formatDuration(stat.Max),
			throughput,
		)
	}

	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════════\n")
}

// formatDuration formats a duration for display
func formatDuration(d time.Duration) string {
	if d < time.Microsecond {
		return fmt.Sprintf("%.0fns", float64(d.Nanoseconds()))
	} else if d < time.Millisecond {
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000)
	} else if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
