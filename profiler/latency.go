// Package profiler collects per-trace latency samples (dispatch-to-commit
// cycle counts) and reports summary statistics, using gonum/stat for the
// mean and standard deviation. The median of an even-sized sample is the
// average of its two middle values.
package profiler

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Sample is one committed trace's cycle latency.
type Sample struct {
	UUID    uint64
	Unit    string
	Latency float64 // cycles, as float64 for gonum/stat
}

// Collector accumulates latency samples across a run.
type Collector struct {
	samples []Sample
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record appends one completed trace's latency.
func (c *Collector) Record(uuid uint64, unit string, dispatchCycle, commitCycle uint64) {
	c.samples = append(c.samples, Sample{
		UUID:    uuid,
		Unit:    unit,
		Latency: float64(commitCycle - dispatchCycle),
	})
}

// Summary is the aggregate latency statistics for one unit (or "" for
// every sample recorded).
type Summary struct {
	Count    int
	Mean     float64
	StdDev   float64
	Min      float64
	Max      float64
	Median   float64
}

// Summarize computes Summary over every sample whose Unit matches unit,
// or every sample if unit is "".
func (c *Collector) Summarize(unit string) Summary {
	var latencies []float64
	for _, s := range c.samples {
		if unit == "" || s.Unit == unit {
			latencies = append(latencies, s.Latency)
		}
	}
	if len(latencies) == 0 {
		return Summary{}
	}

	sorted := append([]float64(nil), latencies...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	mean, std := stat.MeanStdDev(latencies, nil)
	return Summary{
		Count:  len(latencies),
		Mean:   mean,
		StdDev: std,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: median,
	}
}
