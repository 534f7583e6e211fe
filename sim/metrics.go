// Tracks per-run contention counters accumulated slot by slot, and the
// immutable per-run results derived from them at run end.

package sim

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Metrics accumulates raw counters during a run. Counters only grow while
// slots execute; the derived RunMetrics are computed exactly once, after the
// final slot.
type Metrics struct {
	Successes  int   // preambles won by exactly one device, run total
	Collisions int   // preamble groups with two or more devices, one per group
	IdleSlots  int64 // slots in which no device was ready
	SlotsRun   int64 // slots stepped so far

	ReadyPerSlot []int // ready-set size per slot, kept for analysis
}

// NewMetrics creates a zeroed Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		ReadyPerSlot: make([]int, 0),
	}
}

// RecordSlot folds one slot outcome into the counters.
func (m *Metrics) RecordSlot(o SlotOutcome) {
	m.SlotsRun++
	m.Successes += o.Successes
	m.Collisions += o.Collisions
	if o.Idle {
		m.IdleSlots++
	}
	m.ReadyPerSlot = append(m.ReadyPerSlot, o.Ready)
}

// RunMetrics is the immutable result of one algorithm run.
//
// AvgAccessDelay is NaN when no device ever succeeded: the undefined case
// stays explicit instead of decaying to a fake zero. JSON export carries it
// as null (see RunMetricsOutput).
type RunMetrics struct {
	Algorithm            string
	Throughput           float64 // Successes / NumSlots
	FairnessIndex        float64 // Jain's index over per-device transmission counts
	AvgAccessDelay       float64 // mean cumulative delay over devices that succeeded
	CollisionProbability float64 // Collisions / NumSlots

	Successes        int
	Collisions       int
	IdleSlots        int64
	SlotsSimulated   int64
	SucceededDevices int
	NumDevices       int

	DelaySummary Distribution // distribution of per-device access delays
}

// Compute derives the run's RunMetrics from the accumulated counters and the
// final fleet state. Both throughput rates are normalized by the configured
// slot count: idle slots count against the denominator.
func (m *Metrics) Compute(algorithm string, cfg Config, fleet *Fleet) RunMetrics {
	slots := float64(cfg.NumSlots)

	counts := make([]float64, 0, fleet.Len())
	delays := make([]float64, 0, fleet.Len())
	for _, d := range fleet.Devices() {
		counts = append(counts, float64(d.Transmissions))
		if d.Transmissions > 0 {
			delays = append(delays, float64(d.CumulativeDelay))
		}
	}

	avgDelay := math.NaN() // undefined until at least one device succeeds
	if len(delays) > 0 {
		avgDelay = stat.Mean(delays, nil)
	}

	return RunMetrics{
		Algorithm:            algorithm,
		Throughput:           float64(m.Successes) / slots,
		FairnessIndex:        jainIndex(counts),
		AvgAccessDelay:       avgDelay,
		CollisionProbability: float64(m.Collisions) / slots,
		Successes:            m.Successes,
		Collisions:           m.Collisions,
		IdleSlots:            m.IdleSlots,
		SlotsSimulated:       m.SlotsRun,
		SucceededDevices:     len(delays),
		NumDevices:           fleet.Len(),
		DelaySummary:         NewDistribution(delays),
	}
}
