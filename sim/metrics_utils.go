// sim/metrics_utils.go
package sim

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// jainIndex computes Jain's fairness index (Σx)² / (n·Σx²) over per-device
// transmission counts. Defined as 0 when every count is zero; otherwise in
// (0, 1], reaching 1 exactly when all nonzero counts are equal across the
// whole population.
func jainIndex(counts []float64) float64 {
	if len(counts) == 0 {
		return 0
	}
	sum := floats.Sum(counts)
	if sum == 0 {
		return 0
	}
	sumSq := floats.Dot(counts, counts)
	return sum * sum / (float64(len(counts)) * sumSq)
}

// Distribution captures a statistical summary of a metric.
type Distribution struct {
	Mean  float64 `json:"mean"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// NewDistribution computes a Distribution from raw values.
// Returns zero-value Distribution for empty input (stat.Quantile panics on
// empty data, so the guard stays first).
func NewDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Distribution{
		Mean:  stat.Mean(sorted, nil),
		P50:   stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		P95:   stat.Quantile(0.95, stat.LinInterp, sorted, nil),
		P99:   stat.Quantile(0.99, stat.LinInterp, sorted, nil),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Count: len(sorted),
	}
}

// RunMetricsOutput mirrors RunMetrics for JSON export. AvgAccessDelay is a
// pointer so the undefined case (no device succeeded) serializes as an
// explicit null — encoding/json cannot represent NaN.
type RunMetricsOutput struct {
	Algorithm            string       `json:"algorithm"`
	Throughput           float64      `json:"throughput"`
	FairnessIndex        float64      `json:"fairness_index"`
	AvgAccessDelay       *float64     `json:"avg_access_delay"`
	CollisionProbability float64      `json:"collision_probability"`
	Successes            int          `json:"successes"`
	Collisions           int          `json:"collisions"`
	IdleSlots            int64        `json:"idle_slots"`
	SlotsSimulated       int64        `json:"slots_simulated"`
	SucceededDevices     int          `json:"succeeded_devices"`
	NumDevices           int          `json:"num_devices"`
	DelaySummary         Distribution `json:"delay_summary"`
}

// Output converts RunMetrics to its JSON form.
func (r RunMetrics) Output() RunMetricsOutput {
	out := RunMetricsOutput{
		Algorithm:            r.Algorithm,
		Throughput:           r.Throughput,
		FairnessIndex:        r.FairnessIndex,
		CollisionProbability: r.CollisionProbability,
		Successes:            r.Successes,
		Collisions:           r.Collisions,
		IdleSlots:            r.IdleSlots,
		SlotsSimulated:       r.SlotsSimulated,
		SucceededDevices:     r.SucceededDevices,
		NumDevices:           r.NumDevices,
		DelaySummary:         r.DelaySummary,
	}
	if !math.IsNaN(r.AvgAccessDelay) {
		v := r.AvgAccessDelay
		out.AvgAccessDelay = &v
	}
	return out
}

// ComparisonOutput is the JSON document written by SaveResults.
type ComparisonOutput struct {
	Config Config             `json:"config"`
	Seed   int64              `json:"seed"`
	Runs   []RunMetricsOutput `json:"runs"`
}

// SaveResults marshals one comparison's results and writes them to path.
// An empty path logs the document at debug level instead of writing a file.
func SaveResults(cfg Config, seed int64, results []RunMetrics, path string) error {
	doc := ComparisonOutput{
		Config: cfg,
		Seed:   seed,
		Runs:   make([]RunMetricsOutput, 0, len(results)),
	}
	for _, r := range results {
		doc.Runs = append(doc.Runs, r.Output())
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	if path == "" {
		logrus.Debugf("results document:\n%s", data)
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results to %s: %w", path, err)
	}
	logrus.Infof("wrote results to %s", path)
	return nil
}
