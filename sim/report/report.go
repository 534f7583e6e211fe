// Package report renders comparison results for terminals: a summary table,
// a labeled block per algorithm, and ASCII bar charts for the headline
// metrics. JSON export lives in the sim package; this package is only about
// human-readable output.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/rach-sim/rach-sim/sim"
)

const barWidth = 40

// Render writes the full comparison report: header, summary table, one
// detail block per algorithm, and (when charts is true) bar charts.
func Render(w io.Writer, cfg sim.Config, seed int64, results []sim.AlgorithmResult, charts bool) {
	fmt.Fprintf(w, "=== Contention Comparison ===\n")
	fmt.Fprintf(w, "%d devices, %d slots, cw [%d, %d], %d preambles, seed %d\n\n",
		cfg.NumDevices, cfg.NumSlots, cfg.MinCW, cfg.MaxCW, cfg.NumPreambles, seed)

	RenderTable(w, results)
	fmt.Fprintln(w)
	for _, r := range results {
		RenderRun(w, r)
		fmt.Fprintln(w)
	}
	if charts {
		RenderCharts(w, results)
	}
}

// RenderTable writes one comparison line per algorithm.
func RenderTable(w io.Writer, results []sim.AlgorithmResult) {
	fmt.Fprintf(w, "%-10s %12s %12s %12s %12s\n",
		"Algorithm", "Throughput", "Collision", "Fairness", "AvgDelay")
	fmt.Fprintln(w, strings.Repeat("-", 62))
	for _, r := range results {
		m := r.Metrics
		fmt.Fprintf(w, "%-10s %12.4f %12.4f %12.4f %12s\n",
			sim.DisplayName(r.Algorithm),
			m.Throughput, m.CollisionProbability, m.FairnessIndex,
			formatDelay(m.AvgAccessDelay))
	}
}

// RenderRun writes one algorithm's detail block.
func RenderRun(w io.Writer, r sim.AlgorithmResult) {
	m := r.Metrics
	fmt.Fprintf(w, "=== %s ===\n", sim.DisplayName(r.Algorithm))
	fmt.Fprintf(w, "Throughput            : %.4f successes/slot\n", m.Throughput)
	fmt.Fprintf(w, "Collision Probability : %.4f collisions/slot\n", m.CollisionProbability)
	fmt.Fprintf(w, "Fairness Index        : %.4f\n", m.FairnessIndex)
	fmt.Fprintf(w, "Avg Access Delay      : %s\n", formatDelaySlots(m.AvgAccessDelay))
	fmt.Fprintf(w, "Successes             : %d (%d/%d devices)\n", m.Successes, m.SucceededDevices, m.NumDevices)
	fmt.Fprintf(w, "Collisions            : %d\n", m.Collisions)
	fmt.Fprintf(w, "Idle Slots            : %d/%d\n", m.IdleSlots, m.SlotsSimulated)
	if m.DelaySummary.Count > 0 {
		fmt.Fprintf(w, "Delay p50/p95/p99     : %.1f/%.1f/%.1f slots\n",
			m.DelaySummary.P50, m.DelaySummary.P95, m.DelaySummary.P99)
	}
	if r.Summary != nil {
		s := r.Summary
		fmt.Fprintf(w, "Slot Trace            : %d idle, %d collision, %d clean; peak ready %d @ slot %d\n",
			s.IdleSlots, s.CollisionSlots, s.CleanSlots, s.PeakReady, s.PeakReadySlot)
	}
}

// RenderCharts writes one horizontal bar chart per headline metric, one bar
// per algorithm, each chart scaled to its own maximum.
func RenderCharts(w io.Writer, results []sim.AlgorithmResult) {
	charts := []struct {
		title string
		value func(sim.RunMetrics) float64
	}{
		{"Throughput (successes/slot)", func(m sim.RunMetrics) float64 { return m.Throughput }},
		{"Collision probability (collisions/slot)", func(m sim.RunMetrics) float64 { return m.CollisionProbability }},
		{"Jain fairness index", func(m sim.RunMetrics) float64 { return m.FairnessIndex }},
		{"Average access delay (slots)", func(m sim.RunMetrics) float64 { return m.AvgAccessDelay }},
	}
	labelWidth := 0
	for _, r := range results {
		if n := len(sim.DisplayName(r.Algorithm)); n > labelWidth {
			labelWidth = n
		}
	}
	for _, chart := range charts {
		fmt.Fprintln(w, chart.title)
		max := 0.0
		for _, r := range results {
			if v := chart.value(r.Metrics); !math.IsNaN(v) && v > max {
				max = v
			}
		}
		for _, r := range results {
			v := chart.value(r.Metrics)
			if math.IsNaN(v) {
				fmt.Fprintf(w, "  %-*s | n/a\n", labelWidth, sim.DisplayName(r.Algorithm))
				continue
			}
			fmt.Fprintf(w, "  %-*s | %s %.4f\n", labelWidth, sim.DisplayName(r.Algorithm), bar(v, max), v)
		}
		fmt.Fprintln(w)
	}
}

// bar scales v against max into a run of '#'. A nonzero value always shows
// at least one mark so small rates stay visible next to large ones.
func bar(v, max float64) string {
	if max <= 0 || v <= 0 {
		return ""
	}
	n := int(math.Round(v / max * barWidth))
	if n < 1 {
		n = 1
	}
	return strings.Repeat("#", n)
}

func formatDelay(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func formatDelaySlots(v float64) string {
	if math.IsNaN(v) {
		return "n/a (no device succeeded)"
	}
	return fmt.Sprintf("%.2f slots", v)
}
