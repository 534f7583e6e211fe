package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/rach-sim/rach-sim/sim"
	"github.com/rach-sim/rach-sim/sim/trace"
)

func sampleResults() []sim.AlgorithmResult {
	return []sim.AlgorithmResult{
		{
			Algorithm: "beb",
			Metrics: sim.RunMetrics{
				Algorithm: "beb", Throughput: 0.05, CollisionProbability: 0.2,
				FairnessIndex: 0.9, AvgAccessDelay: 40.5,
				Successes: 50, Collisions: 200, IdleSlots: 100,
				SlotsSimulated: 1000, SucceededDevices: 50, NumDevices: 60,
				DelaySummary: sim.Distribution{P50: 35, P95: 80, P99: 95, Count: 50},
			},
		},
		{
			Algorithm: "lild",
			Metrics: sim.RunMetrics{
				Algorithm: "lild", Throughput: 0.0, CollisionProbability: 1.0,
				FairnessIndex: 0.0, AvgAccessDelay: math.NaN(),
				SlotsSimulated: 1000, NumDevices: 60,
			},
		},
	}
}

func TestRenderTable_OneLinePerAlgorithm(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, sampleResults())
	out := buf.String()

	if !strings.Contains(out, "BEB") || !strings.Contains(out, "LILD") {
		t.Errorf("table missing display names:\n%s", out)
	}
	if !strings.Contains(out, "0.0500") {
		t.Errorf("table missing throughput value:\n%s", out)
	}
	if !strings.Contains(out, "n/a") {
		t.Errorf("NaN delay should render as n/a:\n%s", out)
	}
}

func TestRenderRun_DetailBlock(t *testing.T) {
	var buf bytes.Buffer
	RenderRun(&buf, sampleResults()[0])
	out := buf.String()

	for _, want := range []string{
		"=== BEB ===",
		"Throughput            : 0.0500 successes/slot",
		"Avg Access Delay      : 40.50 slots",
		"Successes             : 50 (50/60 devices)",
		"Idle Slots            : 100/1000",
		"Delay p50/p95/p99     : 35.0/80.0/95.0 slots",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("detail block missing %q:\n%s", want, out)
		}
	}
}

func TestRenderRun_NaNDelayExplained(t *testing.T) {
	var buf bytes.Buffer
	RenderRun(&buf, sampleResults()[1])
	out := buf.String()

	if !strings.Contains(out, "n/a (no device succeeded)") {
		t.Errorf("undefined delay not explained:\n%s", out)
	}
	if strings.Contains(out, "NaN") {
		t.Errorf("raw NaN leaked into report:\n%s", out)
	}
	if strings.Contains(out, "Delay p50") {
		t.Errorf("empty delay summary should be omitted:\n%s", out)
	}
}

func TestRenderRun_IncludesTraceSummary(t *testing.T) {
	r := sampleResults()[0]
	r.Summary = &trace.TraceSummary{
		TotalSlots: 1000, IdleSlots: 100, CollisionSlots: 600, CleanSlots: 300,
		PeakReady: 37, PeakReadySlot: 112,
	}
	var buf bytes.Buffer
	RenderRun(&buf, r)

	if !strings.Contains(buf.String(), "peak ready 37 @ slot 112") {
		t.Errorf("trace summary line missing:\n%s", buf.String())
	}
}

func TestRenderCharts_BarsScaledToMax(t *testing.T) {
	var buf bytes.Buffer
	RenderCharts(&buf, sampleResults())
	out := buf.String()

	if !strings.Contains(out, "Throughput (successes/slot)") {
		t.Errorf("chart title missing:\n%s", out)
	}
	// The collision chart's max is lild's 1.0, so its bar fills the width
	// while beb's 0.2 gets a proportional 8 marks.
	if !strings.Contains(out, strings.Repeat("#", 40)+" 1.0000") {
		t.Errorf("full-scale bar missing:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat("#", 8)+" 0.2000") {
		t.Errorf("proportional bar missing:\n%s", out)
	}
	// NaN delay renders n/a, never a bar
	if !strings.Contains(out, "n/a") {
		t.Errorf("NaN entry missing n/a:\n%s", out)
	}
}

func TestBar_Bounds(t *testing.T) {
	if bar(0, 10) != "" {
		t.Error("zero value should have no bar")
	}
	if bar(5, 0) != "" {
		t.Error("zero max should have no bar")
	}
	if got := bar(10, 10); len(got) != barWidth {
		t.Errorf("full-scale bar has %d marks, want %d", len(got), barWidth)
	}
	if got := bar(0.0001, 10); len(got) != 1 {
		t.Errorf("tiny nonzero value should still show one mark, got %d", len(got))
	}
}

func TestRender_FullDocument(t *testing.T) {
	cfg := sim.NewConfig(60, 1000, 8, 256, 54)
	var buf bytes.Buffer
	Render(&buf, cfg, 42, sampleResults(), true)
	out := buf.String()

	for _, want := range []string{
		"=== Contention Comparison ===",
		"60 devices, 1000 slots, cw [8, 256], 54 preambles, seed 42",
		"Algorithm",
		"=== BEB ===",
		"=== LILD ===",
		"Jain fairness index",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("full report missing %q", want)
		}
	}
}

func TestRender_ChartsOptional(t *testing.T) {
	cfg := sim.NewConfig(60, 1000, 8, 256, 54)
	var buf bytes.Buffer
	Render(&buf, cfg, 42, sampleResults(), false)

	if strings.Contains(buf.String(), "Jain fairness index") {
		t.Error("charts rendered despite charts=false")
	}
}
