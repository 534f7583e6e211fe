// sim/simulator.go
package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/rach-sim/rach-sim/sim/trace"
)

// Simulator is the core object that drives one algorithm run: it owns the
// run's fleet, resolver, clock, and accumulating metrics. The loop is
// strictly sequential — slot t+1 never begins before slot t's mutations
// complete — and fully deterministic given the RNG stream handed in.
type Simulator struct {
	Config    Config
	Algorithm string
	// Clock is the 1-based index of the most recently completed slot;
	// 0 before the first Step.
	Clock int64
	// Fleet is owned exclusively by this Simulator for the run's duration.
	Fleet    *Fleet
	Resolver *Resolver
	Metrics  *Metrics
	// Trace is nil unless slot tracing was enabled.
	Trace *trace.SlotTrace

	rng *rand.Rand
}

// NewSimulator builds one run: a fresh fleet (windows at MinCW, timers drawn
// from [0, MinCW-1]), the named algorithm's backoff policy bound to the
// config's window limits, and zeroed metrics. cfg must already be validated;
// rng is the run's private stream and every draw of the run comes from it.
func NewSimulator(cfg Config, algorithm string, rng *rand.Rand) *Simulator {
	policy := NewBackoffPolicy(algorithm, cfg.MinCW, cfg.MaxCW)
	return &Simulator{
		Config:    cfg,
		Algorithm: algorithm,
		Clock:     0,
		Fleet:     NewFleet(cfg.NumDevices, cfg.MinCW, rng),
		Resolver:  NewResolver(cfg.NumPreambles, policy),
		Metrics:   NewMetrics(),
		rng:       rng,
	}
}

// EnableTrace attaches a slot trace to the run. Call before Run.
func (s *Simulator) EnableTrace() {
	s.Trace = trace.NewSlotTrace(s.Algorithm)
}

// Step advances the simulation by exactly one slot and folds the outcome
// into the metrics and the optional trace. Exported so tests can assert
// invariants at individual slot boundaries.
func (s *Simulator) Step() SlotOutcome {
	s.Clock++
	outcome := s.Resolver.ResolveSlot(s.Clock, s.Fleet, s.rng)
	s.Metrics.RecordSlot(outcome)
	if s.Trace != nil {
		s.Trace.RecordSlot(trace.SlotRecord{
			Slot:       outcome.Slot,
			Ready:      outcome.Ready,
			Successes:  outcome.Successes,
			Collisions: outcome.Collisions,
			Idle:       outcome.Idle,
		})
	}
	return outcome
}

// Run executes exactly Config.NumSlots slots, then computes the run's
// metrics once. The run never emits intermediate results and never
// terminates early — devices that all succeed before the horizon simply
// leave the remaining slots idle.
func (s *Simulator) Run() RunMetrics {
	logrus.Infof("[%s] starting run: %d devices, %d slots, cw [%d, %d], %d preambles",
		s.Algorithm, s.Config.NumDevices, s.Config.NumSlots, s.Config.MinCW, s.Config.MaxCW, s.Config.NumPreambles)

	for s.Clock < s.Config.NumSlots {
		s.Step()
	}

	result := s.Metrics.Compute(s.Algorithm, s.Config, s.Fleet)
	logrus.Infof("[%s] run ended at slot %d: %d/%d devices succeeded, %d collisions",
		s.Algorithm, s.Clock, s.Fleet.SucceededCount(), s.Fleet.Len(), s.Metrics.Collisions)
	return result
}
