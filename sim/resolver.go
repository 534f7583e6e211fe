// Implements per-slot contention resolution: ready-set selection, preamble
// assignment, collision classification, and the backoff timer countdown.

package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// SlotOutcome describes what a single slot produced. The Simulator folds
// outcomes into Metrics and the optional trace; the Resolver itself never
// records metrics — that is a driver concern.
type SlotOutcome struct {
	Slot       int64 // 1-based slot index
	Ready      int   // devices that attempted access this slot
	Successes  int   // preambles picked by exactly one device
	Collisions int   // preambles picked by two or more devices (one per group)
	Idle       bool  // no device was ready; still counted against NumSlots
}

// Resolver carries out one slot of the contention protocol against a fleet.
// It is stateless between slots: all persistent state lives on the devices.
type Resolver struct {
	numPreambles int
	policy       BackoffPolicy
}

// NewResolver creates a Resolver. numPreambles and policy come from a
// validated Config, so violations here are programmer errors.
func NewResolver(numPreambles int, policy BackoffPolicy) *Resolver {
	if numPreambles < 1 {
		panic(fmt.Sprintf("NewResolver: numPreambles must be >= 1, got %d", numPreambles))
	}
	if policy == nil {
		panic("NewResolver: policy must not be nil")
	}
	return &Resolver{numPreambles: numPreambles, policy: policy}
}

// ResolveSlot runs the slot protocol for 1-based slot index slot:
// ready snapshot, one uniform preamble draw per ready device, grouping by
// preamble, outcome classification, then the timer countdown for devices
// that sat the slot out. Iteration is in device-ID order for draws and
// ascending preamble order for classification, so one RNG stream yields
// exactly one possible history.
func (r *Resolver) ResolveSlot(slot int64, fleet *Fleet, rng *rand.Rand) SlotOutcome {
	outcome := SlotOutcome{Slot: slot}

	ready := fleet.Ready()
	outcome.Ready = len(ready)

	if len(ready) == 0 {
		// Idle slot: nobody transmits, no draws are consumed, but waiting
		// devices still count the slot down.
		outcome.Idle = true
		r.countDown(fleet, nil)
		return outcome
	}

	groups := make(map[int][]*Device, len(ready))
	for _, d := range ready {
		preamble := 1 + rng.Intn(r.numPreambles)
		groups[preamble] = append(groups[preamble], d)
	}

	// Classify in ascending preamble order: map iteration order is
	// randomized by the runtime, and the policy callbacks below consume
	// RNG draws, so order here is part of the deterministic contract.
	for preamble := 1; preamble <= r.numPreambles; preamble++ {
		group, ok := groups[preamble]
		if !ok {
			continue
		}
		if len(group) == 1 {
			d := group[0]
			d.Transmissions++
			d.CumulativeDelay += slot
			d.Succeeded = true
			outcome.Successes++
			r.policy.OnSuccess(d, rng)
			logrus.Debugf("[slot %06d] device %d succeeded on preamble %d", slot, d.ID, preamble)
			continue
		}
		// One collision per preamble group, regardless of how many devices
		// piled onto it.
		outcome.Collisions++
		for _, d := range group {
			r.policy.OnCollision(d, rng)
		}
		logrus.Debugf("[slot %06d] %d devices collided on preamble %d", slot, len(group), preamble)
	}

	r.countDown(fleet, ready)
	return outcome
}

// countDown decrements the backoff timer of every still-contending device
// that sat this slot out. Devices in the ready snapshot are excluded: their
// timers were freshly redrawn by the policy callbacks and must not lose a
// slot they have not waited. ready is an ID-ordered subsequence of the
// fleet, so a two-pointer walk suffices.
func (r *Resolver) countDown(fleet *Fleet, ready []*Device) {
	next := 0
	for _, d := range fleet.Devices() {
		if next < len(ready) && ready[next] == d {
			next++
			continue
		}
		if !d.Succeeded && d.BackoffTimer > 0 {
			d.BackoffTimer--
		}
	}
}
