// Implements the contention-window backoff policies compared by the
// simulator: binary exponential, linear increase/linear decrease, and a
// multiplicative adaptive variant.

package sim

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Canonical backoff policy names, as accepted by NewBackoffPolicy, the CLI
// and scenario files.
const (
	AlgorithmBEB      = "beb"
	AlgorithmLILD     = "lild"
	AlgorithmAdaptive = "adaptive"
)

// ValidBackoffPolicies is the set of recognized backoff policy names.
// Shared by Scenario.Validate() and NewBackoffPolicy() to avoid duplication.
var ValidBackoffPolicies = map[string]bool{
	AlgorithmBEB:      true,
	AlgorithmLILD:     true,
	AlgorithmAdaptive: true,
}

// IsValidBackoffPolicy reports whether name is a recognized backoff policy.
func IsValidBackoffPolicy(name string) bool {
	return ValidBackoffPolicies[name]
}

// ValidBackoffPolicyNames returns the recognized policy names, sorted.
// Derived from the authoritative map so error messages never drift.
func ValidBackoffPolicyNames() []string {
	names := make([]string, 0, len(ValidBackoffPolicies))
	for name := range ValidBackoffPolicies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultAlgorithms returns the full comparison set in canonical order.
func DefaultAlgorithms() []string {
	return []string{AlgorithmBEB, AlgorithmLILD, AlgorithmAdaptive}
}

// DisplayName returns the report label for a backoff policy name.
func DisplayName(name string) string {
	switch name {
	case AlgorithmBEB:
		return "BEB"
	case AlgorithmLILD:
		return "LILD"
	case AlgorithmAdaptive:
		return "Adaptive"
	default:
		return name
	}
}

// BackoffPolicy reacts to a single device's slot outcome: it moves the
// device's contention window within [MinCW, MaxCW] per the variant's rule,
// then redraws the backoff timer uniformly from the updated window.
// Implementations mutate only the device passed in, and every call consumes
// exactly one timer draw from rng — including OnSuccess on a device that is
// done, which keeps draw sequences aligned for reproducibility.
type BackoffPolicy interface {
	OnSuccess(d *Device, rng *rand.Rand)
	OnCollision(d *Device, rng *rand.Rand)
}

// BinaryExponentialBackoff doubles the window on collision and resets it to
// the minimum on success — the classic BEB rule.
type BinaryExponentialBackoff struct {
	MinCW int
	MaxCW int
}

func (p *BinaryExponentialBackoff) OnSuccess(d *Device, rng *rand.Rand) {
	d.ContentionWindow = p.MinCW
	d.redrawTimer(rng)
}

func (p *BinaryExponentialBackoff) OnCollision(d *Device, rng *rand.Rand) {
	d.ContentionWindow = clampWindow(d.ContentionWindow*2, p.MinCW, p.MaxCW)
	d.redrawTimer(rng)
}

// LinearIncreaseLinearDecrease nudges the window by one slot either way:
// +1 on collision, -1 on success. Reacts slowly but never overshoots.
type LinearIncreaseLinearDecrease struct {
	MinCW int
	MaxCW int
}

func (p *LinearIncreaseLinearDecrease) OnSuccess(d *Device, rng *rand.Rand) {
	d.ContentionWindow = clampWindow(d.ContentionWindow-1, p.MinCW, p.MaxCW)
	d.redrawTimer(rng)
}

func (p *LinearIncreaseLinearDecrease) OnCollision(d *Device, rng *rand.Rand) {
	d.ContentionWindow = clampWindow(d.ContentionWindow+1, p.MinCW, p.MaxCW)
	d.redrawTimer(rng)
}

// Window fractions for AdaptiveBackoff. The asymmetry (grow fast, shrink
// slow) biases toward collision avoidance under bursty contention.
const (
	adaptiveShrinkFraction = 0.1
	adaptiveGrowthFraction = 0.7
)

// AdaptiveBackoff scales the window by fixed fractions of its current size:
// +70% on collision, -10% on success. Fractional adjustments are rounded
// half away from zero before clamping, so the window keeps moving even at
// small sizes; the rounding rule is pinned for cross-implementation
// reproducibility of window trajectories.
type AdaptiveBackoff struct {
	MinCW int
	MaxCW int
}

func (p *AdaptiveBackoff) OnSuccess(d *Device, rng *rand.Rand) {
	shrink := roundHalfAwayFromZero(float64(d.ContentionWindow) * adaptiveShrinkFraction)
	d.ContentionWindow = clampWindow(d.ContentionWindow-shrink, p.MinCW, p.MaxCW)
	d.redrawTimer(rng)
}

func (p *AdaptiveBackoff) OnCollision(d *Device, rng *rand.Rand) {
	growth := roundHalfAwayFromZero(float64(d.ContentionWindow) * adaptiveGrowthFraction)
	d.ContentionWindow = clampWindow(d.ContentionWindow+growth, p.MinCW, p.MaxCW)
	d.redrawTimer(rng)
}

// roundHalfAwayFromZero is math.Round's rule, named for what the window
// update contract demands (0.5 -> 1, not banker's rounding).
func roundHalfAwayFromZero(x float64) int {
	return int(math.Round(x))
}

// clampWindow bounds cw to [minCW, maxCW].
func clampWindow(cw, minCW, maxCW int) int {
	if cw < minCW {
		return minCW
	}
	if cw > maxCW {
		return maxCW
	}
	return cw
}

// NewBackoffPolicy creates a BackoffPolicy by name, parameterized with the
// run's window bounds. Valid names are defined in ValidBackoffPolicies.
// Panics on unrecognized names; user-supplied names go through
// Config/Scenario validation before reaching this factory.
func NewBackoffPolicy(name string, minCW, maxCW int) BackoffPolicy {
	if !IsValidBackoffPolicy(name) {
		panic(fmt.Sprintf("unknown backoff policy %q", name))
	}
	switch name {
	case AlgorithmBEB:
		return &BinaryExponentialBackoff{MinCW: minCW, MaxCW: maxCW}
	case AlgorithmLILD:
		return &LinearIncreaseLinearDecrease{MinCW: minCW, MaxCW: maxCW}
	case AlgorithmAdaptive:
		return &AdaptiveBackoff{MinCW: minCW, MaxCW: maxCW}
	default:
		panic(fmt.Sprintf("unhandled backoff policy %q", name))
	}
}
