// Defines the Device struct that models one contending participant, and the
// Fleet holding a run's full device population.

package sim

import (
	"fmt"
	"math/rand"
)

// Device models a single participant's contention state across a run.
// At every slot boundary a device is in exactly one of three states:
// waiting (BackoffTimer > 0), ready (BackoffTimer == 0 and not Succeeded),
// or done (Succeeded).
type Device struct {
	ID int // 0-indexed, stable for the whole run

	ContentionWindow int // current window; MinCW <= ContentionWindow <= MaxCW at every slot boundary
	BackoffTimer     int // slots remaining before the next access attempt; 0 = ready

	Transmissions   int   // successful transmissions only; collided attempts are never counted
	CumulativeDelay int64 // sum of 1-based slot indices of this device's successes
	Succeeded       bool  // once true the device never contends again
}

// Ready reports whether the device will attempt access in the current slot.
func (d *Device) Ready() bool {
	return d.BackoffTimer == 0 && !d.Succeeded
}

// redrawTimer resamples the backoff timer uniformly from [0, ContentionWindow-1].
// Each redraw consumes exactly one draw from the run's RNG stream, so draw
// sequences stay aligned across implementations.
func (d *Device) redrawTimer(rng *rand.Rand) {
	d.BackoffTimer = rng.Intn(d.ContentionWindow)
}

// String returns a human-readable representation of a Device.
func (d *Device) String() string {
	return fmt.Sprintf("Device: (ID: %d, CW: %d, Timer: %d, Tx: %d, Succeeded: %v)",
		d.ID, d.ContentionWindow, d.BackoffTimer, d.Transmissions, d.Succeeded)
}

// Fleet holds the full device population for one algorithm run.
// A Fleet is built fresh per run and owned exclusively by its Simulator;
// devices are never shared across runs or algorithms.
type Fleet struct {
	devices []*Device
}

// NewFleet creates numDevices devices with ContentionWindow = minCW and
// BackoffTimer drawn uniformly from [0, minCW-1], one draw per device in
// ID order.
func NewFleet(numDevices, minCW int, rng *rand.Rand) *Fleet {
	devices := make([]*Device, numDevices)
	for i := range devices {
		d := &Device{
			ID:               i,
			ContentionWindow: minCW,
		}
		d.redrawTimer(rng)
		devices[i] = d
	}
	return &Fleet{devices: devices}
}

// Len returns the population size.
func (f *Fleet) Len() int {
	return len(f.devices)
}

// Devices returns the population in ID order.
// The returned slice is the fleet's internal storage -- callers within the
// sim package may iterate over it but MUST NOT append to or reslice it.
func (f *Fleet) Devices() []*Device {
	return f.devices
}

// Ready returns the devices that will attempt access this slot, in ID order.
// This snapshot is taken once per slot, before any timer or window mutation,
// and is the only device ordering the resolver relies on.
func (f *Fleet) Ready() []*Device {
	var ready []*Device
	for _, d := range f.devices {
		if d.Ready() {
			ready = append(ready, d)
		}
	}
	return ready
}

// SucceededCount returns the number of devices that have completed access.
func (f *Fleet) SucceededCount() int {
	n := 0
	for _, d := range f.devices {
		if d.Succeeded {
			n++
		}
	}
	return n
}

// String summarizes the fleet's state partition for debug logging.
func (f *Fleet) String() string {
	waiting, ready, done := 0, 0, 0
	for _, d := range f.devices {
		switch {
		case d.Succeeded:
			done++
		case d.BackoffTimer == 0:
			ready++
		default:
			waiting++
		}
	}
	return fmt.Sprintf("Fleet: (devices: %d, waiting: %d, ready: %d, done: %d)",
		len(f.devices), waiting, ready, done)
}
