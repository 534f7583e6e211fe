package sim

import (
	"math/rand"
	"strings"
	"testing"
)

func TestNewFleet_InitialState(t *testing.T) {
	// GIVEN a fresh RNG stream
	rng := rand.New(rand.NewSource(42))

	// WHEN a fleet of 50 devices is built with minCW=8
	fleet := NewFleet(50, 8, rng)

	// THEN every device starts at window 8 with a timer in [0, 7], IDs in order
	if fleet.Len() != 50 {
		t.Fatalf("Len: got %d, want 50", fleet.Len())
	}
	for i, d := range fleet.Devices() {
		if d.ID != i {
			t.Errorf("device %d: ID got %d, want %d", i, d.ID, i)
		}
		if d.ContentionWindow != 8 {
			t.Errorf("device %d: ContentionWindow got %d, want 8", i, d.ContentionWindow)
		}
		if d.BackoffTimer < 0 || d.BackoffTimer > 7 {
			t.Errorf("device %d: BackoffTimer got %d, want in [0, 7]", i, d.BackoffTimer)
		}
		if d.Succeeded || d.Transmissions != 0 || d.CumulativeDelay != 0 {
			t.Errorf("device %d: progress fields not zeroed: %v", i, d)
		}
	}
}

func TestNewFleet_MinWindowOne_AllReady(t *testing.T) {
	// GIVEN minCW=1, the only possible timer draw is 0
	rng := rand.New(rand.NewSource(7))

	// WHEN the fleet is built
	fleet := NewFleet(10, 1, rng)

	// THEN every device is ready in slot 1, regardless of seed
	if got := len(fleet.Ready()); got != 10 {
		t.Errorf("Ready: got %d devices, want 10", got)
	}
}

func TestDevice_Ready(t *testing.T) {
	tests := []struct {
		name      string
		timer     int
		succeeded bool
		want      bool
	}{
		{"timer zero not succeeded", 0, false, true},
		{"timer positive not succeeded", 3, false, false},
		{"timer zero succeeded", 0, true, false},
		{"timer positive succeeded", 3, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Device{BackoffTimer: tt.timer, Succeeded: tt.succeeded}
			if got := d.Ready(); got != tt.want {
				t.Errorf("Ready() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFleet_Ready_SnapshotInIDOrder(t *testing.T) {
	// GIVEN a fleet where devices 1 and 3 are ready, 0 is waiting, 2 is done
	fleet := &Fleet{devices: []*Device{
		{ID: 0, BackoffTimer: 2},
		{ID: 1, BackoffTimer: 0},
		{ID: 2, BackoffTimer: 0, Succeeded: true},
		{ID: 3, BackoffTimer: 0},
	}}

	// WHEN the ready snapshot is taken
	ready := fleet.Ready()

	// THEN it holds exactly devices 1 and 3, in ID order
	if len(ready) != 2 {
		t.Fatalf("Ready: got %d devices, want 2", len(ready))
	}
	if ready[0].ID != 1 || ready[1].ID != 3 {
		t.Errorf("Ready order: got [%d, %d], want [1, 3]", ready[0].ID, ready[1].ID)
	}
}

func TestFleet_Ready_Empty(t *testing.T) {
	// GIVEN a fleet where every device is waiting or done
	fleet := &Fleet{devices: []*Device{
		{ID: 0, BackoffTimer: 1},
		{ID: 1, Succeeded: true},
	}}

	// WHEN the ready snapshot is taken
	ready := fleet.Ready()

	// THEN it is empty (an idle slot)
	if len(ready) != 0 {
		t.Errorf("Ready: got %d devices, want 0", len(ready))
	}
}

func TestDevice_RedrawTimer_Range(t *testing.T) {
	// GIVEN a device with window 16
	rng := rand.New(rand.NewSource(99))
	d := &Device{ContentionWindow: 16}

	// WHEN the timer is redrawn many times
	// THEN every draw lands in [0, 15]
	for i := 0; i < 1000; i++ {
		d.redrawTimer(rng)
		if d.BackoffTimer < 0 || d.BackoffTimer > 15 {
			t.Fatalf("redrawTimer draw %d: got %d, want in [0, 15]", i, d.BackoffTimer)
		}
	}
}

func TestDevice_RedrawTimer_WindowOne(t *testing.T) {
	// GIVEN a device with the smallest legal window
	rng := rand.New(rand.NewSource(1))
	d := &Device{ContentionWindow: 1}

	// WHEN the timer is redrawn
	d.redrawTimer(rng)

	// THEN the only possible value is 0
	if d.BackoffTimer != 0 {
		t.Errorf("redrawTimer with window 1: got %d, want 0", d.BackoffTimer)
	}
}

func TestFleet_SucceededCount(t *testing.T) {
	fleet := &Fleet{devices: []*Device{
		{ID: 0, Succeeded: true},
		{ID: 1},
		{ID: 2, Succeeded: true},
	}}

	if got := fleet.SucceededCount(); got != 2 {
		t.Errorf("SucceededCount: got %d, want 2", got)
	}
}

func TestNewFleet_SameSeedSameTimers(t *testing.T) {
	// GIVEN two fleets built from identically-seeded streams
	fleetA := NewFleet(100, 32, rand.New(rand.NewSource(1234)))
	fleetB := NewFleet(100, 32, rand.New(rand.NewSource(1234)))

	// THEN the initial timers match device for device
	for i := range fleetA.Devices() {
		a, b := fleetA.Devices()[i], fleetB.Devices()[i]
		if a.BackoffTimer != b.BackoffTimer {
			t.Errorf("device %d: timers diverge: %d vs %d", i, a.BackoffTimer, b.BackoffTimer)
		}
	}
}

func TestFleet_String_PartitionCounts(t *testing.T) {
	// The three states partition the population; String reports the split.
	fleet := &Fleet{devices: []*Device{
		{ID: 0, BackoffTimer: 4},
		{ID: 1, BackoffTimer: 0},
		{ID: 2, Succeeded: true},
	}}

	s := fleet.String()
	for _, want := range []string{"devices: 3", "waiting: 1", "ready: 1", "done: 1"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
