// Package trace provides slot-trace recording for contention analysis.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// SlotRecord captures the contention outcome of a single slot.
type SlotRecord struct {
	Slot       int64 // 1-based slot index
	Ready      int   // devices that attempted access this slot
	Successes  int   // preambles picked by exactly one device
	Collisions int   // preamble groups with two or more devices
	Idle       bool  // no device attempted access
}
