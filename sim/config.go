package sim

import "fmt"

// Config groups the channel and population parameters for one simulation run.
// The same Config is shared by every algorithm in a comparison; each run gets
// its own fleet and RNG stream, never its own parameters.
type Config struct {
	NumDevices   int   `json:"num_devices"`   // fixed device population, contending until first success
	NumSlots     int64 `json:"num_slots"`     // number of slots to simulate (slot indices are 1-based)
	MinCW        int   `json:"min_cw"`        // lower contention-window bound, also the initial window
	MaxCW        int   `json:"max_cw"`        // upper contention-window bound
	NumPreambles int   `json:"num_preambles"` // orthogonal preambles available per slot
}

// NewConfig groups run parameters into a Config.
func NewConfig(numDevices int, numSlots int64, minCW, maxCW, numPreambles int) Config {
	return Config{
		NumDevices:   numDevices,
		NumSlots:     numSlots,
		MinCW:        minCW,
		MaxCW:        maxCW,
		NumPreambles: numPreambles,
	}
}

// Validate checks all parameter ranges. Configuration errors are fatal and
// seed-independent: they surface before any slot executes.
func (c Config) Validate() error {
	if c.NumDevices < 1 {
		return fmt.Errorf("num_devices must be >= 1, got %d", c.NumDevices)
	}
	if c.NumSlots < 1 {
		return fmt.Errorf("num_slots must be >= 1, got %d", c.NumSlots)
	}
	if c.MinCW <= 0 {
		return fmt.Errorf("min_cw must be positive, got %d", c.MinCW)
	}
	if c.MaxCW < c.MinCW {
		return fmt.Errorf("max_cw must be >= min_cw, got max_cw=%d min_cw=%d", c.MaxCW, c.MinCW)
	}
	if c.NumPreambles < 1 {
		return fmt.Errorf("num_preambles must be >= 1, got %d", c.NumPreambles)
	}
	return nil
}
