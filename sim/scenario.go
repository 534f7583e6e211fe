package sim

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rach-sim/rach-sim/sim/trace"
)

// Scenario bundles a full comparison run into one YAML file: the channel
// parameters, the seed, and the backoff policies to compare. A scenario file
// replaces the individual CLI flags, so experiments can be versioned and
// replayed byte-for-byte.
type Scenario struct {
	Name       string   `yaml:"name,omitempty"`
	Devices    int      `yaml:"devices"`
	Slots      int64    `yaml:"slots"`
	MinCW      int      `yaml:"min_cw"`
	MaxCW      int      `yaml:"max_cw"`
	Preambles  int      `yaml:"preambles"`
	Seed       int64    `yaml:"seed"`
	Algorithms []string `yaml:"algorithms"`
	Trace      string   `yaml:"trace,omitempty"`
}

// LoadScenario reads and parses a YAML scenario file. Parsing is strict:
// unrecognized keys are rejected, so a typo like "premables" fails loudly
// instead of silently running with a default.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var sc Scenario
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario config: %w", err)
	}
	return &sc, nil
}

// Config converts the scenario's channel parameters to a Config.
func (s *Scenario) Config() Config {
	return NewConfig(s.Devices, s.Slots, s.MinCW, s.MaxCW, s.Preambles)
}

// Validate checks the scenario: channel parameter ranges via Config.Validate,
// then the algorithm list and trace level.
func (s *Scenario) Validate() error {
	if err := s.Config().Validate(); err != nil {
		return err
	}
	if len(s.Algorithms) == 0 {
		return fmt.Errorf("algorithms must list at least one backoff policy; valid: %s",
			strings.Join(ValidBackoffPolicyNames(), ", "))
	}
	seen := make(map[string]bool, len(s.Algorithms))
	for i, name := range s.Algorithms {
		if !IsValidBackoffPolicy(name) {
			return fmt.Errorf("algorithms[%d]: unknown backoff policy %q; valid: %s",
				i, name, strings.Join(ValidBackoffPolicyNames(), ", "))
		}
		if seen[name] {
			return fmt.Errorf("algorithms[%d]: duplicate backoff policy %q", i, name)
		}
		seen[name] = true
	}
	if !trace.IsValidTraceLevel(s.Trace) {
		return fmt.Errorf("unknown trace level %q; valid: none, slots", s.Trace)
	}
	return nil
}
