package trace

// TraceLevel controls the verbosity of slot tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSlots captures one record per simulated slot.
	TraceLevelSlots TraceLevel = "slots"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelSlots: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// SlotTrace collects per-slot records during a single algorithm run.
// A nil *SlotTrace is the disabled state; callers guard before recording.
type SlotTrace struct {
	Algorithm string
	Records   []SlotRecord
}

// NewSlotTrace creates a SlotTrace ready for recording.
func NewSlotTrace(algorithm string) *SlotTrace {
	return &SlotTrace{
		Algorithm: algorithm,
		Records:   make([]SlotRecord, 0),
	}
}

// RecordSlot appends a slot record.
func (st *SlotTrace) RecordSlot(record SlotRecord) {
	st.Records = append(st.Records, record)
}
