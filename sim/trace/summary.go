package trace

// TraceSummary aggregates slot statistics from a SlotTrace.
type TraceSummary struct {
	TotalSlots      int
	IdleSlots       int
	CollisionSlots  int   // slots with at least one collision
	CleanSlots      int   // non-idle slots with zero collisions
	TotalSuccesses  int
	TotalCollisions int
	PeakReady       int   // largest ready-set size observed
	PeakReadySlot   int64 // first slot at which the peak occurred
}

// Summarize computes aggregate statistics from a SlotTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SlotTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}

	summary.TotalSlots = len(st.Records)
	for _, r := range st.Records {
		summary.TotalSuccesses += r.Successes
		summary.TotalCollisions += r.Collisions
		switch {
		case r.Idle:
			summary.IdleSlots++
		case r.Collisions > 0:
			summary.CollisionSlots++
		default:
			summary.CleanSlots++
		}
		if r.Ready > summary.PeakReady {
			summary.PeakReady = r.Ready
			summary.PeakReadySlot = r.Slot
		}
	}

	return summary
}
