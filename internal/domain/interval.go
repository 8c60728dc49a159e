package domain

import "time"

// IdleInterval is one continuous idle span for an associate. Intervals are
// produced only by Reconcile; for a given associate they come out sorted
// by Start and pairwise non-overlapping.
type IdleInterval struct {
	Associate AssociateID
	Start     time.Time
	End       time.Time

	// Truncated marks an interval force-closed at the window end because
	// no matching end event was observed.
	Truncated bool
}

func (iv IdleInterval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// overlaps reports whether other starts at or before the end of iv.
// Touching intervals (gap zero) count as overlapping and get merged.
func (iv IdleInterval) overlaps(other IdleInterval) bool {
	return !other.Start.After(iv.End)
}
