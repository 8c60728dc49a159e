package domain

import "time"

// The reconciler is a two-state automaton over one associate's ordered
// event sequence. Duplicate starts never extend idle time and orphan ends
// never open intervals, so totals can only be under- or exactly-counted.

type reconcileState int

const (
	noOpenInterval reconcileState = iota
	intervalOpen
)

// transition describes the effect of one event on the automaton.
type transition struct {
	next           reconcileState
	open           bool
	close          bool
	duplicateStart bool
	orphanEnd      bool
}

// step is the pure transition function: (state, event type) -> transition.
func step(state reconcileState, ev EventType) transition {
	switch state {
	case noOpenInterval:
		if ev == EventIdleStart {
			return transition{next: intervalOpen, open: true}
		}
		return transition{next: noOpenInterval, orphanEnd: true}
	default: // intervalOpen
		if ev == EventIdleStart {
			return transition{next: intervalOpen, duplicateStart: true}
		}
		return transition{next: noOpenInterval, close: true}
	}
}

// ReconcileResult is one associate's clean interval set plus the anomaly
// counts observed while producing it.
type ReconcileResult struct {
	Associate       AssociateID
	Intervals       []IdleInterval
	OrphanEnds      int
	DuplicateStarts int
	Truncated       int
}

// TotalIdle sums the durations of all reconciled intervals.
func (r ReconcileResult) TotalIdle() time.Duration {
	var sum time.Duration
	for _, iv := range r.Intervals {
		sum += iv.Duration()
	}
	return sum
}

// Reconcile converts an associate's time-ordered event sequence into
// non-overlapping idle intervals. An interval still open at the window
// end is closed at window.End and flagged truncated.
func Reconcile(associate AssociateID, events []NormalizedEvent, window Window) ReconcileResult {
	result := ReconcileResult{Associate: associate}

	state := noOpenInterval
	var current IdleInterval
	for _, ev := range events {
		tr := step(state, ev.Type)
		state = tr.next

		switch {
		case tr.open:
			current = IdleInterval{Associate: associate, Start: ev.At}
		case tr.close:
			current.End = ev.At
			result.Intervals = appendMerged(result.Intervals, current)
		case tr.duplicateStart:
			result.DuplicateStarts++
		case tr.orphanEnd:
			result.OrphanEnds++
		}
	}

	if state == intervalOpen {
		current.End = window.End
		current.Truncated = true
		result.Intervals = appendMerged(result.Intervals, current)
		result.Truncated++
	}

	return result
}

// appendMerged appends iv, coalescing it into the previous interval when
// the gap between them is not positive.
func appendMerged(intervals []IdleInterval, iv IdleInterval) []IdleInterval {
	if n := len(intervals); n > 0 && intervals[n-1].overlaps(iv) {
		prev := &intervals[n-1]
		if iv.End.After(prev.End) {
			prev.End = iv.End
		}
		prev.Truncated = prev.Truncated || iv.Truncated
		return intervals
	}

	return append(intervals, iv)
}
