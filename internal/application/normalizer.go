package application

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/yardops/idlereport/internal/domain"
)

// DropCounts tallies raw records excluded during normalization, keyed by
// reason. Excluded records are counted, never silently absorbed.
type DropCounts struct {
	MissingAssociate int
	BadTimestamp     int
	UnknownType      int
	OutOfWindow      int
}

func (d *DropCounts) record(reason domain.DropReason, ev domain.RawEvent) {
	switch reason {
	case domain.DropMissingAssociate:
		d.MissingAssociate++
	case domain.DropBadTimestamp:
		d.BadTimestamp++
	case domain.DropUnknownType:
		d.UnknownType++
	case domain.DropOutOfWindow:
		d.OutOfWindow++
	}

	slog.Debug("dropped raw event",
		"reason", string(reason),
		"associate", ev.AssociateID,
		"file", ev.Source.File,
		"line", ev.Source.Line,
	)
}

func (d DropCounts) Total() int {
	return d.MissingAssociate + d.BadTimestamp + d.UnknownType + d.OutOfWindow
}

// NormalizedSet is the normalizer's output: per-associate event sequences
// sorted by timestamp (input order breaks ties) plus drop counts.
type NormalizedSet struct {
	ByAssociate map[domain.AssociateID][]domain.NormalizedEvent
	Associates  []domain.AssociateID
	Drops       DropCounts
}

func (s NormalizedSet) Empty() bool {
	return len(s.Associates) == 0
}

// Normalize validates raw records against the reporting window. Malformed
// and out-of-window records are excluded with a reason code; the pipeline
// continues regardless.
func Normalize(raw []domain.RawEvent, window domain.Window) NormalizedSet {
	set := NormalizedSet{ByAssociate: make(map[domain.AssociateID][]domain.NormalizedEvent)}

	for i, ev := range raw {
		associate := domain.AssociateID(strings.TrimSpace(ev.AssociateID))
		if associate == "" {
			set.Drops.record(domain.DropMissingAssociate, ev)
			continue
		}

		at, ok := domain.ParseEventTime(ev.Timestamp, window.Start.Location())
		if !ok {
			set.Drops.record(domain.DropBadTimestamp, ev)
			continue
		}

		eventType, ok := domain.ParseEventType(ev.Type)
		if !ok {
			set.Drops.record(domain.DropUnknownType, ev)
			continue
		}

		if !window.Contains(at) {
			set.Drops.record(domain.DropOutOfWindow, ev)
			continue
		}

		set.ByAssociate[associate] = append(set.ByAssociate[associate], domain.NormalizedEvent{
			Associate: associate,
			Type:      eventType,
			At:        at,
			Seq:       i,
		})
	}

	for associate, events := range set.ByAssociate {
		sort.Slice(events, func(a, b int) bool {
			if events[a].At.Equal(events[b].At) {
				return events[a].Seq < events[b].Seq
			}
			return events[a].At.Before(events[b].At)
		})
		set.Associates = append(set.Associates, associate)
	}

	sort.Slice(set.Associates, func(a, b int) bool {
		return set.Associates[a] < set.Associates[b]
	})

	return set
}
