package domain

import (
	"strings"
	"time"
)

type AssociateID string
type ManagerID string

type EventType string

const (
	EventIdleStart EventType = "IDLE_START"
	EventIdleEnd   EventType = "IDLE_END"
)

// ParseEventType maps a raw event type column value to its canonical form.
func ParseEventType(raw string) (EventType, bool) {
	switch EventType(strings.ToUpper(strings.TrimSpace(raw))) {
	case EventIdleStart:
		return EventIdleStart, true
	case EventIdleEnd:
		return EventIdleEnd, true
	default:
		return "", false
	}
}

// SourceMetadata records where a raw event came from, for quality reporting.
type SourceMetadata struct {
	File string
	Line int
}

// RawEvent is a single activity record as produced by the log source.
// Fields are untyped strings; the normalizer validates and converts them.
type RawEvent struct {
	AssociateID string
	Timestamp   string
	Type        string
	Source      SourceMetadata
}

// NormalizedEvent is a RawEvent that passed validation. Seq preserves the
// input position so equal timestamps keep a stable order.
type NormalizedEvent struct {
	Associate AssociateID
	Type      EventType
	At        time.Time
	Seq       int
}

type DropReason string

const (
	DropMissingAssociate DropReason = "missing_associate_id"
	DropBadTimestamp     DropReason = "bad_timestamp"
	DropUnknownType      DropReason = "unknown_event_type"
	DropOutOfWindow      DropReason = "out_of_window"
)

var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseEventTime parses a raw timestamp column value. Layouts without an
// offset are interpreted in loc, matching the reporting window's location.
func ParseEventTime(raw string, loc *time.Location) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range eventTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return parsed, true
		}
	}

	return time.Time{}, false
}
