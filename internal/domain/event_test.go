package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventType(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want EventType
		ok   bool
	}{
		{name: "canonical start", raw: "IDLE_START", want: EventIdleStart, ok: true},
		{name: "canonical end", raw: "IDLE_END", want: EventIdleEnd, ok: true},
		{name: "lowercase", raw: "idle_start", want: EventIdleStart, ok: true},
		{name: "surrounding whitespace", raw: "  IDLE_END ", want: EventIdleEnd, ok: true},
		{name: "unknown", raw: "BREAK_START", ok: false},
		{name: "empty", raw: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseEventType(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEventTimeLayouts(t *testing.T) {
	want := time.Date(2026, 3, 9, 16, 50, 0, 0, time.UTC)

	for _, raw := range []string{
		"2026-03-09T16:50:00Z",
		"2026-03-09T16:50:00",
		"2026-03-09 16:50:00",
	} {
		got, ok := ParseEventTime(raw, time.UTC)
		require.True(t, ok, "layout %q", raw)
		assert.True(t, want.Equal(got), "layout %q", raw)
	}
}

func TestParseEventTimeRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "  ", "yesterday", "03/09/2026"} {
		_, ok := ParseEventTime(raw, time.UTC)
		assert.False(t, ok, "raw %q", raw)
	}
}

func TestParseEventTimeUsesLocation(t *testing.T) {
	loc := time.FixedZone("site", -5*60*60)

	got, ok := ParseEventTime("2026-03-09 08:00:00", loc)
	require.True(t, ok)
	assert.Equal(t, loc, got.Location())
	assert.True(t, got.Equal(time.Date(2026, 3, 9, 13, 0, 0, 0, time.UTC)))
}
