package message

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yardops/idlereport/internal/domain"
)

func sampleReport() domain.SiteReport {
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	return domain.SiteReport{
		ReportDate: day,
		RunID:      "run-1",
		Managers: []domain.ManagerGroup{
			{Manager: "m-1", Associates: []domain.AssociateSummary{
				{Associate: "a-1", Manager: "m-1", TotalIdle: 55 * time.Minute, IntervalCount: 2, LongestInterval: 35 * time.Minute},
				{Associate: "a-2", Manager: "m-1", TotalIdle: 20 * time.Minute, IntervalCount: 1, LongestInterval: 20 * time.Minute},
			}},
			{Manager: domain.UnassignedManager, Associates: []domain.AssociateSummary{
				{Associate: "zz-9", Manager: domain.UnassignedManager, TotalIdle: 2 * time.Hour, IntervalCount: 1, LongestInterval: 2 * time.Hour, Capped: true},
			}},
		},
		SiteTotalIdle:  3*time.Hour + 15*time.Minute,
		SiteAssociates: 3,
		Benchmark:      40 * time.Minute,
		TopIncidents: []domain.Incident{
			{Associate: "zz-9", Start: day.Add(9 * time.Hour), Duration: 2 * time.Hour},
			{Associate: "a-1", Start: day.Add(9*time.Hour + 25*time.Minute), Duration: 35 * time.Minute},
		},
		Quality:     domain.QualityStats{OrphanEnds: 1, Truncated: 1, UnknownManagers: 1},
		GeneratedAt: day.Add(30 * time.Hour),
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	report := sampleReport()

	first := Render(report)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Render(report))
	}
}

func TestRenderHeader(t *testing.T) {
	out := Render(sampleReport())

	assert.Contains(t, out, "*Daily Idle Report for Monday, March 09*")
	assert.Contains(t, out, "*Site total idle:* 3h15m")
	assert.Contains(t, out, "*Site average:* 1h05m per associate (3 associates)")
	assert.Contains(t, out, "*Benchmark:* 40m per associate (difference: +25m)")
}

func TestRenderManagerTables(t *testing.T) {
	out := Render(sampleReport())

	assert.Contains(t, out, "*Manager m-1*")
	assert.Contains(t, out, "*UNASSIGNED* (no roster entry)")
	assert.Contains(t, out, "| Status | Associate | Total Idle")
	assert.Contains(t, out, "a-1")
	assert.Contains(t, out, "2h00m (capped)")

	lines := strings.Split(out, "\n")
	var a1Line, a2Line int
	for i, line := range lines {
		if strings.Contains(line, "| a-1") {
			a1Line = i
		}
		if strings.Contains(line, "| a-2") {
			a2Line = i
		}
	}
	require.NotZero(t, a1Line)
	require.NotZero(t, a2Line)
	assert.Less(t, a1Line, a2Line, "higher total renders first")
}

func TestRenderTopIncidentsBox(t *testing.T) {
	out := Render(sampleReport())

	assert.Contains(t, out, "Top 2 longest idle intervals")
	assert.Contains(t, out, "- zz-9: 2h00m starting 09:00")
	assert.Contains(t, out, "- a-1: 35m starting 09:25")
}

func TestRenderQualityFooter(t *testing.T) {
	out := Render(sampleReport())
	assert.Contains(t, out, "_Data quality: orphan_end=1, truncated=1, unknown_manager=1_")

	clean := sampleReport()
	clean.Quality = domain.QualityStats{}
	assert.Contains(t, Render(clean), "clean run, no records dropped")
}

func TestRenderWithoutBenchmarkUsesNeutralStatus(t *testing.T) {
	report := sampleReport()
	report.Benchmark = 0

	out := Render(report)
	assert.NotContains(t, out, "*Benchmark:*")
	assert.NotContains(t, out, "Status key")
	assert.Contains(t, out, statusNeutral)
}

func TestStatusEmojiThresholds(t *testing.T) {
	benchmark := 40 * time.Minute

	tests := []struct {
		name  string
		total time.Duration
		want  string
	}{
		{name: "at benchmark", total: 40 * time.Minute, want: statusGreat},
		{name: "just over", total: 41 * time.Minute, want: statusFine},
		{name: "at 1.5x", total: 60 * time.Minute, want: statusFine},
		{name: "at 2x", total: 80 * time.Minute, want: statusBad},
		{name: "beyond 2x", total: 81 * time.Minute, want: statusVeryBad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusEmoji(tt.total, benchmark))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{d: 0, want: "0m"},
		{d: 55 * time.Minute, want: "55m"},
		{d: time.Hour + 5*time.Minute, want: "1h05m"},
		{d: 26 * time.Hour, want: "26h00m"},
		{d: -15 * time.Minute, want: "-15m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d), "duration %s", tt.d)
	}
}
