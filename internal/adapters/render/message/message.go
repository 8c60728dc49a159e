// Package message renders a SiteReport into the Slack-flavored text the
// delivery gateway posts. Rendering is a pure function of the report:
// equal reports produce byte-identical output, so a retried delivery can
// never diverge from the original attempt.
package message

import (
	"fmt"
	"strings"
	"time"

	"github.com/yardops/idlereport/internal/domain"
)

const (
	statusGreat   = "\U0001F7E2"
	statusFine    = "\U0001F7E1"
	statusBad     = "\U0001F7E0"
	statusVeryBad = "\U0001F534"
	statusNeutral = "⚪"
)

func Render(report domain.SiteReport) string {
	var sections []string

	sections = append(sections, renderHeader(report))
	if box := renderSummaryBox(report); box != "" {
		sections = append(sections, box)
	}

	for _, group := range report.Managers {
		sections = append(sections, renderManager(group, report.Benchmark))
	}

	if quality := renderQuality(report.Quality); quality != "" {
		sections = append(sections, quality)
	}

	return strings.Join(sections, "\n\n") + "\n"
}

func renderHeader(report domain.SiteReport) string {
	lines := []string{
		fmt.Sprintf("\U0001F4CA *Daily Idle Report for %s*", report.ReportDate.Format("Monday, January 02")),
		fmt.Sprintf("*Site total idle:* %s %s", formatDuration(report.SiteTotalIdle), statusEmoji(report.SiteAverage(), report.Benchmark)),
		fmt.Sprintf("*Site average:* %s per associate (%d associates)", formatDuration(report.SiteAverage()), report.SiteAssociates),
	}

	if report.Benchmark > 0 {
		diff := report.SiteAverage() - report.Benchmark
		lines = append(lines, fmt.Sprintf("*Benchmark:* %s per associate (difference: %s)",
			formatDuration(report.Benchmark), formatSignedDuration(diff)))
	}

	return strings.Join(lines, "\n")
}

func renderSummaryBox(report domain.SiteReport) string {
	var lines []string

	if report.Benchmark > 0 {
		lines = append(lines,
			"Status key (total idle vs benchmark):",
			"  "+statusGreat+" Great:    at or below benchmark",
			"  "+statusFine+" Fine:     up to 1.5x benchmark",
			"  "+statusBad+" Bad:      up to 2x benchmark",
			"  "+statusVeryBad+" Very Bad: beyond 2x benchmark",
		)
	}

	if len(report.TopIncidents) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, fmt.Sprintf("Top %d longest idle intervals", len(report.TopIncidents)))
		for _, incident := range report.TopIncidents {
			lines = append(lines, fmt.Sprintf("  - %s: %s starting %s",
				incident.Associate, formatDuration(incident.Duration), incident.Start.Format("15:04")))
		}
	}

	if len(lines) == 0 {
		return ""
	}

	return "```" + boxed(lines) + "```"
}

func renderManager(group domain.ManagerGroup, benchmark time.Duration) string {
	title := fmt.Sprintf("*Manager %s*", group.Manager)
	if group.Manager == domain.UnassignedManager {
		title = "*" + string(domain.UnassignedManager) + "* (no roster entry)"
	}

	if len(group.Associates) == 0 {
		return title + "\nNo reportable idle time."
	}

	rows := make([][]string, 0, len(group.Associates))
	for _, summary := range group.Associates {
		total := formatDuration(summary.TotalIdle)
		if summary.Capped {
			total += " (capped)"
		}
		rows = append(rows, []string{
			statusEmoji(summary.TotalIdle, benchmark),
			string(summary.Associate),
			total,
			fmt.Sprintf("%d", summary.IntervalCount),
			formatDuration(summary.LongestInterval),
		})
	}

	table := renderTable([]string{"Status", "Associate", "Total Idle", "Intervals", "Longest"}, rows)

	return title + "\n```" + table + "```"
}

func renderQuality(q domain.QualityStats) string {
	if q.Clean() {
		return "_Data quality: clean run, no records dropped._"
	}

	parts := make([]string, 0, 8)
	appendCount := func(label string, n int) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", label, n))
		}
	}
	appendCount("missing_associate_id", q.MissingAssociate)
	appendCount("bad_timestamp", q.BadTimestamp)
	appendCount("unknown_event_type", q.UnknownType)
	appendCount("out_of_window", q.OutOfWindow)
	appendCount("orphan_end", q.OrphanEnds)
	appendCount("duplicate_start", q.DuplicateStarts)
	appendCount("truncated", q.Truncated)
	appendCount("unknown_manager", q.UnknownManagers)

	return "_Data quality: " + strings.Join(parts, ", ") + "_"
}

// statusEmoji grades an idle duration against the benchmark. Without a
// benchmark there is nothing to grade against.
func statusEmoji(total, benchmark time.Duration) string {
	if benchmark <= 0 {
		return statusNeutral
	}

	switch {
	case total <= benchmark:
		return statusGreat
	case total <= benchmark+benchmark/2:
		return statusFine
	case total <= 2*benchmark:
		return statusBad
	default:
		return statusVeryBad
	}
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		return "-" + formatDuration(-d)
	}

	hours := d / time.Hour
	minutes := (d % time.Hour) / time.Minute
	if hours > 0 {
		return fmt.Sprintf("%dh%02dm", hours, minutes)
	}

	return fmt.Sprintf("%dm", minutes)
}

func formatSignedDuration(d time.Duration) string {
	if d < 0 {
		return "-" + formatDuration(-d)
	}

	return "+" + formatDuration(d)
}

// renderTable draws an ASCII table with per-column widths, bordered the
// way the site's earlier reporting tooling drew them.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len([]rune(header))
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := len([]rune(cell)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	separatorParts := make([]string, len(headers))
	for i, w := range widths {
		separatorParts[i] = strings.Repeat("-", w)
	}
	separator := "+-" + strings.Join(separatorParts, "-+-") + "-+"

	lines := []string{separator, tableLine(headers, widths), separator}
	for _, row := range rows {
		lines = append(lines, tableLine(row, widths))
	}
	lines = append(lines, separator)

	return strings.Join(lines, "\n")
}

func tableLine(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = cell + strings.Repeat(" ", widths[i]-len([]rune(cell)))
	}

	return "| " + strings.Join(padded, " | ") + " |"
}

// boxed wraps lines in the +---+ border used for summary callouts.
func boxed(lines []string) string {
	maxWidth := 0
	for _, line := range lines {
		if w := len([]rune(line)); w > maxWidth {
			maxWidth = w
		}
	}

	border := "+-" + strings.Repeat("-", maxWidth) + "-+"
	out := []string{border}
	for _, line := range lines {
		out = append(out, "| "+line+strings.Repeat(" ", maxWidth-len([]rune(line)))+" |")
	}
	out = append(out, border)

	return strings.Join(out, "\n")
}
