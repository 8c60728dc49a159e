package preview

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/yardops/idlereport/internal/domain"
)

type RenderOptions struct {
	// Verbose includes every anomaly counter, not just the summary line.
	Verbose bool
}

func renderView(report domain.SiteReport, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(fmt.Sprintf("Idle report for %s", report.ReportDate.Format("Monday, 02 Jan 2006"))),
		s.header.Render(fmt.Sprintf("run %s, generated %s", report.RunID, report.GeneratedAt.Format(time.RFC3339))),
		s.header.Render(fmt.Sprintf("site total %s across %d associates (avg %s)",
			formatDuration(report.SiteTotalIdle), report.SiteAssociates, formatDuration(report.SiteAverage()))),
	}

	if len(report.Managers) == 0 {
		lines = append(lines, s.empty.Render("No reportable idle time."))
	}

	for _, group := range report.Managers {
		lines = append(lines, s.section.Render(renderGroup(group, s)))
	}

	if len(report.TopIncidents) > 0 {
		lines = append(lines, s.section.Render(renderIncidents(report.TopIncidents, s)))
	}

	lines = append(lines, s.section.Render(renderQuality(report.Quality, opts, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderGroup(group domain.ManagerGroup, s styles) string {
	parts := []string{s.manager.Render(string(group.Manager))}

	for _, summary := range group.Associates {
		line := fmt.Sprintf("  %-12s %8s  intervals=%d longest=%s",
			summary.Associate, formatDuration(summary.TotalIdle), summary.IntervalCount, formatDuration(summary.LongestInterval))
		if summary.Capped {
			line += " " + s.capped.Render("[capped]")
		}
		parts = append(parts, s.row.Render(line))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderIncidents(incidents []domain.Incident, s styles) string {
	parts := []string{s.manager.Render("Longest intervals")}
	for _, incident := range incidents {
		parts = append(parts, s.incident.Render(fmt.Sprintf("  %s  %s starting %s",
			incident.Associate, formatDuration(incident.Duration), incident.Start.Format("15:04"))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderQuality(q domain.QualityStats, opts RenderOptions, s styles) string {
	if q.Clean() {
		return s.quality.Render("data quality: clean")
	}

	summary := fmt.Sprintf("data quality: %d dropped, %d orphan ends, %d truncated, %d unassigned",
		q.DroppedRecords(), q.OrphanEnds, q.Truncated, q.UnknownManagers)
	if !opts.Verbose {
		return s.quality.Render(summary)
	}

	parts := []string{
		s.quality.Render(summary),
		s.quality.Render(fmt.Sprintf("  missing_associate_id=%d bad_timestamp=%d unknown_event_type=%d out_of_window=%d duplicate_start=%d",
			q.MissingAssociate, q.BadTimestamp, q.UnknownType, q.OutOfWindow, q.DuplicateStarts)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
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
