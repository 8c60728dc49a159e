package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/yardops/idlereport/internal/domain"
	"github.com/yardops/idlereport/internal/ports"
)

// Aggregate rolls reconciled per-associate interval sets into a SiteReport
// body: per-manager groups, site totals, top incidents, and quality
// counts. Associates missing from the roster land in the UNASSIGNED
// bucket so their idle time is never lost.
func Aggregate(ctx context.Context, results []domain.ReconcileResult, roster ports.RosterDirectory, cfg domain.ReportConfig) (domain.SiteReport, error) {
	report := domain.SiteReport{Benchmark: cfg.Benchmark}

	groups := make(map[domain.ManagerID][]domain.AssociateSummary)
	var incidents []domain.Incident
	var siteTotal int64

	sorted := make([]domain.ReconcileResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(a, b int) bool {
		return sorted[a].Associate < sorted[b].Associate
	})

	for _, result := range sorted {
		report.Quality.OrphanEnds += result.OrphanEnds
		report.Quality.DuplicateStarts += result.DuplicateStarts
		report.Quality.Truncated += result.Truncated

		if len(result.Intervals) == 0 {
			continue
		}
		report.SiteAssociates++

		summary, contribution := summarize(result, cfg)
		siteTotal += int64(contribution)

		for _, iv := range result.Intervals {
			incidents = append(incidents, domain.Incident{
				Associate: iv.Associate,
				Start:     iv.Start,
				Duration:  iv.Duration(),
			})
		}

		if summary.IntervalCount == 0 {
			// Nothing qualified; the associate still contributed to the
			// site total above.
			continue
		}

		manager, err := roster.ManagerOf(ctx, result.Associate)
		if err != nil {
			if !errors.Is(err, domain.ErrUnknownManager) {
				return domain.SiteReport{}, fmt.Errorf("resolve manager for %s: %w", result.Associate, err)
			}
			manager = domain.UnassignedManager
			report.Quality.UnknownManagers++
		}

		summary.Manager = manager
		groups[manager] = append(groups[manager], summary)
	}

	report.SiteTotalIdle = domain.RoundHalfUp(time.Duration(siteTotal), cfg.RoundingUnit)
	report.Managers = orderGroups(groups)
	report.TopIncidents = topIncidents(incidents, cfg.TopIncidents)

	return report, nil
}

// summarize computes one associate's summary plus their raw contribution
// to the site total. Intervals shorter than MinReportable are excluded
// from the associate total but still count toward the site.
func summarize(result domain.ReconcileResult, cfg domain.ReportConfig) (domain.AssociateSummary, int64) {
	summary := domain.AssociateSummary{Associate: result.Associate}

	var qualifying, all int64
	for _, iv := range result.Intervals {
		d := iv.Duration()
		all += int64(d)
		if d < cfg.MinReportable {
			continue
		}

		qualifying += int64(d)
		summary.IntervalCount++
		if d > summary.LongestInterval {
			summary.LongestInterval = d
		}
	}

	if cfg.IdleCap > 0 {
		if qualifying > int64(cfg.IdleCap) {
			qualifying = int64(cfg.IdleCap)
			summary.Capped = true
		}
		if all > int64(cfg.IdleCap) {
			all = int64(cfg.IdleCap)
		}
	}

	summary.TotalIdle = domain.RoundHalfUp(time.Duration(qualifying), cfg.RoundingUnit)

	return summary, all
}

// orderGroups fixes the report ordering: managers ascending with
// UNASSIGNED last, associates by descending total then ascending ID.
func orderGroups(groups map[domain.ManagerID][]domain.AssociateSummary) []domain.ManagerGroup {
	ordered := make([]domain.ManagerGroup, 0, len(groups))
	for manager, summaries := range groups {
		sort.Slice(summaries, func(a, b int) bool {
			if summaries[a].TotalIdle != summaries[b].TotalIdle {
				return summaries[a].TotalIdle > summaries[b].TotalIdle
			}
			return summaries[a].Associate < summaries[b].Associate
		})
		ordered = append(ordered, domain.ManagerGroup{Manager: manager, Associates: summaries})
	}

	sort.Slice(ordered, func(a, b int) bool {
		if ordered[a].Manager == domain.UnassignedManager {
			return false
		}
		if ordered[b].Manager == domain.UnassignedManager {
			return true
		}
		return ordered[a].Manager < ordered[b].Manager
	})

	return ordered
}

func topIncidents(incidents []domain.Incident, n int) []domain.Incident {
	if n <= 0 || len(incidents) == 0 {
		return nil
	}

	sort.Slice(incidents, func(a, b int) bool {
		if incidents[a].Duration != incidents[b].Duration {
			return incidents[a].Duration > incidents[b].Duration
		}
		if incidents[a].Associate != incidents[b].Associate {
			return incidents[a].Associate < incidents[b].Associate
		}
		return incidents[a].Start.Before(incidents[b].Start)
	})

	if len(incidents) > n {
		incidents = incidents[:n]
	}

	return incidents
}
