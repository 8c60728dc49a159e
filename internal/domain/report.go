package domain

import "time"

// UnassignedManager buckets associates with no roster entry so their idle
// time is never silently dropped.
const UnassignedManager ManagerID = "UNASSIGNED"

// AssociateSummary is the aggregated view of one associate's day.
// Derived once by the aggregator, never mutated afterward.
type AssociateSummary struct {
	Associate       AssociateID
	Manager         ManagerID
	TotalIdle       time.Duration
	IntervalCount   int
	LongestInterval time.Duration
	Capped          bool
}

// ManagerGroup holds one manager's associates, ordered by descending
// total idle, ties broken by ascending associate ID.
type ManagerGroup struct {
	Manager    ManagerID
	Associates []AssociateSummary
}

// Incident is a single long idle interval surfaced in the report summary.
type Incident struct {
	Associate AssociateID
	Start     time.Time
	Duration  time.Duration
}

// QualityStats counts every recovered anomaly of a run so data-quality
// regressions stay visible in the delivered report.
type QualityStats struct {
	MissingAssociate int
	BadTimestamp     int
	UnknownType      int
	OutOfWindow      int
	OrphanEnds       int
	DuplicateStarts  int
	Truncated        int
	UnknownManagers  int
}

// DroppedRecords is the count of raw records excluded before reconciliation.
func (q QualityStats) DroppedRecords() int {
	return q.MissingAssociate + q.BadTimestamp + q.UnknownType + q.OutOfWindow
}

func (q QualityStats) Clean() bool {
	return q == QualityStats{}
}

// SiteReport is the terminal artifact of one pipeline run.
type SiteReport struct {
	ReportDate time.Time
	RunID      string

	// Managers is ordered by ascending manager ID with the UNASSIGNED
	// bucket always last.
	Managers []ManagerGroup

	SiteTotalIdle  time.Duration
	SiteAssociates int
	Benchmark      time.Duration
	TopIncidents   []Incident
	Quality        QualityStats
	GeneratedAt    time.Time
}

// SiteAverage is the site total spread over every associate that had at
// least one reconciled interval.
func (r SiteReport) SiteAverage() time.Duration {
	if r.SiteAssociates == 0 {
		return 0
	}

	return r.SiteTotalIdle / time.Duration(r.SiteAssociates)
}

// AssociateCount is the number of associates listed under managers, which
// excludes associates with no qualifying intervals.
func (r SiteReport) AssociateCount() int {
	var n int
	for _, group := range r.Managers {
		n += len(group.Associates)
	}
	return n
}
