package application

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/bpradana/weave"
	"github.com/google/uuid"
	"github.com/yardops/idlereport/internal/domain"
	"github.com/yardops/idlereport/internal/ports"
)

// Renderer turns a finished SiteReport into the delivery payload. It must
// be pure so retried deliveries never diverge.
type Renderer func(domain.SiteReport) string

// Pipeline runs one reporting day end to end: fetch, normalize, reconcile,
// aggregate, render, deliver. A fatal error at any stage aborts the run
// with no partial report.
type Pipeline struct {
	source   ports.EventSource
	roster   ports.RosterDirectory
	gateway  ports.DeliveryGateway
	renderer Renderer
	clock    ports.Clock
	cfg      domain.ReportConfig
	workers  int
}

func NewPipeline(source ports.EventSource, roster ports.RosterDirectory, gateway ports.DeliveryGateway, renderer Renderer, clock ports.Clock, cfg domain.ReportConfig) *Pipeline {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Pipeline{
		source:   source,
		roster:   roster,
		gateway:  gateway,
		renderer: renderer,
		clock:    clock,
		cfg:      cfg,
		workers:  runtime.NumCPU(),
	}
}

// BuildReport produces the canonical SiteReport for the configured window.
// Distinct associates reconcile in parallel on a worker pool; the reduction
// re-sorts before aggregation so scheduling never changes the result.
func (p *Pipeline) BuildReport(ctx context.Context) (domain.SiteReport, error) {
	if err := p.cfg.Validate(); err != nil {
		return domain.SiteReport{}, err
	}

	raw, err := p.source.Fetch(ctx, p.cfg.Window)
	if err != nil {
		return domain.SiteReport{}, fmt.Errorf("fetch raw events: %w", err)
	}

	set := Normalize(raw, p.cfg.Window)
	if set.Empty() {
		return domain.SiteReport{}, fmt.Errorf("%w: %s", domain.ErrNoEvents, p.cfg.Window.Start.Format("2006-01-02"))
	}
	slog.Info("normalized events",
		"associates", len(set.Associates),
		"dropped", set.Drops.Total(),
	)

	results, err := p.reconcileAll(ctx, set)
	if err != nil {
		return domain.SiteReport{}, err
	}

	report, err := Aggregate(ctx, results, p.roster, p.cfg)
	if err != nil {
		return domain.SiteReport{}, fmt.Errorf("aggregate intervals: %w", err)
	}

	report.Quality.MissingAssociate = set.Drops.MissingAssociate
	report.Quality.BadTimestamp = set.Drops.BadTimestamp
	report.Quality.UnknownType = set.Drops.UnknownType
	report.Quality.OutOfWindow = set.Drops.OutOfWindow

	report.ReportDate = p.cfg.Window.Start
	report.RunID = uuid.NewString()
	report.GeneratedAt = p.clock.Now()

	return report, nil
}

// reconcileAll fans the per-associate reconciliation out as a task graph.
// Every associate is independent, so tasks share no state and the graph
// has no edges; the worker pool only bounds concurrency.
func (p *Pipeline) reconcileAll(ctx context.Context, set NormalizedSet) ([]domain.ReconcileResult, error) {
	graph := weave.NewGraph()

	handles := make([]*weave.Handle[domain.ReconcileResult], 0, len(set.Associates))
	for _, associate := range set.Associates {
		associate := associate
		events := set.ByAssociate[associate]

		handle, err := weave.AddTask(graph, "reconcile-"+string(associate),
			func(_ context.Context, _ weave.DependencyResolver) (domain.ReconcileResult, error) {
				return domain.Reconcile(associate, events, p.cfg.Window), nil
			})
		if err != nil {
			return nil, fmt.Errorf("add reconcile task for %s: %w", associate, err)
		}
		handles = append(handles, handle)
	}

	dispatcher := weave.NewWorkerPoolDispatcher(p.workers)
	results, _, err := graph.Run(ctx, weave.WithDispatcher(dispatcher))
	if err != nil {
		return nil, fmt.Errorf("run reconcile graph: %w", err)
	}

	reconciled := make([]domain.ReconcileResult, 0, len(handles))
	for _, handle := range handles {
		result, err := handle.Value(results)
		if err != nil {
			return nil, fmt.Errorf("collect reconcile result %s: %w", handle.ID(), err)
		}
		reconciled = append(reconciled, result)
	}

	return reconciled, nil
}

// Deliver renders the report and hands it to the gateway. The core does
// no retrying; a failed outcome surfaces as ErrDeliveryFailed.
func (p *Pipeline) Deliver(ctx context.Context, report domain.SiteReport) error {
	outcome, err := p.gateway.Deliver(ctx, ports.Delivery{
		ReportDate: report.ReportDate,
		RunID:      report.RunID,
		Payload:    p.renderer(report),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	if !outcome.Delivered {
		return fmt.Errorf("%w: %s", domain.ErrDeliveryFailed, outcome.Reason)
	}

	slog.Info("report delivered", "run_id", report.RunID, "date", report.ReportDate.Format("2006-01-02"))

	return nil
}

// Run is the whole workflow: build then deliver.
func (p *Pipeline) Run(ctx context.Context) (domain.SiteReport, error) {
	report, err := p.BuildReport(ctx)
	if err != nil {
		return domain.SiteReport{}, err
	}

	if err := p.Deliver(ctx, report); err != nil {
		return domain.SiteReport{}, err
	}

	return report, nil
}
