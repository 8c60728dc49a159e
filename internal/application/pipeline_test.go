package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yardops/idlereport/internal/domain"
	"github.com/yardops/idlereport/internal/ports"
)

type fakeSource struct {
	events []domain.RawEvent
	err    error
}

func (f fakeSource) Fetch(_ context.Context, _ domain.Window) ([]domain.RawEvent, error) {
	return f.events, f.err
}

type fakeGateway struct {
	outcome    ports.DeliveryOutcome
	err        error
	deliveries []ports.Delivery
}

func (f *fakeGateway) Deliver(_ context.Context, d ports.Delivery) (ports.DeliveryOutcome, error) {
	f.deliveries = append(f.deliveries, d)
	return f.outcome, f.err
}

type fixedClock struct{ at time.Time }

func (f fixedClock) Now() time.Time { return f.at }

func pipelineConfig() domain.ReportConfig {
	return domain.ReportConfig{
		Window:        domain.DayWindow(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)),
		RoundingUnit:  time.Minute,
		MinReportable: 5 * time.Minute,
		TopIncidents:  5,
	}
}

func dayEvents() []domain.RawEvent {
	return []domain.RawEvent{
		{AssociateID: "a-1", Timestamp: "2026-03-09 09:00:00", Type: "IDLE_START"},
		{AssociateID: "a-1", Timestamp: "2026-03-09 09:20:00", Type: "IDLE_END"},
		{AssociateID: "a-1", Timestamp: "2026-03-09 09:25:00", Type: "IDLE_START"},
		{AssociateID: "a-1", Timestamp: "2026-03-09 09:40:00", Type: "IDLE_START"},
		{AssociateID: "a-1", Timestamp: "2026-03-09 10:00:00", Type: "IDLE_END"},
		{AssociateID: "b-1", Timestamp: "2026-03-09 16:50:00", Type: "IDLE_START"},
	}
}

func newTestPipeline(source ports.EventSource, gateway ports.DeliveryGateway, cfg domain.ReportConfig) *Pipeline {
	roster := fakeRoster{managers: map[domain.AssociateID]domain.ManagerID{"a-1": "m-1", "b-1": "m-2"}}
	renderer := func(r domain.SiteReport) string { return "rendered " + r.ReportDate.Format("2006-01-02") }
	clock := fixedClock{at: time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)}

	return NewPipeline(source, roster, gateway, renderer, clock, cfg)
}

func TestPipelineBuildReport(t *testing.T) {
	p := newTestPipeline(fakeSource{events: dayEvents()}, &fakeGateway{}, pipelineConfig())

	report, err := p.BuildReport(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Managers, 2)
	assert.Equal(t, domain.ManagerID("m-1"), report.Managers[0].Manager)
	assert.Equal(t, 55*time.Minute, report.Managers[0].Associates[0].TotalIdle)

	// b-1's unmatched start truncates at midnight: 16:50 -> 24:00.
	assert.Equal(t, 7*time.Hour+10*time.Minute, report.Managers[1].Associates[0].TotalIdle)
	assert.Equal(t, 1, report.Quality.Truncated)
	assert.Equal(t, 1, report.Quality.DuplicateStarts)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC), report.GeneratedAt)
}

func TestPipelineBuildReportIsDeterministic(t *testing.T) {
	cfg := pipelineConfig()

	var reference domain.SiteReport
	for i := 0; i < 5; i++ {
		p := newTestPipeline(fakeSource{events: dayEvents()}, &fakeGateway{}, cfg)
		report, err := p.BuildReport(context.Background())
		require.NoError(t, err)

		report.RunID = ""
		if i == 0 {
			reference = report
			continue
		}
		assert.Equal(t, reference, report, "run %d diverged", i)
	}
}

func TestPipelineRejectsInvalidConfig(t *testing.T) {
	cfg := pipelineConfig()
	cfg.RoundingUnit = -time.Minute
	p := newTestPipeline(fakeSource{events: dayEvents()}, &fakeGateway{}, cfg)

	_, err := p.BuildReport(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestPipelineEmptyWindowIsFatal(t *testing.T) {
	p := newTestPipeline(fakeSource{events: []domain.RawEvent{
		{AssociateID: "a-1", Timestamp: "2026-03-08 09:00:00", Type: "IDLE_START"},
	}}, &fakeGateway{}, pipelineConfig())

	_, err := p.BuildReport(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoEvents)
}

func TestPipelineSourceErrorAborts(t *testing.T) {
	sourceErr := errors.New("csv gone")
	p := newTestPipeline(fakeSource{err: sourceErr}, &fakeGateway{}, pipelineConfig())

	_, err := p.BuildReport(context.Background())
	assert.ErrorIs(t, err, sourceErr)
}

func TestPipelineRunDeliversRenderedPayload(t *testing.T) {
	gateway := &fakeGateway{outcome: ports.DeliveryOutcome{Delivered: true}}
	p := newTestPipeline(fakeSource{events: dayEvents()}, gateway, pipelineConfig())

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, gateway.deliveries, 1)
	d := gateway.deliveries[0]
	assert.Equal(t, "rendered 2026-03-09", d.Payload)
	assert.Equal(t, report.RunID, d.RunID)
	assert.Equal(t, report.ReportDate, d.ReportDate)
}

func TestPipelineDeliveryFailureSurfaces(t *testing.T) {
	gateway := &fakeGateway{outcome: ports.DeliveryOutcome{Delivered: false, Reason: "status 500"}}
	p := newTestPipeline(fakeSource{events: dayEvents()}, gateway, pipelineConfig())

	_, err := p.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrDeliveryFailed)
	assert.Contains(t, err.Error(), "status 500")
}

func TestPipelineDeliveryTransportErrorSurfaces(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("connection refused")}
	p := newTestPipeline(fakeSource{events: dayEvents()}, gateway, pipelineConfig())

	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrDeliveryFailed)
}
