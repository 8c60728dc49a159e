package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	slackgw "github.com/yardops/idlereport/internal/adapters/gateway/slack"
	rostertoml "github.com/yardops/idlereport/internal/adapters/roster/toml"
	"github.com/yardops/idlereport/internal/domain"
	"github.com/yardops/idlereport/internal/ports"
)

const (
	eventsPathKey   = "events.path"
	webhookURLKey   = "webhook.url"
	minReportKey    = "report.min_reportable"
	roundingUnitKey = "report.rounding_unit"
	idleCapKey      = "report.idle_cap"
	benchmarkKey    = "report.benchmark"
	topIncidentsKey = "report.top_incidents"
	timezoneKey     = "report.timezone"
)

type app struct {
	cfg        *viper.Viper
	roster     ports.RosterDirectory
	newGateway func(url string) ports.DeliveryGateway
	now        func() time.Time
}

func wireApp() (*app, error) {
	cfg := viper.New()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetDefault(eventsPathKey, filepath.Join(homeDir, ".idlereport", "events.csv"))
	cfg.SetDefault(minReportKey, "5m")
	cfg.SetDefault(roundingUnitKey, "1m")
	cfg.SetDefault(idleCapKey, "0")
	cfg.SetDefault(benchmarkKey, "0")
	cfg.SetDefault(topIncidentsKey, 5)
	cfg.SetDefault(timezoneKey, "Local")

	// NewDirectory points cfg at ~/.idlereport/config.toml and reads it,
	// so the defaults above resolve against the same file.
	roster, err := rostertoml.NewDirectory(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire roster directory: %w", err)
	}

	return &app{
		cfg:    cfg,
		roster: roster,
		newGateway: func(url string) ports.DeliveryGateway {
			return slackgw.New(url)
		},
		now: time.Now,
	}, nil
}

// reportConfig assembles the immutable run configuration for one day.
// An empty date means yesterday, matching the nightly schedule.
func (a *app) reportConfig(date string) (domain.ReportConfig, error) {
	loc, err := a.location()
	if err != nil {
		return domain.ReportConfig{}, err
	}

	day := a.now().In(loc).AddDate(0, 0, -1)
	if date != "" {
		day, err = time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			return domain.ReportConfig{}, fmt.Errorf("%w: parse report date %q: %v", domain.ErrInvalidConfig, date, err)
		}
	}

	cfg := domain.ReportConfig{
		Window:        domain.DayWindow(day),
		MinReportable: a.cfg.GetDuration(minReportKey),
		RoundingUnit:  a.cfg.GetDuration(roundingUnitKey),
		IdleCap:       a.cfg.GetDuration(idleCapKey),
		Benchmark:     a.cfg.GetDuration(benchmarkKey),
		TopIncidents:  a.cfg.GetInt(topIncidentsKey),
	}

	return cfg, cfg.Validate()
}

func (a *app) location() (*time.Location, error) {
	name := a.cfg.GetString(timezoneKey)
	if name == "" || name == "Local" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: load timezone %q: %v", domain.ErrInvalidConfig, name, err)
	}

	return loc, nil
}

func (a *app) eventsPath(override string) string {
	if override != "" {
		return override
	}

	return a.cfg.GetString(eventsPathKey)
}

func (a *app) webhookURL(override string) string {
	if override != "" {
		return override
	}
	if url := os.Getenv("IDLEREPORT_WEBHOOK_URL"); url != "" {
		return url
	}

	return a.cfg.GetString(webhookURLKey)
}
