package domain

import (
	"fmt"
	"time"
)

// Window is a half-open reporting window [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return fmt.Errorf("window boundaries are required")
	}
	if !w.End.After(w.Start) {
		return fmt.Errorf("window end %s is not after start %s", w.End.Format(time.RFC3339), w.Start.Format(time.RFC3339))
	}

	return nil
}

// DayWindow returns the window covering the calendar day containing t.
func DayWindow(t time.Time) Window {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// ReportConfig carries every knob a pipeline run needs. It is built once
// by the caller and passed down; stages never read ambient state.
type ReportConfig struct {
	Window Window

	// MinReportable excludes shorter intervals from per-associate totals.
	// They still count toward the site total.
	MinReportable time.Duration

	// RoundingUnit is applied half-up to reported totals. Must be positive.
	RoundingUnit time.Duration

	// IdleCap truncates a single associate's total when positive. Zero
	// disables the cap.
	IdleCap time.Duration

	// Benchmark is the expected idle duration per associate per day.
	// Zero suppresses the benchmark line and status emojis stay neutral.
	Benchmark time.Duration

	// TopIncidents is the number of longest intervals listed in the
	// report summary box.
	TopIncidents int
}

func (c ReportConfig) Validate() error {
	if err := c.Window.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.RoundingUnit <= 0 {
		return fmt.Errorf("%w: rounding unit must be positive, got %s", ErrInvalidConfig, c.RoundingUnit)
	}
	if c.MinReportable < 0 {
		return fmt.Errorf("%w: min reportable duration must not be negative, got %s", ErrInvalidConfig, c.MinReportable)
	}
	if c.IdleCap < 0 {
		return fmt.Errorf("%w: idle cap must not be negative, got %s", ErrInvalidConfig, c.IdleCap)
	}
	if c.Benchmark < 0 {
		return fmt.Errorf("%w: benchmark must not be negative, got %s", ErrInvalidConfig, c.Benchmark)
	}
	if c.TopIncidents < 0 {
		return fmt.Errorf("%w: top incidents count must not be negative, got %d", ErrInvalidConfig, c.TopIncidents)
	}

	return nil
}

// RoundHalfUp rounds d to the nearest multiple of unit, halves away from
// zero for non-negative d. A non-positive unit leaves d untouched.
func RoundHalfUp(d, unit time.Duration) time.Duration {
	if unit <= 0 || d < 0 {
		return d
	}

	return (d + unit/2) / unit * unit
}
