// Package csv reads raw activity events from the site's daily CSV export.
// The source does no validation beyond locating the required columns;
// per-record checks belong to the normalizer so drops are counted there.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yardops/idlereport/internal/domain"
	"github.com/yardops/idlereport/internal/ports"
)

const (
	columnAssociate = "associate_id"
	columnTimestamp = "timestamp"
	columnEventType = "event_type"
)

type Source struct {
	path string
}

var _ ports.EventSource = (*Source)(nil)

func New(path string) *Source {
	return &Source{path: filepath.Clean(path)}
}

// Fetch reads every row of the export. The window is the normalizer's
// concern; the export may contain spillover from neighboring days.
func (s *Source) Fetch(ctx context.Context, _ domain.Window) ([]domain.RawEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("events file %s is empty", s.path)
		}
		return nil, fmt.Errorf("read events header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, fmt.Errorf("events file %s: %w", s.path, err)
	}

	var events []domain.RawEvent
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read events row: %w", err)
		}
		line++

		events = append(events, domain.RawEvent{
			AssociateID: field(record, columns[columnAssociate]),
			Timestamp:   field(record, columns[columnTimestamp]),
			Type:        field(record, columns[columnEventType]),
			Source: domain.SourceMetadata{
				File: filepath.Base(s.path),
				Line: line,
			},
		})
	}

	return events, nil
}

// mapColumns resolves header names to indexes, case-insensitively so
// exports with "Associate_ID" style headers still load.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range []string{columnAssociate, columnTimestamp, columnEventType} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	return columns, nil
}

func field(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}

	return record[index]
}
