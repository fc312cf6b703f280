package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/prepline/schedule-import-go/pkg/models"
	"github.com/prepline/schedule-import-go/pkg/schedule"
)

// ErrFileUnreadable means the upload could not be parsed as CSV at all.
// It is fatal for the import attempt; no partial results are returned.
var ErrFileUnreadable = errors.New("file unreadable")

// ShiftSink receives the canonical shift records an import produces.
// Deduplication across repeated imports is the sink's concern.
type ShiftSink interface {
	SaveShifts(organizationID string, records []models.ShiftRecord) error
}

// Options selects how one import run proceeds. A nil Mapping asks for
// format detection instead of application; a zero WeekStart defaults to
// the Monday of the current week for weekly grids.
type Options struct {
	OrganizationID string
	Mapping        *models.ColumnMapping
	WeekStart      time.Time
}

// Importer is the control layer that turns raw file bytes into shift
// records and hands them to the sink.
type Importer struct {
	Sink ShiftSink
}

// ParseCSV reads headers and rows from raw file bytes. The first row is
// the header; empty lines are dropped; short rows leave their trailing
// columns absent rather than empty.
func ParseCSV(data []byte) ([]string, []schedule.Row, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFileUnreadable, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []schedule.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrFileUnreadable, err)
		}

		empty := true
		for _, field := range record {
			if strings.TrimSpace(field) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		row := make(schedule.Row, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// Import parses the file and either proposes a mapping (when none was
// supplied) or applies the confirmed mapping and forwards the records
// to the sink. An unconfirmed detector proposal is never auto-applied.
func (im *Importer) Import(data []byte, opts Options) (*models.ImportResult, error) {
	headers, rows, err := ParseCSV(data)
	if err != nil {
		return nil, err
	}

	if opts.Mapping == nil {
		detected := schedule.DetectFormat(headers)
		return &models.ImportResult{
			NeedsMapping:    true,
			ProposedMapping: &detected,
			RowsTotal:       len(rows),
		}, nil
	}

	records, skipped, err := schedule.ApplyMapping(rows, opts.Mapping, opts.WeekStart)
	if err != nil {
		return nil, err
	}

	if im.Sink != nil {
		if err := im.Sink.SaveShifts(opts.OrganizationID, records); err != nil {
			return nil, err
		}
	}

	return &models.ImportResult{
		Records:   records,
		RowsTotal: len(rows),
		Imported:  len(records),
		Skipped:   skipped,
	}, nil
}
