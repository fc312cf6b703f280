package schedule

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/prepline/schedule-import-go/pkg/models"
)

// MappingIncompleteError reports a mapping that lacks required bindings
// for its declared format. It is a configuration error: the only hard
// failure the applier produces. Data problems in individual rows are
// skipped and counted instead.
type MappingIncompleteError struct {
	Format  models.Format
	Missing []string
}

func (e *MappingIncompleteError) Error() string {
	return fmt.Sprintf("mapping incomplete for %s format: missing %s", e.Format, strings.Join(e.Missing, ", "))
}

// MissingFields returns the required bindings absent from the mapping
// for its declared format. Standard needs name/date/start/end; weekly
// needs name plus at least one weekday; custom is best-effort and has
// no requirements.
func MissingFields(m *models.ColumnMapping) []string {
	var missing []string
	switch m.Format {
	case models.FormatStandard:
		if m.EmployeeNameField == "" {
			missing = append(missing, "employee_name_field")
		}
		if m.DateField == "" {
			missing = append(missing, "date_field")
		}
		if m.StartTimeField == "" {
			missing = append(missing, "start_time_field")
		}
		if m.EndTimeField == "" {
			missing = append(missing, "end_time_field")
		}
	case models.FormatWeekly:
		if m.EmployeeNameField == "" {
			missing = append(missing, "employee_name_field")
		}
		if !m.HasWeekdayField() {
			missing = append(missing, "weekday_field")
		}
	}
	return missing
}

// ApplyMapping runs the applier path selected by the mapping's format
// and returns the emitted records plus the count of rows or cells that
// could not be parsed. Custom mappings try the weekly path when any
// weekday column is bound and fall back to standard otherwise, matching
// the detector's own fallback.
func ApplyMapping(rows []Row, mapping *models.ColumnMapping, weekStart time.Time) ([]models.ShiftRecord, int, error) {
	switch mapping.Format {
	case models.FormatWeekly:
		return applyWeekly(rows, mapping, weekStart)
	case models.FormatCustom:
		if mapping.HasWeekdayField() {
			return applyWeekly(rows, mapping, weekStart)
		}
		return applyStandard(rows, mapping)
	default:
		return applyStandard(rows, mapping)
	}
}

// applyStandard handles one-row-per-shift files with explicit
// date/start/end columns.
func applyStandard(rows []Row, mapping *models.ColumnMapping) ([]models.ShiftRecord, int, error) {
	if mapping.Format == models.FormatStandard {
		if missing := MissingFields(mapping); len(missing) > 0 {
			return nil, 0, &MappingIncompleteError{Format: mapping.Format, Missing: missing}
		}
	}

	records := make([]models.ShiftRecord, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		name := strings.TrimSpace(ResolveField(row, mapping.EmployeeNameField))
		start := strings.TrimSpace(ResolveField(row, mapping.StartTimeField))
		end := strings.TrimSpace(ResolveField(row, mapping.EndTimeField))
		if name == "" || start == "" || end == "" {
			log.Printf("schedule: skipping row %d: missing name or time values", i+1)
			skipped++
			continue
		}

		startTime := NormalizeTime(start)
		endTime := NormalizeTime(end)
		if !clock24Re.MatchString(startTime) || !clock24Re.MatchString(endTime) {
			// Never emit a record whose times are not both HH:MM.
			log.Printf("schedule: skipping row %d: unparsable time range %q-%q", i+1, start, end)
			skipped++
			continue
		}

		first, last := SplitName(name)
		date := NormalizeDate(ResolveField(row, mapping.DateField))
		breakMinutes := 0.0
		if mapping.BreakDurationField != "" {
			if v, err := strconv.ParseFloat(strings.TrimSpace(ResolveField(row, mapping.BreakDurationField)), 64); err == nil {
				breakMinutes = v
			}
		}

		records = append(records, models.ShiftRecord{
			EmployeeName:         name,
			FirstName:            first,
			LastName:             last,
			EmployeeID:           ResolveField(row, employeeIDAliases...),
			Role:                 strings.TrimSpace(ResolveField(row, mapping.RoleField)),
			Date:                 date,
			ShiftDate:            date,
			StartTime:            startTime,
			EndTime:              endTime,
			BreakDurationMinutes: breakMinutes,
			Notes:                strings.TrimSpace(ResolveField(row, mapping.NotesField)),
		})
	}
	return records, skipped, nil
}

// applyWeekly handles one-row-per-employee grids with a column per
// weekday. Each bound (employee, day) cell becomes at most one record;
// the calendar date is weekStart plus the day's Monday-first index.
// Weekly grids carry no break-duration signal, so breaks are zero.
func applyWeekly(rows []Row, mapping *models.ColumnMapping, weekStart time.Time) ([]models.ShiftRecord, int, error) {
	if mapping.Format == models.FormatWeekly {
		if missing := MissingFields(mapping); len(missing) > 0 {
			return nil, 0, &MappingIncompleteError{Format: mapping.Format, Missing: missing}
		}
	}
	if weekStart.IsZero() {
		weekStart = MondayOf(time.Now())
	}

	var records []models.ShiftRecord
	skipped := 0
	for i, row := range rows {
		name := strings.TrimSpace(ResolveField(row, mapping.EmployeeNameField))
		if name == "" {
			log.Printf("schedule: skipping row %d: missing employee name", i+1)
			skipped++
			continue
		}
		first, last := SplitName(name)
		employeeID := ResolveField(row, employeeIDAliases...)
		rowRole := strings.TrimSpace(ResolveField(row, mapping.RoleField))

		for day := range models.Weekdays {
			column := mapping.WeekdayField(day)
			if column == "" {
				continue
			}
			cell := ResolveField(row, column)
			shift := ExtractShift(cell)
			if !shift.Empty() && (!clock24Re.MatchString(shift.StartTime) || !clock24Re.MatchString(shift.EndTime)) {
				// Never emit a record whose times are not both HH:MM.
				shift.StartTime, shift.EndTime = "", ""
			}
			if shift.Empty() {
				if strings.TrimSpace(cell) != "" && !strings.EqualFold(strings.TrimSpace(cell), "off") {
					log.Printf("schedule: skipping %s cell for row %d: unparsable %q", models.Weekdays[day], i+1, cell)
					skipped++
				}
				continue
			}

			role := shift.Role
			if role == "" {
				role = rowRole
			}
			date := weekStart.AddDate(0, 0, day).Format("2006-01-02")
			records = append(records, models.ShiftRecord{
				EmployeeName: name,
				FirstName:    first,
				LastName:     last,
				EmployeeID:   employeeID,
				Role:         role,
				Date:         date,
				ShiftDate:    date,
				StartTime:    shift.StartTime,
				EndTime:      shift.EndTime,
			})
		}
	}
	return records, skipped, nil
}
