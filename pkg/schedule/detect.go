package schedule

import (
	"github.com/prepline/schedule-import-go/pkg/models"
)

// Alias priority lists used by the detector to auto-bind columns. Each
// list is checked in order and the first header present wins; they
// mirror the header spellings seen in 7shifts and common timekeeping
// exports.
var (
	employeeNameAliases = []string{"Name", "Employee", "Employee Name"}
	roleAliases         = []string{"Role", "role", "Position"}
	dateAliases         = []string{"Date", "date", "Shift Date"}
	startTimeAliases    = []string{"Start Time", "start_time", "Start"}
	endTimeAliases      = []string{"End Time", "end_time", "End"}
	breakAliases        = []string{"Break", "break_duration", "Break Duration"}
	notesAliases        = []string{"Notes", "notes", "Comments"}
)

// DetectFormat classifies a header row as weekly, standard, or custom
// and proposes an initial ColumnMapping with whatever columns it could
// auto-bind. It never fails; unrecognized headers yield a custom
// classification with an empty mapping skeleton for manual binding.
func DetectFormat(headers []string) models.DetectionResult {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	firstPresent := func(aliases []string) string {
		for _, alias := range aliases {
			if present[alias] {
				return alias
			}
		}
		return ""
	}

	var mapping models.ColumnMapping

	// Weekly grids are identified by exact English weekday headers.
	weekly := false
	for day, name := range models.Weekdays {
		if present[name] {
			mapping.SetWeekdayField(day, name)
			weekly = true
		}
	}
	if weekly {
		mapping.Format = models.FormatWeekly
		mapping.EmployeeNameField = firstPresent(employeeNameAliases)
		mapping.RoleField = firstPresent(roleAliases)
		return models.DetectionResult{Format: models.FormatWeekly, Mapping: mapping}
	}

	// Standard files need at least two of date/start/end to be
	// recognizable; name and role bindings come along when present.
	dateCol := firstPresent(dateAliases)
	startCol := firstPresent(startTimeAliases)
	endCol := firstPresent(endTimeAliases)
	matched := 0
	for _, col := range []string{dateCol, startCol, endCol} {
		if col != "" {
			matched++
		}
	}
	if matched >= 2 {
		mapping.Format = models.FormatStandard
		mapping.DateField = dateCol
		mapping.StartTimeField = startCol
		mapping.EndTimeField = endCol
		mapping.EmployeeNameField = firstPresent(employeeNameAliases)
		mapping.RoleField = firstPresent(roleAliases)
		mapping.BreakDurationField = firstPresent(breakAliases)
		mapping.NotesField = firstPresent(notesAliases)
		return models.DetectionResult{Format: models.FormatStandard, Mapping: mapping}
	}

	mapping.Format = models.FormatCustom
	return models.DetectionResult{Format: models.FormatCustom, Mapping: mapping}
}
