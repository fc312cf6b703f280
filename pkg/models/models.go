package models

// Format identifies which applier path a mapping drives
type Format string

const (
	FormatStandard Format = "standard"
	FormatWeekly   Format = "weekly"
	FormatCustom   Format = "custom"
)

// Weekdays lists the weekly-grid columns in Monday-first order.
// The index of a day in this slice is its offset from the week start date.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ColumnMapping binds canonical shift fields to source CSV column headers
type ColumnMapping struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Format Format `json:"format"`

	EmployeeNameField  string `json:"employee_name_field,omitempty"`
	RoleField          string `json:"role_field,omitempty"`
	DateField          string `json:"date_field,omitempty"`
	StartTimeField     string `json:"start_time_field,omitempty"`
	EndTimeField       string `json:"end_time_field,omitempty"`
	BreakDurationField string `json:"break_duration_field,omitempty"`
	NotesField         string `json:"notes_field,omitempty"`

	MondayField    string `json:"monday_field,omitempty"`
	TuesdayField   string `json:"tuesday_field,omitempty"`
	WednesdayField string `json:"wednesday_field,omitempty"`
	ThursdayField  string `json:"thursday_field,omitempty"`
	FridayField    string `json:"friday_field,omitempty"`
	SaturdayField  string `json:"saturday_field,omitempty"`
	SundayField    string `json:"sunday_field,omitempty"`
}

// WeekdayField returns the binding for the given Monday-first day index
func (m *ColumnMapping) WeekdayField(day int) string {
	switch day {
	case 0:
		return m.MondayField
	case 1:
		return m.TuesdayField
	case 2:
		return m.WednesdayField
	case 3:
		return m.ThursdayField
	case 4:
		return m.FridayField
	case 5:
		return m.SaturdayField
	case 6:
		return m.SundayField
	}
	return ""
}

// SetWeekdayField sets the binding for the given Monday-first day index
func (m *ColumnMapping) SetWeekdayField(day int, column string) {
	switch day {
	case 0:
		m.MondayField = column
	case 1:
		m.TuesdayField = column
	case 2:
		m.WednesdayField = column
	case 3:
		m.ThursdayField = column
	case 4:
		m.FridayField = column
	case 5:
		m.SaturdayField = column
	case 6:
		m.SundayField = column
	}
}

// HasWeekdayField reports whether any weekday column is bound
func (m *ColumnMapping) HasWeekdayField() bool {
	for day := range Weekdays {
		if m.WeekdayField(day) != "" {
			return true
		}
	}
	return false
}

// ShiftRecord is the canonical, normalized output of one parsed shift.
// Date and ShiftDate carry the same value; older consumers read ShiftDate.
type ShiftRecord struct {
	EmployeeName         string  `json:"employee_name"`
	FirstName            string  `json:"first_name"`
	LastName             string  `json:"last_name"`
	EmployeeID           string  `json:"employee_id,omitempty"`
	Role                 string  `json:"role,omitempty"`
	Date                 string  `json:"date"`
	ShiftDate            string  `json:"shift_date"`
	StartTime            string  `json:"start_time"`
	EndTime              string  `json:"end_time"`
	BreakDurationMinutes float64 `json:"break_duration_minutes"`
	Notes                string  `json:"notes,omitempty"`
}

// DetectionResult is what the format detector proposes for an unseen file
type DetectionResult struct {
	Format  Format        `json:"format"`
	Mapping ColumnMapping `json:"mapping"`
}

// ImportResult is the outcome of one import run. When NeedsMapping is
// true no records were produced and ProposedMapping awaits confirmation.
type ImportResult struct {
	NeedsMapping    bool             `json:"needs_mapping"`
	ProposedMapping *DetectionResult `json:"proposed_mapping,omitempty"`
	Records         []ShiftRecord    `json:"records,omitempty"`
	RowsTotal       int              `json:"rows_total"`
	Imported        int              `json:"imported"`
	Skipped         int              `json:"skipped"`
}
