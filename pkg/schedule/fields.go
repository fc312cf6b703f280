package schedule

// Row is one parsed CSV row keyed by source column header. A key that is
// present with an empty value is distinct from an absent key.
type Row map[string]string

// ResolveField returns the value of the first candidate column present in
// the row, or "" when none of the candidates exist. Absence is a normal
// outcome, not an error.
func ResolveField(row Row, candidates ...string) string {
	for _, name := range candidates {
		if value, ok := row[name]; ok {
			return value
		}
	}
	return ""
}

// employeeIDAliases are checked in both applier paths so exports that
// carry a stable employee id keep it attached for team-member matching.
var employeeIDAliases = []string{"Employee ID", "employee_id", "ID", "id"}
