package schedule

import (
	"testing"

	"github.com/prepline/schedule-import-go/pkg/models"
)

func TestDetectFormat_Weekly(t *testing.T) {
	headers := []string{"Name", "Monday", "Tuesday", "Wednesday"}
	got := DetectFormat(headers)

	if got.Format != models.FormatWeekly {
		t.Fatalf("expected weekly, got %s", got.Format)
	}
	if got.Mapping.EmployeeNameField != "Name" {
		t.Errorf("expected employee name bound to Name, got %q", got.Mapping.EmployeeNameField)
	}
	if got.Mapping.MondayField != "Monday" || got.Mapping.TuesdayField != "Tuesday" || got.Mapping.WednesdayField != "Wednesday" {
		t.Errorf("weekday bindings wrong: %+v", got.Mapping)
	}
	if got.Mapping.ThursdayField != "" {
		t.Errorf("Thursday should be unbound, got %q", got.Mapping.ThursdayField)
	}
}

func TestDetectFormat_Standard(t *testing.T) {
	headers := []string{"Employee", "Date", "Start Time", "End Time", "Role"}
	got := DetectFormat(headers)

	if got.Format != models.FormatStandard {
		t.Fatalf("expected standard, got %s", got.Format)
	}
	if got.Mapping.DateField != "Date" || got.Mapping.StartTimeField != "Start Time" || got.Mapping.EndTimeField != "End Time" {
		t.Errorf("standard bindings wrong: %+v", got.Mapping)
	}
	if got.Mapping.EmployeeNameField != "Employee" {
		t.Errorf("expected employee name bound to Employee, got %q", got.Mapping.EmployeeNameField)
	}
	if got.Mapping.RoleField != "Role" {
		t.Errorf("expected role bound to Role, got %q", got.Mapping.RoleField)
	}
}

func TestDetectFormat_StandardNeedsTwoOfThree(t *testing.T) {
	// Two of date/start/end is enough
	got := DetectFormat([]string{"Name", "Date", "Start"})
	if got.Format != models.FormatStandard {
		t.Errorf("expected standard with two matches, got %s", got.Format)
	}

	// One alone is not
	got = DetectFormat([]string{"Name", "Date"})
	if got.Format != models.FormatCustom {
		t.Errorf("expected custom with one match, got %s", got.Format)
	}
}

func TestDetectFormat_Custom(t *testing.T) {
	got := DetectFormat([]string{"Col A", "Col B", "Col C"})
	if got.Format != models.FormatCustom {
		t.Fatalf("expected custom, got %s", got.Format)
	}
	if got.Mapping.EmployeeNameField != "" || got.Mapping.HasWeekdayField() {
		t.Errorf("custom mapping should be an empty skeleton: %+v", got.Mapping)
	}
}

func TestDetectFormat_NamePriorityOrder(t *testing.T) {
	// Name outranks Employee when both are present
	got := DetectFormat([]string{"Employee", "Name", "Monday"})
	if got.Mapping.EmployeeNameField != "Name" {
		t.Errorf("expected Name to win the priority list, got %q", got.Mapping.EmployeeNameField)
	}
}

func TestDetectFormat_Deterministic(t *testing.T) {
	headers := []string{"Name", "Monday", "Friday", "Role"}
	first := DetectFormat(headers)
	for i := 0; i < 5; i++ {
		again := DetectFormat(headers)
		if again.Format != first.Format || again.Mapping != first.Mapping {
			t.Fatalf("detection not deterministic: %+v vs %+v", first, again)
		}
	}
}
