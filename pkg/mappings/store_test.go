package mappings

import (
	"path/filepath"
	"testing"

	"github.com/prepline/schedule-import-go/pkg/database"
	"github.com/prepline/schedule-import-go/pkg/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("could not open test database: %v", err)
	}
	if err := db.AutoMigrate(&database.MappingRecord{}); err != nil {
		t.Fatalf("could not migrate: %v", err)
	}
	return NewStore(db)
}

func weeklyMapping() *models.ColumnMapping {
	return &models.ColumnMapping{
		Name:              "7shifts weekly",
		Format:            models.FormatWeekly,
		EmployeeNameField: "Name",
		MondayField:       "Monday",
		FridayField:       "Friday",
	}
}

func TestSaveMapping_RoundTrip(t *testing.T) {
	s := testStore(t)
	m := weeklyMapping()

	saved, err := s.SaveMapping("org-1", "schedule", m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !saved {
		t.Fatal("expected a valid mapping to save")
	}
	if m.ID == "" {
		t.Fatal("expected an id to be assigned on first save")
	}

	loaded, err := s.FetchMappings("org-1", "schedule")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 mapping, got %d", len(loaded))
	}
	if loaded[0] != *m {
		t.Errorf("round trip mismatch:\nsaved  %+v\nloaded %+v", *m, loaded[0])
	}
}

func TestSaveMapping_RejectedBeforePersistence(t *testing.T) {
	s := testStore(t)

	// A standard mapping without an end time binding is invalid
	m := &models.ColumnMapping{
		Name:              "incomplete",
		Format:            models.FormatStandard,
		EmployeeNameField: "Employee",
		DateField:         "Date",
		StartTimeField:    "Start",
	}

	saved, err := s.SaveMapping("org-1", "schedule", m)
	if err != nil {
		t.Fatalf("validation rejection is not an error: %v", err)
	}
	if saved {
		t.Fatal("expected the save to be rejected")
	}

	// The store must not have been contacted at all
	var count int64
	s.DB.Model(&database.MappingRecord{}).Count(&count)
	if count != 0 {
		t.Errorf("expected zero persisted rows after rejection, got %d", count)
	}
	if m.ID != "" {
		t.Errorf("a rejected draft must not receive an id, got %q", m.ID)
	}
}

func TestSaveMapping_RequiresName(t *testing.T) {
	s := testStore(t)
	m := weeklyMapping()
	m.Name = ""

	saved, err := s.SaveMapping("org-1", "schedule", m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved {
		t.Fatal("expected a nameless mapping to be rejected")
	}
}

func TestSaveMapping_UpdatePreservesID(t *testing.T) {
	s := testStore(t)
	m := weeklyMapping()

	if _, err := s.SaveMapping("org-1", "schedule", m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id := m.ID

	m.Name = "renamed"
	m.SaturdayField = "Saturday"
	saved, err := s.SaveMapping("org-1", "schedule", m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !saved {
		t.Fatal("expected the update to save")
	}
	if m.ID != id {
		t.Errorf("update must preserve the id: %q vs %q", m.ID, id)
	}

	loaded, _ := s.FetchMappings("org-1", "schedule")
	if len(loaded) != 1 {
		t.Fatalf("update created a duplicate: %d rows", len(loaded))
	}
	if loaded[0].Name != "renamed" || loaded[0].SaturdayField != "Saturday" {
		t.Errorf("update not applied: %+v", loaded[0])
	}
}

func TestFetchMappings_EmptyIsNotAnError(t *testing.T) {
	s := testStore(t)

	loaded, err := s.FetchMappings("org-1", "schedule")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty list, got %d", len(loaded))
	}
}

func TestFetchMappings_ScopedByOrganizationAndContext(t *testing.T) {
	s := testStore(t)

	if _, err := s.SaveMapping("org-1", "schedule", weeklyMapping()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	other := weeklyMapping()
	if _, err := s.SaveMapping("org-2", "schedule", other); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, _ := s.FetchMappings("org-1", "schedule")
	if len(loaded) != 1 {
		t.Errorf("org-1 should see only its own mapping, got %d", len(loaded))
	}
	loaded, _ = s.FetchMappings("org-1", "invoices")
	if len(loaded) != 0 {
		t.Errorf("a different context should be empty, got %d", len(loaded))
	}
}

func TestDeleteMapping(t *testing.T) {
	s := testStore(t)
	m := weeklyMapping()
	if _, err := s.SaveMapping("org-1", "schedule", m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.DeleteMapping(m.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, _ := s.FetchMappings("org-1", "schedule")
	if len(loaded) != 0 {
		t.Errorf("expected the cached list to reflect the delete, got %d", len(loaded))
	}

	// Deleting again (or a nonexistent id) is not an error
	if err := s.DeleteMapping(m.ID); err != nil {
		t.Errorf("delete must be idempotent: %v", err)
	}
	if err := s.DeleteMapping("no-such-id"); err != nil {
		t.Errorf("deleting an unknown id is not an error: %v", err)
	}
}

func TestInvalidate_DropsCachedList(t *testing.T) {
	s := testStore(t)
	m := weeklyMapping()
	if _, err := s.SaveMapping("org-1", "schedule", m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Write a second row behind the store's back; the warm cache still
	// serves the old list.
	other := weeklyMapping()
	other.ID = "behind-the-back"
	record := toRecord("org-1", "schedule", other)
	s.DB.Create(&record)

	loaded, _ := s.FetchMappings("org-1", "schedule")
	if len(loaded) != 1 {
		t.Fatalf("expected the cached list of 1, got %d", len(loaded))
	}

	// Dropping the entry forces the next fetch to reload from the
	// database, which is how a failed post-write refresh recovers.
	s.invalidate("org-1", "schedule")
	loaded, err := s.FetchMappings("org-1", "schedule")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 2 {
		t.Errorf("expected a reload to see 2 rows, got %d", len(loaded))
	}
}

func TestValidate(t *testing.T) {
	// Custom mappings have no required bindings beyond a name
	m := &models.ColumnMapping{Name: "anything goes", Format: models.FormatCustom}
	if missing := Validate(m); len(missing) != 0 {
		t.Errorf("custom mapping should validate, missing %v", missing)
	}

	// Weekly needs a name column and at least one weekday
	m = &models.ColumnMapping{Name: "weekly", Format: models.FormatWeekly, EmployeeNameField: "Name"}
	if missing := Validate(m); len(missing) != 1 || missing[0] != "weekday_field" {
		t.Errorf("expected weekday_field missing, got %v", missing)
	}
}
