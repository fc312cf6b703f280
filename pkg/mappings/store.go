package mappings

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/prepline/schedule-import-go/pkg/database"
	"github.com/prepline/schedule-import-go/pkg/models"
	"github.com/prepline/schedule-import-go/pkg/schedule"
	"gorm.io/gorm"
)

// Store manages the lifecycle of saved column mappings, scoped by
// organization and import context. Fetched lists are cached per
// org+context and replaced wholesale after every successful write, so
// readers never see a partially updated list.
type Store struct {
	DB *gorm.DB

	mu    sync.RWMutex
	cache map[string][]models.ColumnMapping
}

// NewStore creates a store backed by the given database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		DB:    db,
		cache: make(map[string][]models.ColumnMapping),
	}
}

func cacheKey(organizationID, context string) string {
	return organizationID + "\x00" + context
}

// Validate checks the mapping against the required-field rules for its
// declared format. It returns the missing binding names; an empty slice
// means the mapping is savable. A name is always required.
func Validate(m *models.ColumnMapping) []string {
	var missing []string
	if m.Name == "" {
		missing = append(missing, "name")
	}
	return append(missing, schedule.MissingFields(m)...)
}

// FetchMappings returns all saved mappings for the organization and
// context. A missing entry is an empty list, not an error.
func (s *Store) FetchMappings(organizationID, context string) ([]models.ColumnMapping, error) {
	key := cacheKey(organizationID, context)

	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}
	return s.refresh(organizationID, context)
}

// SaveMapping validates and persists a mapping. A validation failure
// returns (false, nil) without touching the database so the caller can
// re-prompt. A mapping with an existing id is updated in place; a new
// mapping gets a generated id. The id in use is written back to m.
func (s *Store) SaveMapping(organizationID, context string, m *models.ColumnMapping) (bool, error) {
	if missing := Validate(m); len(missing) > 0 {
		return false, nil
	}

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	record := toRecord(organizationID, context, m)

	var existing database.MappingRecord
	err := s.DB.Where("id = ?", m.ID).First(&existing).Error
	switch {
	case err == nil:
		record.CreatedAt = existing.CreatedAt
		if err := s.DB.Save(&record).Error; err != nil {
			return false, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.DB.Create(&record).Error; err != nil {
			return false, err
		}
	default:
		return false, err
	}

	// The row is persisted at this point; a cache refresh failure must
	// not be reported as a failed save. Drop the stale entry so the next
	// fetch reloads from the database.
	if _, err := s.refresh(organizationID, context); err != nil {
		s.invalidate(organizationID, context)
	}
	return true, nil
}

// DeleteMapping removes a saved mapping by id. Deleting an id that does
// not exist is not an error.
func (s *Store) DeleteMapping(id string) error {
	var existing database.MappingRecord
	err := s.DB.Where("id = ?", id).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.DB.Delete(&database.MappingRecord{}, "id = ?", id).Error; err != nil {
		return err
	}
	if _, err := s.refresh(existing.OrganizationID, existing.Format); err != nil {
		s.invalidate(existing.OrganizationID, existing.Format)
	}
	return nil
}

// invalidate drops the cached list for org+context so the next fetch
// reloads from the database.
func (s *Store) invalidate(organizationID, context string) {
	s.mu.Lock()
	delete(s.cache, cacheKey(organizationID, context))
	s.mu.Unlock()
}

// refresh replaces the cached list for org+context with the database's
// current view and returns it.
func (s *Store) refresh(organizationID, context string) ([]models.ColumnMapping, error) {
	var records []database.MappingRecord
	if err := s.DB.Where("organization_id = ? AND format = ?", organizationID, context).
		Order("created_at asc").Find(&records).Error; err != nil {
		return nil, err
	}

	mappings := make([]models.ColumnMapping, 0, len(records))
	for _, r := range records {
		mappings = append(mappings, fromRecord(r))
	}

	s.mu.Lock()
	s.cache[cacheKey(organizationID, context)] = mappings
	s.mu.Unlock()
	return mappings, nil
}

// toRecord flattens a ColumnMapping into its persistence shape: one
// column per binding plus the whole structure as a JSON blob.
func toRecord(organizationID, context string, m *models.ColumnMapping) database.MappingRecord {
	blob, _ := json.Marshal(m)
	return database.MappingRecord{
		ID:                 m.ID,
		Name:               m.Name,
		OrganizationID:     organizationID,
		Format:             context,
		FormatType:         string(m.Format),
		ColumnMappingJSON:  string(blob),
		EmployeeNameField:  m.EmployeeNameField,
		RoleField:          m.RoleField,
		DateField:          m.DateField,
		StartTimeField:     m.StartTimeField,
		EndTimeField:       m.EndTimeField,
		BreakDurationField: m.BreakDurationField,
		NotesField:         m.NotesField,
		MondayField:        m.MondayField,
		TuesdayField:       m.TuesdayField,
		WednesdayField:     m.WednesdayField,
		ThursdayField:      m.ThursdayField,
		FridayField:        m.FridayField,
		SaturdayField:      m.SaturdayField,
		SundayField:        m.SundayField,
	}
}

// fromRecord restores a ColumnMapping from the stored JSON blob, falling
// back to the flat columns when the blob is missing or unreadable.
func fromRecord(r database.MappingRecord) models.ColumnMapping {
	var m models.ColumnMapping
	if r.ColumnMappingJSON != "" {
		if err := json.Unmarshal([]byte(r.ColumnMappingJSON), &m); err == nil {
			m.ID = r.ID
			m.Name = r.Name
			return m
		}
	}
	return models.ColumnMapping{
		ID:                 r.ID,
		Name:               r.Name,
		Format:             models.Format(r.FormatType),
		EmployeeNameField:  r.EmployeeNameField,
		RoleField:          r.RoleField,
		DateField:          r.DateField,
		StartTimeField:     r.StartTimeField,
		EndTimeField:       r.EndTimeField,
		BreakDurationField: r.BreakDurationField,
		NotesField:         r.NotesField,
		MondayField:        r.MondayField,
		TuesdayField:       r.TuesdayField,
		WednesdayField:     r.WednesdayField,
		ThursdayField:      r.ThursdayField,
		FridayField:        r.FridayField,
		SaturdayField:      r.SaturdayField,
		SundayField:        r.SundayField,
	}
}
