package database

import (
	"github.com/prepline/schedule-import-go/pkg/models"
	"gorm.io/gorm"
)

// ShiftWriter persists imported shift records to the shift_entries
// table. It satisfies the importer's ShiftSink contract.
type ShiftWriter struct {
	DB *gorm.DB
}

// SaveShifts writes the records for one organization in a single batch.
func (w *ShiftWriter) SaveShifts(organizationID string, records []models.ShiftRecord) error {
	if len(records) == 0 {
		return nil
	}

	entries := make([]ShiftEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, ShiftEntry{
			OrganizationID:       organizationID,
			EmployeeName:         r.EmployeeName,
			FirstName:            r.FirstName,
			LastName:             r.LastName,
			EmployeeID:           r.EmployeeID,
			Role:                 r.Role,
			ShiftDate:            r.ShiftDate,
			StartTime:            r.StartTime,
			EndTime:              r.EndTime,
			BreakDurationMinutes: r.BreakDurationMinutes,
			Notes:                r.Notes,
		})
	}
	return w.DB.Create(&entries).Error
}
