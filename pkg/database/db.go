package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"key"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table. Totals count CSV rows read
// and shift records emitted per key per day.
type APIUsage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	KeyID        uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date         string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount int    `gorm:"default:0" json:"request_count"`
	TotalRows    int    `gorm:"default:0" json:"total_rows"`
	TotalShifts  int    `gorm:"default:0" json:"total_shifts"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// MappingRecord represents the column_mappings table. Every binding is
// mirrored as a flat column for queryability; ColumnMappingJSON stores
// the full structure for round-trip fidelity. Format holds the import
// context tag (e.g. "schedule"), FormatType the applier path.
type MappingRecord struct {
	ID             string `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"not null" json:"name"`
	OrganizationID string `gorm:"index;not null" json:"organization_id"`
	Format         string `gorm:"index;not null" json:"format"`
	FormatType     string `gorm:"not null" json:"format_type"`

	ColumnMappingJSON string `gorm:"column:column_mapping" json:"column_mapping"`

	EmployeeNameField  string `json:"employee_name_field"`
	RoleField          string `json:"role_field"`
	DateField          string `json:"date_field"`
	StartTimeField     string `json:"start_time_field"`
	EndTimeField       string `json:"end_time_field"`
	BreakDurationField string `json:"break_duration_field"`
	NotesField         string `json:"notes_field"`

	MondayField    string `json:"monday_field"`
	TuesdayField   string `json:"tuesday_field"`
	WednesdayField string `json:"wednesday_field"`
	ThursdayField  string `json:"thursday_field"`
	FridayField    string `json:"friday_field"`
	SaturdayField  string `json:"saturday_field"`
	SundayField    string `json:"sunday_field"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the table aligned with the persistence record shape
// the dashboard's other consumers expect.
func (MappingRecord) TableName() string {
	return "column_mappings"
}

// ShiftEntry represents the shift_entries table: imported shift records
// flattened for the scheduling screens. Entries are append-only per
// import run; deduplication belongs to consumers, not the importer.
type ShiftEntry struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	OrganizationID       string    `gorm:"index;not null" json:"organization_id"`
	EmployeeName         string    `gorm:"not null" json:"employee_name"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	EmployeeID           string    `json:"employee_id"`
	Role                 string    `json:"role"`
	ShiftDate            string    `gorm:"index;not null" json:"shift_date"`
	StartTime            string    `json:"start_time"`
	EndTime              string    `json:"end_time"`
	BreakDurationMinutes float64   `json:"break_duration_minutes"`
	Notes                string    `json:"notes"`
	CreatedAt            time.Time `json:"created_at"`
}

// InitDB initializes the database connection and migrates the schema
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "backoffice.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Auto Migration
	db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}, &MappingRecord{}, &ShiftEntry{})

	return db
}
