package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ImportSource identifies how a bulk import reached the API
type ImportSource string

const (
	ImportSourceJSON ImportSource = "json"
	ImportSourceCSV  ImportSource = "csv"
)

// ImportLog is the audit trail of one bulk upload
type ImportLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	BatchID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"batch_id"`
	Source     ImportSource   `gorm:"type:varchar(10);not null;index" json:"source"`
	FileName   string         `gorm:"type:varchar(255)" json:"file_name,omitempty"`
	ArchiveURL string         `gorm:"type:varchar(512)" json:"archive_url,omitempty"`
	Total      int            `json:"total"`
	Inserted   int            `json:"inserted"`
	Updated    int            `json:"updated"`
	Failed     int            `json:"failed"`
	Errors     datatypes.JSON `gorm:"type:jsonb" json:"errors"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for ImportLog
func (ImportLog) TableName() string {
	return "import_logs"
}
