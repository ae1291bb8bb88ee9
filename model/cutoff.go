package model

import "time"

// Cutoff is an admission cutoff for one college, year, branch and category.
type Cutoff struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CollegeID   uint       `gorm:"not null;index" json:"college_id"`
	Year        int        `gorm:"not null;index" json:"year"`
	Branch      *string    `gorm:"type:varchar(255)" json:"branch"`
	Category    *string    `gorm:"type:varchar(50)" json:"category"`
	CutoffMarks *float64   `json:"cutoff_marks"`
	PdfURL      *string    `gorm:"column:pdf_url;type:varchar(512)" json:"pdf_url"`
	CreatedAt   *time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}
