package model

import "github.com/lib/pq"

// AdmissionRequirement describes what a college category asks of applicants.
type AdmissionRequirement struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	Category            string         `gorm:"type:varchar(100);not null;uniqueIndex" json:"category"`
	DocumentsRequired   pq.StringArray `gorm:"type:text[]" json:"documents_required"`
	EligibilityCriteria *string        `gorm:"type:text" json:"eligibility_criteria"`
	ApplicationProcess  *string        `gorm:"type:text" json:"application_process"`
}
