package model

import (
	"time"
)

// College is a single institution in the directory. (Name, District, City) is
// the natural key used by bulk imports.
type College struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_colleges_natural_key,priority:1" json:"name"`
	Category        string    `gorm:"type:varchar(100);not null;index" json:"category"`
	District        string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_colleges_natural_key,priority:2;index" json:"district"`
	City            string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_colleges_natural_key,priority:3" json:"city"`
	Type            string    `gorm:"column:type;type:varchar(100);not null;index" json:"type"`
	Autonomous      *bool     `json:"autonomous"`
	Minority        *bool     `json:"minority"`
	HostelAvailable *bool     `json:"hostel_available"`
	EstablishedYear *int      `json:"established_year"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`

	// Relationships
	ContactInfo *ContactInfo `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"-"`
	Cutoffs     []Cutoff     `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"-"`
}

// CollegeWithContact is the detail view: a college left-joined with its contact row.
type CollegeWithContact struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	District        string  `json:"district"`
	City            string  `json:"city"`
	Type            string  `gorm:"column:type" json:"type"`
	Autonomous      *bool   `json:"autonomous"`
	Minority        *bool   `json:"minority"`
	HostelAvailable *bool   `json:"hostel_available"`
	EstablishedYear *int    `json:"established_year"`
	Phone           *string `json:"phone"`
	Email           *string `json:"email"`
	Website         *string `json:"website"`
	Address         *string `json:"address"`
	Pincode         *string `json:"pincode"`
}
