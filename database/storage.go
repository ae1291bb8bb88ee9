package database

import (
	"context"

	"github.com/sahilchouksey/college-directory/model"
)

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// GORM DB access
	GetDB() interface{} // Returns *gorm.DB

	// WithCollegeWriter runs fn in one transaction. Everything fn writes
	// commits together or not at all.
	WithCollegeWriter(ctx context.Context, fn func(w CollegeWriter) error) error
}

// CollegeWriter is the write side of the directory used by bulk imports
type CollegeWriter interface {
	// UpsertCollege inserts the college or, when its natural key already
	// exists, overwrites the non-key fields. college.ID is set either way.
	UpsertCollege(ctx context.Context, college *model.College) (inserted bool, err error)

	// MergeContactInfo inserts the contact row or merges it into the existing
	// one, keeping stored values wherever the new value is nil.
	MergeContactInfo(ctx context.Context, contact *model.ContactInfo) error
}
