package database

import (
	"context"
	"errors"

	"github.com/sahilchouksey/college-directory/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// xmax is 0 only for a row version created by this INSERT, so it tells an
// insert from a conflict update within the same statement.
const upsertCollegeSQL = `
INSERT INTO colleges (name, category, district, city, type, autonomous, minority, hostel_available, established_year, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
ON CONFLICT (name, district, city) DO UPDATE SET
	category = EXCLUDED.category,
	type = EXCLUDED.type,
	autonomous = EXCLUDED.autonomous,
	minority = EXCLUDED.minority,
	hostel_available = EXCLUDED.hostel_available,
	established_year = EXCLUDED.established_year,
	updated_at = NOW()
RETURNING id, (xmax = 0) AS inserted`

var errNoUpsertRow = errors.New("college upsert returned no row")

type gormCollegeWriter struct {
	db *gorm.DB
}

// WithCollegeWriter runs fn inside a transaction
func (s *GORMStore) WithCollegeWriter(ctx context.Context, fn func(w CollegeWriter) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCollegeWriter{db: tx})
	})
}

func (w *gormCollegeWriter) UpsertCollege(ctx context.Context, college *model.College) (bool, error) {
	var row struct {
		ID       uint
		Inserted bool
	}

	err := w.db.WithContext(ctx).Raw(upsertCollegeSQL,
		college.Name,
		college.Category,
		college.District,
		college.City,
		college.Type,
		college.Autonomous,
		college.Minority,
		college.HostelAvailable,
		college.EstablishedYear,
	).Scan(&row).Error
	if err != nil {
		return false, err
	}
	if row.ID == 0 {
		return false, errNoUpsertRow
	}

	college.ID = row.ID
	return row.Inserted, nil
}

func (w *gormCollegeWriter) MergeContactInfo(ctx context.Context, contact *model.ContactInfo) error {
	return w.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "college_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"phone":   gorm.Expr(`COALESCE(EXCLUDED.phone, "contact_info".phone)`),
			"email":   gorm.Expr(`COALESCE(EXCLUDED.email, "contact_info".email)`),
			"website": gorm.Expr(`COALESCE(EXCLUDED.website, "contact_info".website)`),
			"address": gorm.Expr(`COALESCE(EXCLUDED.address, "contact_info".address)`),
			"pincode": gorm.Expr(`COALESCE(EXCLUDED.pincode, "contact_info".pincode)`),
		}),
	}).Create(contact).Error
}
