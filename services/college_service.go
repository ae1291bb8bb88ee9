package services

import (
	"context"
	"strings"

	"github.com/gosimple/slug"
	"github.com/sahilchouksey/college-directory/model"
	"github.com/sahilchouksey/college-directory/utils/apperror"
	queryHelper "github.com/sahilchouksey/college-directory/utils/query"
	"gorm.io/gorm"
)

const (
	// DefaultCollegePageSize is used when the client sends no limit
	DefaultCollegePageSize = 12
	// MaxCollegePageSize caps the limit whatever the client asks for
	MaxCollegePageSize = 50
)

// CollegeService answers the read-only directory queries
type CollegeService struct {
	db *gorm.DB
}

// NewCollegeService creates a new college service
func NewCollegeService(db *gorm.DB) *CollegeService {
	return &CollegeService{db: db}
}

// CollegeFilter holds the optional listing filters. Blank strings and nil
// booleans do not filter.
type CollegeFilter struct {
	Search          string
	District        string
	Category        string
	Type            string
	Autonomous      *bool
	HostelAvailable *bool
}

// Predicate is the single source of the listing WHERE clause; the count and
// the page query are both built from it.
func (f CollegeFilter) Predicate() *queryHelper.Predicate {
	p := &queryHelper.Predicate{}
	p.ContainsFold(f.Search, "name", "district", "city").
		Equal("district", f.District).
		Equal("category", f.Category).
		Equal("type", f.Type).
		EqualBool("autonomous", f.Autonomous).
		EqualBool("hostel_available", f.HostelAvailable)
	return p
}

// CollegePage is one page of a filtered listing plus the unpaged match count
type CollegePage struct {
	Colleges []model.College
	Total    int64
}

// ListColleges returns the colleges matching filter, ordered by name.
func (s *CollegeService) ListColleges(ctx context.Context, filter CollegeFilter, page queryHelper.Page) (*CollegePage, error) {
	scope := filter.Predicate().Scope()

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.College{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, apperror.Storage(err, "Failed to count colleges")
	}

	colleges := []model.College{}
	if err := s.db.WithContext(ctx).
		Scopes(scope).
		Order("name ASC, id ASC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&colleges).Error; err != nil {
		return nil, apperror.Storage(err, "Failed to fetch colleges")
	}

	return &CollegePage{Colleges: colleges, Total: total}, nil
}

// GetCollege returns one college joined with its contact details
func (s *CollegeService) GetCollege(ctx context.Context, id uint) (*model.CollegeWithContact, error) {
	var college model.CollegeWithContact
	err := s.db.WithContext(ctx).
		Table("colleges AS c").
		Select(`c.id, c.name, c.category, c.district, c.city, c.type,
			c.autonomous, c.minority, c.hostel_available, c.established_year,
			ci.phone, ci.email, ci.website, ci.address, ci.pincode`).
		Joins("LEFT JOIN contact_info ci ON ci.college_id = c.id").
		Where("c.id = ?", id).
		Take(&college).Error
	if err != nil {
		return nil, apperror.FromDB(err, apperror.NotFound("College with id %d not found", id), "Failed to fetch college")
	}
	return &college, nil
}

// ListByDistrict returns every college in district, ordered by name. A blank
// district matches nothing.
func (s *CollegeService) ListByDistrict(ctx context.Context, district string) ([]model.College, error) {
	return s.listWhere(ctx, "district", district)
}

// ListByCategory returns every college in category, ordered by name. A blank
// category matches nothing.
func (s *CollegeService) ListByCategory(ctx context.Context, category string) ([]model.College, error) {
	return s.listWhere(ctx, "category", category)
}

// Unlike the listing filters, a blank value here is not "no filter": no
// college has a blank district or category, so the result is empty.
func (s *CollegeService) listWhere(ctx context.Context, column, value string) ([]model.College, error) {
	colleges := []model.College{}
	value = strings.TrimSpace(value)
	if value == "" {
		return colleges, nil
	}

	if err := s.db.WithContext(ctx).
		Where(column+" = ?", value).
		Order("name ASC, id ASC").
		Find(&colleges).Error; err != nil {
		return nil, apperror.Storage(err, "Failed to fetch colleges")
	}
	return colleges, nil
}

// ListDistricts returns the distinct districts, sorted
func (s *CollegeService) ListDistricts(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "district")
}

// ListCategories returns the distinct categories, sorted
func (s *CollegeService) ListCategories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "category")
}

// ListCollegeTypes returns the distinct college types, sorted
func (s *CollegeService) ListCollegeTypes(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "type")
}

// column is always one of the fixed names above, never client input.
func (s *CollegeService) distinct(ctx context.Context, column string) ([]string, error) {
	values := []string{}
	if err := s.db.WithContext(ctx).
		Model(&model.College{}).
		Distinct(column).
		Order(column).
		Pluck(column, &values).Error; err != nil {
		return nil, apperror.Storage(err, "Failed to fetch "+column+" values")
	}
	return values, nil
}

// ListCutoffs returns the cutoffs of a college, newest year first
func (s *CollegeService) ListCutoffs(ctx context.Context, collegeID uint) ([]model.Cutoff, error) {
	cutoffs := []model.Cutoff{}
	if err := s.db.WithContext(ctx).
		Where("college_id = ?", collegeID).
		Order("year DESC, id ASC").
		Find(&cutoffs).Error; err != nil {
		return nil, apperror.Storage(err, "Failed to fetch cutoffs")
	}
	return cutoffs, nil
}

// GetAdmissionRequirement returns the requirements for one category
func (s *CollegeService) GetAdmissionRequirement(ctx context.Context, category string) (*model.AdmissionRequirement, error) {
	var requirement model.AdmissionRequirement
	err := s.db.WithContext(ctx).Where("category = ?", category).Take(&requirement).Error
	if err != nil {
		return nil, apperror.FromDB(err,
			apperror.NotFound("Admission requirements for category '%s' not found", category),
			"Failed to fetch admission requirements")
	}
	return &requirement, nil
}

type groupCount struct {
	Label string
	Total int64
}

// Stats counts colleges overall, with contact details, per district and per
// category. Group keys are "district_<slug>" and "category_<slug>".
func (s *CollegeService) Stats(ctx context.Context) (map[string]int64, error) {
	db := s.db.WithContext(ctx)
	stats := make(map[string]int64)

	var total int64
	if err := db.Model(&model.College{}).Count(&total).Error; err != nil {
		return nil, apperror.Storage(err, "Failed to count colleges")
	}
	stats["total_colleges"] = total

	var withContact int64
	if err := db.Model(&model.ContactInfo{}).Count(&withContact).Error; err != nil {
		return nil, apperror.Storage(err, "Failed to count contact details")
	}
	stats["total_with_contact"] = withContact

	for _, column := range []string{"district", "category"} {
		var rows []groupCount
		if err := db.Model(&model.College{}).
			Select(column + " AS label, COUNT(*) AS total").
			Group(column).
			Scan(&rows).Error; err != nil {
			return nil, apperror.Storage(err, "Failed to count colleges by "+column)
		}
		for _, row := range rows {
			stats[column+"_"+StatKey(row.Label)] += row.Total
		}
	}

	return stats, nil
}

// StatKey turns a district or category name into a stable map key,
// e.g. "Mumbai City" -> "mumbai_city". Labels that differ only in case or
// punctuation ("Mumbai City", "Mumbai-City") share a key, and Stats reports
// their summed count under it.
func StatKey(label string) string {
	key := strings.ReplaceAll(slug.Make(label), "-", "_")
	if key == "" {
		return "unknown"
	}
	return key
}
