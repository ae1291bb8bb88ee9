package services

import (
	"context"

	"github.com/sahilchouksey/college-directory/model"
	"github.com/sahilchouksey/college-directory/utils/apperror"
	queryHelper "github.com/sahilchouksey/college-directory/utils/query"
	"gorm.io/gorm"
)

// DefaultImportLogPageSize is the default page size of the import history
const DefaultImportLogPageSize = 20

// ImportLogService stores and lists the bulk import audit trail
type ImportLogService struct {
	db *gorm.DB
}

// NewImportLogService creates a new import log service
func NewImportLogService(db *gorm.DB) *ImportLogService {
	return &ImportLogService{db: db}
}

// Record saves one import log row
func (s *ImportLogService) Record(ctx context.Context, entry *model.ImportLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

// List returns a page of import logs, newest first, and the total count
func (s *ImportLogService) List(ctx context.Context, page queryHelper.Page) ([]model.ImportLog, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.ImportLog{}).Count(&total).Error; err != nil {
		return nil, 0, apperror.Storage(err, "Failed to count import logs")
	}

	logs := []model.ImportLog{}
	if err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&logs).Error; err != nil {
		return nil, 0, apperror.Storage(err, "Failed to fetch import logs")
	}

	return logs, total, nil
}

// Get returns one import log
func (s *ImportLogService) Get(ctx context.Context, id uint) (*model.ImportLog, error) {
	var entry model.ImportLog
	if err := s.db.WithContext(ctx).Take(&entry, id).Error; err != nil {
		return nil, apperror.FromDB(err, apperror.NotFound("Import log with id %d not found", id), "Failed to fetch import log")
	}
	return &entry, nil
}
