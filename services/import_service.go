package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sahilchouksey/college-directory/database"
	"github.com/sahilchouksey/college-directory/model"
	"github.com/sahilchouksey/college-directory/services/digitalocean"
	"github.com/sahilchouksey/college-directory/utils/validation"
	"gorm.io/datatypes"
)

// CollegeStore is the transactional write side an import needs
type CollegeStore interface {
	WithCollegeWriter(ctx context.Context, fn func(w database.CollegeWriter) error) error
}

// ImportLogRecorder persists the audit row of a finished import
type ImportLogRecorder interface {
	Record(ctx context.Context, entry *model.ImportLog) error
}

// Archiver keeps a copy of an uploaded file and returns where it went
type Archiver interface {
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// RecordError is a failed record and why it failed
type RecordError struct {
	Position int    `json:"position"`
	Line     int    `json:"line,omitempty"`
	Message  string `json:"message"`
}

// String prefixes the message with the record's CSV line or JSON position
func (e RecordError) String() string {
	if e.Line > 0 {
		return fmt.Sprintf("Line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("College #%d: %s", e.Position, e.Message)
}

// ImportSummary is the outcome of one bulk import
type ImportSummary struct {
	BatchID  uuid.UUID
	Total    int
	Inserted int
	Updated  int
	Errors   []RecordError
}

// ErrorMessages renders the failures in input order
func (s *ImportSummary) ErrorMessages() []string {
	messages := make([]string, 0, len(s.Errors))
	for _, e := range s.Errors {
		messages = append(messages, e.String())
	}
	return messages
}

// ImportRequest is a decoded upload waiting to be applied
type ImportRequest struct {
	Source   model.ImportSource
	FileName string
	// Raw is the uploaded file, archived when an Archiver is configured
	Raw     []byte
	Records []ImportRecord
}

// ImportService applies bulk uploads record by record. A failing record never
// stops the batch and never leaves a partial write behind.
type ImportService struct {
	store     CollegeStore
	logs      ImportLogRecorder
	archiver  Archiver
	validator *validation.Validator
}

// NewImportService creates a new import service. logs and archiver may be nil.
func NewImportService(store CollegeStore, logs ImportLogRecorder, archiver Archiver) *ImportService {
	return &ImportService{
		store:     store,
		logs:      logs,
		archiver:  archiver,
		validator: validation.NewValidator(),
	}
}

// Run imports the request, archives the raw file and records the import log.
// Archive and log failures are logged; they never change the summary.
func (s *ImportService) Run(ctx context.Context, req ImportRequest) *ImportSummary {
	summary := s.Import(ctx, req.Records)

	archiveURL := ""
	if s.archiver != nil && len(req.Raw) > 0 {
		key := digitalocean.ImportArchiveKey(summary.BatchID, string(req.Source))
		url, err := s.archiver.UploadBytes(ctx, key, req.Raw, archiveContentType(req.Source))
		if err != nil {
			log.Warnw("failed to archive import file", "batch_id", summary.BatchID, "error", err)
		} else {
			archiveURL = url
		}
	}

	if s.logs != nil {
		entry := summary.Log(req.Source, req.FileName, archiveURL)
		if err := s.logs.Record(ctx, entry); err != nil {
			log.Warnw("failed to record import log", "batch_id", summary.BatchID, "error", err)
		}
	}

	log.Infow("bulk import finished",
		"batch_id", summary.BatchID,
		"source", req.Source,
		"total", summary.Total,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"failed", len(summary.Errors),
	)

	return summary
}

// Import applies records in order. Each record is validated and then written
// in its own transaction together with its contact details.
func (s *ImportService) Import(ctx context.Context, records []ImportRecord) *ImportSummary {
	summary := &ImportSummary{
		BatchID: uuid.New(),
		Total:   len(records),
		Errors:  []RecordError{},
	}

	for i := range records {
		record := &records[i]
		position := record.Position
		if position == 0 {
			position = i + 1
		}

		inserted, err := s.importRecord(ctx, record)
		if err != nil {
			summary.Errors = append(summary.Errors, RecordError{
				Position: position,
				Line:     record.Line,
				Message:  describeImportError(err),
			})
			continue
		}

		if inserted {
			summary.Inserted++
		} else {
			summary.Updated++
		}
	}

	return summary
}

func (s *ImportService) importRecord(ctx context.Context, record *ImportRecord) (bool, error) {
	if record.Err != nil {
		return false, record.Err
	}

	record.College.Normalize()
	if err := s.validator.ValidateStruct(record.College); err != nil {
		return false, err
	}

	var inserted bool
	err := s.store.WithCollegeWriter(ctx, func(w database.CollegeWriter) error {
		college := record.College.College()
		created, err := w.UpsertCollege(ctx, college)
		if err != nil {
			return fmt.Errorf("failed to save college: %w", err)
		}

		if contact := record.College.ContactInfo(college.ID); contact != nil {
			if err := w.MergeContactInfo(ctx, contact); err != nil {
				return fmt.Errorf("failed to save contact info: %w", err)
			}
		}

		inserted = created
		return nil
	})
	return inserted, err
}

// Log builds the audit row for this summary
func (s *ImportSummary) Log(source model.ImportSource, fileName, archiveURL string) *model.ImportLog {
	errs, err := json.Marshal(s.ErrorMessages())
	if err != nil {
		errs = []byte("[]")
	}

	return &model.ImportLog{
		BatchID:    s.BatchID,
		Source:     source,
		FileName:   fileName,
		ArchiveURL: archiveURL,
		Total:      s.Total,
		Inserted:   s.Inserted,
		Updated:    s.Updated,
		Failed:     len(s.Errors),
		Errors:     datatypes.JSON(errs),
		CreatedAt:  time.Now(),
	}
}

func describeImportError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return validation.FormatValidationMessage(validationErrs)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.ConstraintName != "" {
			return fmt.Sprintf("%s (constraint %s)", pgErr.Message, pgErr.ConstraintName)
		}
		return pgErr.Message
	}

	return err.Error()
}

func archiveContentType(source model.ImportSource) string {
	if source == model.ImportSourceJSON {
		return "application/json"
	}
	return "text/csv"
}
