package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sahilchouksey/college-directory/database"
	"github.com/sahilchouksey/college-directory/model"
)

type naturalKey struct {
	name, district, city string
}

// memoryStore mimics the transactional upsert of the GORM store
type memoryStore struct {
	colleges map[naturalKey]model.College
	contacts map[uint]model.ContactInfo
	nextID   uint

	failUpsert  map[string]error
	failContact map[string]error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		colleges:    map[naturalKey]model.College{},
		contacts:    map[uint]model.ContactInfo{},
		failUpsert:  map[string]error{},
		failContact: map[string]error{},
	}
}

type memoryWriter struct {
	store    *memoryStore
	colleges map[naturalKey]model.College
	contacts map[uint]model.ContactInfo
	current  string
}

func (s *memoryStore) WithCollegeWriter(ctx context.Context, fn func(w database.CollegeWriter) error) error {
	w := &memoryWriter{
		store:    s,
		colleges: map[naturalKey]model.College{},
		contacts: map[uint]model.ContactInfo{},
	}
	if err := fn(w); err != nil {
		return err
	}
	for k, v := range w.colleges {
		s.colleges[k] = v
	}
	for k, v := range w.contacts {
		s.contacts[k] = v
	}
	return nil
}

func (w *memoryWriter) UpsertCollege(ctx context.Context, college *model.College) (bool, error) {
	w.current = college.Name
	if err := w.store.failUpsert[college.Name]; err != nil {
		return false, err
	}

	key := naturalKey{college.Name, college.District, college.City}
	if existing, ok := w.store.colleges[key]; ok {
		college.ID = existing.ID
		w.colleges[key] = *college
		return false, nil
	}

	w.store.nextID++
	college.ID = w.store.nextID
	w.colleges[key] = *college
	return true, nil
}

func (w *memoryWriter) MergeContactInfo(ctx context.Context, contact *model.ContactInfo) error {
	if err := w.store.failContact[w.current]; err != nil {
		return err
	}

	merged := *contact
	if existing, ok := w.store.contacts[contact.CollegeID]; ok {
		merged.Phone = coalesce(contact.Phone, existing.Phone)
		merged.Email = coalesce(contact.Email, existing.Email)
		merged.Website = coalesce(contact.Website, existing.Website)
		merged.Address = coalesce(contact.Address, existing.Address)
		merged.Pincode = coalesce(contact.Pincode, existing.Pincode)
	}
	w.contacts[contact.CollegeID] = merged
	return nil
}

func coalesce(a, b *string) *string {
	if a != nil {
		return a
	}
	return b
}

type recordingLogs struct {
	entries []*model.ImportLog
	err     error
}

func (r *recordingLogs) Record(ctx context.Context, entry *model.ImportLog) error {
	r.entries = append(r.entries, entry)
	return r.err
}

type recordingArchiver struct {
	keys []string
	err  error
}

func (a *recordingArchiver) UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.keys = append(a.keys, key)
	return "https://archive.example.com/" + key, nil
}

func strPtr(s string) *string { return &s }

func jsonRecords(colleges ...model.CollegeImport) []ImportRecord {
	records := make([]ImportRecord, len(colleges))
	for i, c := range colleges {
		records[i] = ImportRecord{Position: i + 1, College: c}
	}
	return records
}

func coep() model.CollegeImport {
	return model.CollegeImport{Name: "COEP", Category: "Engineering", District: "Pune", City: "Pune", Type: "Government"}
}

func vjti() model.CollegeImport {
	return model.CollegeImport{Name: "VJTI", Category: "Engineering", District: "Mumbai City", City: "Mumbai", Type: "Aided"}
}

func TestImportIsIdempotent(t *testing.T) {
	store := newMemoryStore()
	svc := NewImportService(store, nil, nil)

	first := svc.Import(context.Background(), jsonRecords(coep(), vjti()))
	if first.Inserted != 2 || first.Updated != 0 || len(first.Errors) != 0 {
		t.Fatalf("first import = %+v, want 2 inserted", first)
	}

	second := svc.Import(context.Background(), jsonRecords(coep(), vjti()))
	if second.Inserted != 0 || second.Updated != 2 || len(second.Errors) != 0 {
		t.Fatalf("second import = %+v, want 2 updated", second)
	}

	if len(store.colleges) != 2 {
		t.Errorf("store holds %d colleges, want 2", len(store.colleges))
	}
	if first.BatchID == second.BatchID {
		t.Error("each import should get its own batch id")
	}
}

func TestImportCountsAddUp(t *testing.T) {
	svc := NewImportService(newMemoryStore(), nil, nil)

	missingName := coep()
	missingName.Name = "   "

	summary := svc.Import(context.Background(), jsonRecords(coep(), missingName, vjti()))
	if summary.Total != 3 {
		t.Errorf("Total = %d, want 3", summary.Total)
	}
	if summary.Inserted+summary.Updated+len(summary.Errors) != summary.Total {
		t.Errorf("counts do not add up: %+v", summary)
	}

	messages := summary.ErrorMessages()
	if len(messages) != 1 || messages[0] != "College #2: name is required" {
		t.Errorf("errors = %v", messages)
	}
}

func TestImportUpdateOverwritesNonKeyFields(t *testing.T) {
	store := newMemoryStore()
	svc := NewImportService(store, nil, nil)

	svc.Import(context.Background(), jsonRecords(coep()))

	changed := coep()
	changed.Type = "Autonomous"
	summary := svc.Import(context.Background(), jsonRecords(changed))
	if summary.Updated != 1 {
		t.Fatalf("Updated = %d, want 1", summary.Updated)
	}

	got := store.colleges[naturalKey{"COEP", "Pune", "Pune"}]
	if got.Type != "Autonomous" || got.ID != 1 {
		t.Errorf("stored college = %+v, want type Autonomous with id 1", got)
	}
}

func TestImportMergesContactInfo(t *testing.T) {
	store := newMemoryStore()
	svc := NewImportService(store, nil, nil)

	withPhone := coep()
	withPhone.Phone = strPtr("020-25507000")
	withPhone.Email = strPtr("info@coep.ac.in")
	svc.Import(context.Background(), jsonRecords(withPhone))

	withWebsite := coep()
	withWebsite.Website = strPtr("https://www.coep.org.in")
	withWebsite.Email = strPtr("   ")
	svc.Import(context.Background(), jsonRecords(withWebsite))

	contact := store.contacts[1]
	if contact.Phone == nil || *contact.Phone != "020-25507000" {
		t.Errorf("phone = %v, want kept", contact.Phone)
	}
	if contact.Email == nil || *contact.Email != "info@coep.ac.in" {
		t.Errorf("email = %v, want kept", contact.Email)
	}
	if contact.Website == nil || *contact.Website != "https://www.coep.org.in" {
		t.Errorf("website = %v, want set", contact.Website)
	}
}

func TestImportSkipsEmptyContact(t *testing.T) {
	store := newMemoryStore()
	svc := NewImportService(store, nil, nil)

	svc.Import(context.Background(), jsonRecords(coep()))
	if len(store.contacts) != 0 {
		t.Errorf("contacts = %d, want none for a record without contact fields", len(store.contacts))
	}
}

func TestImportRollsBackFailedRecord(t *testing.T) {
	store := newMemoryStore()
	store.failContact["COEP"] = errors.New("connection reset")
	svc := NewImportService(store, nil, nil)

	record := coep()
	record.Phone = strPtr("020-25507000")

	summary := svc.Import(context.Background(), jsonRecords(record, vjti()))
	if summary.Inserted != 1 || len(summary.Errors) != 1 {
		t.Fatalf("summary = %+v, want 1 inserted and 1 error", summary)
	}
	if _, ok := store.colleges[naturalKey{"COEP", "Pune", "Pune"}]; ok {
		t.Error("college from failed record should not be stored")
	}
	if got := summary.ErrorMessages()[0]; got != "College #1: failed to save contact info: connection reset" {
		t.Errorf("error = %q", got)
	}
}

func TestImportReportsPostgresErrors(t *testing.T) {
	store := newMemoryStore()
	store.failUpsert["VJTI"] = &pgconn.PgError{
		Code:           "23514",
		Message:        "new row violates check constraint",
		ConstraintName: "chk_colleges_type",
	}
	svc := NewImportService(store, nil, nil)

	summary := svc.Import(context.Background(), jsonRecords(coep(), vjti()))
	want := "College #2: new row violates check constraint (constraint chk_colleges_type)"
	if msgs := summary.ErrorMessages(); len(msgs) != 1 || msgs[0] != want {
		t.Errorf("errors = %v, want [%s]", msgs, want)
	}
}

func TestImportCSVErrorsUseLineNumbers(t *testing.T) {
	input := "name,category,district,city,type,established_year\n" +
		"COEP,Engineering,Pune,Pune,Government,1854\n" +
		",Engineering,Pune,Pune,Government,\n" +
		"VJTI,Engineering,Mumbai City,Mumbai,Aided,1700\n" +
		"Fergusson,Arts,Pune,Pune,Aided,1885\n"

	records, err := DecodeCollegeCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeCollegeCSV() error = %v", err)
	}

	summary := NewImportService(newMemoryStore(), nil, nil).Import(context.Background(), records)
	if summary.Inserted != 2 {
		t.Errorf("Inserted = %d, want 2", summary.Inserted)
	}

	want := []string{
		"Line 3: name is required",
		"Line 4: established_year must be greater than or equal to 1800",
	}
	got := summary.ErrorMessages()
	if len(got) != len(want) {
		t.Fatalf("errors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("error %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestImportEmptyBatch(t *testing.T) {
	summary := NewImportService(newMemoryStore(), nil, nil).Import(context.Background(), nil)
	if summary.Total != 0 || summary.Inserted != 0 || summary.Updated != 0 {
		t.Errorf("summary = %+v, want zeros", summary)
	}
	if summary.Errors == nil {
		t.Error("Errors should be an empty slice, not nil")
	}
}

func TestRunRecordsLogAndArchive(t *testing.T) {
	logs := &recordingLogs{}
	archiver := &recordingArchiver{}
	svc := NewImportService(newMemoryStore(), logs, archiver)

	bad := vjti()
	bad.Category = ""

	summary := svc.Run(context.Background(), ImportRequest{
		Source:   model.ImportSourceCSV,
		FileName: "colleges.csv",
		Raw:      []byte("name,category,district,city,type\n"),
		Records:  jsonRecords(coep(), bad),
	})

	if len(archiver.keys) != 1 || archiver.keys[0] != "imports/"+summary.BatchID.String()+".csv" {
		t.Errorf("archived keys = %v", archiver.keys)
	}
	if len(logs.entries) != 1 {
		t.Fatalf("recorded %d logs, want 1", len(logs.entries))
	}

	entry := logs.entries[0]
	if entry.BatchID != summary.BatchID || entry.Total != 2 || entry.Inserted != 1 || entry.Failed != 1 {
		t.Errorf("log entry = %+v", entry)
	}
	if entry.ArchiveURL == "" || entry.FileName != "colleges.csv" || entry.Source != model.ImportSourceCSV {
		t.Errorf("log entry metadata = %+v", entry)
	}

	var errs []string
	if err := json.Unmarshal(entry.Errors, &errs); err != nil {
		t.Fatalf("errors column is not a JSON array: %v", err)
	}
	if len(errs) != 1 || errs[0] != "College #2: category is required" {
		t.Errorf("logged errors = %v", errs)
	}
}

func TestRunSurvivesArchiveAndLogFailures(t *testing.T) {
	logs := &recordingLogs{err: errors.New("db down")}
	archiver := &recordingArchiver{err: errors.New("spaces down")}
	svc := NewImportService(newMemoryStore(), logs, archiver)

	summary := svc.Run(context.Background(), ImportRequest{
		Source:  model.ImportSourceJSON,
		Raw:     []byte(`{"colleges":[]}`),
		Records: jsonRecords(coep()),
	})

	if summary.Inserted != 1 || len(summary.Errors) != 0 {
		t.Errorf("summary = %+v, want 1 inserted", summary)
	}
	if len(logs.entries) != 1 || logs.entries[0].ArchiveURL != "" {
		t.Errorf("log should be attempted without archive url, got %+v", logs.entries)
	}
}
