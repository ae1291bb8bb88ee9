package services

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sahilchouksey/college-directory/model"
	"github.com/sahilchouksey/college-directory/utils/apperror"
)

// CSVColumns is the canonical header of a college upload, in template order
var CSVColumns = []string{
	"name", "category", "district", "city", "type",
	"autonomous", "minority", "hostel_available", "established_year",
	"phone", "email", "website", "address", "pincode",
}

var requiredCSVColumns = []string{"name", "category", "district", "city", "type"}

var csvColumnAliases = map[string]string{
	"college_type": "type",
}

// ImportRecord is one entry of a bulk import in input order. Err is set when
// the entry could not be decoded; such entries count as failures.
type ImportRecord struct {
	// Position is the 1-based index of the record in its batch
	Position int
	// Line is the source line for CSV uploads, 0 for JSON
	Line    int
	College model.CollegeImport
	Err     error
}

// CSVTemplate returns the header line of an upload file
func CSVTemplate() string {
	return strings.Join(CSVColumns, ",") + "\n"
}

// DecodeCollegeCSV parses a CSV upload. The header must name every required
// column and may list the known columns in any order. Header problems reject
// the whole file; a bad row only fails that row.
func DecodeCollegeCSV(r io.Reader) ([]ImportRecord, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperror.BadRequest("CSV file is empty")
	}
	if err != nil {
		return nil, apperror.BadRequest("Failed to parse CSV header: %v", err)
	}

	columns, err := csvHeaderIndex(header)
	if err != nil {
		return nil, err
	}

	records := []ImportRecord{}
	position := 0
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, apperror.BadRequest("Failed to read CSV file: %v", err)
			}
			position++
			records = append(records, ImportRecord{
				Position: position,
				Line:     parseErr.StartLine,
				Err:      fmt.Errorf("malformed row: %v", parseErr.Err),
			})
			continue
		}

		if blankRow(fields) {
			continue
		}

		position++
		line, _ := reader.FieldPos(0)
		record := ImportRecord{Position: position, Line: line}

		if len(fields) != len(header) {
			record.Err = fmt.Errorf("expected %d columns, got %d", len(header), len(fields))
		} else {
			record.College, record.Err = decodeCSVRow(columns, fields)
		}
		records = append(records, record)
	}

	return records, nil
}

// csvHeaderIndex maps canonical column names to their index in header
func csvHeaderIndex(header []string) (map[string]int, error) {
	known := make(map[string]bool, len(CSVColumns))
	for _, column := range CSVColumns {
		known[column] = true
	}

	columns := make(map[string]int, len(header))
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		if alias, ok := csvColumnAliases[name]; ok {
			name = alias
		}
		if !known[name] {
			return nil, apperror.BadRequest("Unknown CSV column %q", strings.TrimSpace(raw))
		}
		if _, dup := columns[name]; dup {
			return nil, apperror.BadRequest("Duplicate CSV column %q", name)
		}
		columns[name] = i
	}

	var missing []string
	for _, column := range requiredCSVColumns {
		if _, ok := columns[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, apperror.BadRequest("CSV header is missing required columns: %s", strings.Join(missing, ", "))
	}

	return columns, nil
}

func decodeCSVRow(columns map[string]int, fields []string) (model.CollegeImport, error) {
	get := func(column string) string {
		if i, ok := columns[column]; ok {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}
	optional := func(column string) *string {
		if v := get(column); v != "" {
			return &v
		}
		return nil
	}

	record := model.CollegeImport{
		Name:     get("name"),
		Category: get("category"),
		District: get("district"),
		City:     get("city"),
		Type:     get("type"),
		Phone:    optional("phone"),
		Email:    optional("email"),
		Website:  optional("website"),
		Address:  optional("address"),
		Pincode:  optional("pincode"),
	}

	var err error
	if record.Autonomous, err = parseOptionalBool("autonomous", get("autonomous")); err != nil {
		return record, err
	}
	if record.Minority, err = parseOptionalBool("minority", get("minority")); err != nil {
		return record, err
	}
	if record.HostelAvailable, err = parseOptionalBool("hostel_available", get("hostel_available")); err != nil {
		return record, err
	}
	if year := get("established_year"); year != "" {
		n, convErr := strconv.Atoi(year)
		if convErr != nil {
			return record, fmt.Errorf("established_year must be a whole number, got %q", year)
		}
		record.EstablishedYear = &n
	}

	return record, nil
}

// parseOptionalBool accepts the spellings spreadsheets commonly produce.
// Blank means unknown.
func parseOptionalBool(column, value string) (*bool, error) {
	var b bool
	switch strings.ToLower(value) {
	case "":
		return nil, nil
	case "true", "t", "yes", "y", "1":
		b = true
	case "false", "f", "no", "n", "0":
		b = false
	default:
		return nil, fmt.Errorf("%s must be true or false, got %q", column, value)
	}
	return &b, nil
}

func blankRow(fields []string) bool {
	for _, field := range fields {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM drops the byte order mark some spreadsheet tools write
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}
