package services

import (
	"strings"
	"testing"

	"github.com/sahilchouksey/college-directory/utils/apperror"
)

func TestDecodeCollegeCSV(t *testing.T) {
	input := "name,category,district,city,type,autonomous,hostel_available,established_year,phone\n" +
		"College of Engineering Pune,Engineering,Pune,Pune,Government,yes,1,1854,020-25507000\n" +
		"Fergusson College,Arts,Pune,Pune,Aided,,,,\n"

	records, err := DecodeCollegeCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeCollegeCSV() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	if first.Err != nil {
		t.Fatalf("first record error = %v", first.Err)
	}
	if first.Position != 1 || first.Line != 2 {
		t.Errorf("first record position/line = %d/%d, want 1/2", first.Position, first.Line)
	}
	if first.College.Name != "College of Engineering Pune" || first.College.Type != "Government" {
		t.Errorf("unexpected college %+v", first.College)
	}
	if first.College.Autonomous == nil || !*first.College.Autonomous {
		t.Error("autonomous should be true")
	}
	if first.College.HostelAvailable == nil || !*first.College.HostelAvailable {
		t.Error("hostel_available should be true")
	}
	if first.College.EstablishedYear == nil || *first.College.EstablishedYear != 1854 {
		t.Error("established_year should be 1854")
	}
	if first.College.Phone == nil || *first.College.Phone != "020-25507000" {
		t.Error("phone not decoded")
	}

	second := records[1]
	if second.Line != 3 {
		t.Errorf("second line = %d, want 3", second.Line)
	}
	if second.College.Autonomous != nil || second.College.EstablishedYear != nil || second.College.Phone != nil {
		t.Errorf("blank optional fields should be nil: %+v", second.College)
	}
}

func TestDecodeCollegeCSVColumnOrderAndAlias(t *testing.T) {
	input := "\xEF\xBB\xBFCity, Name ,college_type,district,category\n" +
		"Mumbai,VJTI,Aided,Mumbai City,Engineering\n"

	records, err := DecodeCollegeCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeCollegeCSV() error = %v", err)
	}
	if len(records) != 1 || records[0].Err != nil {
		t.Fatalf("unexpected records %+v", records)
	}

	college := records[0].College
	if college.Name != "VJTI" || college.City != "Mumbai" || college.Type != "Aided" || college.District != "Mumbai City" {
		t.Errorf("columns mapped wrongly: %+v", college)
	}
}

func TestDecodeCollegeCSVHeaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "CSV file is empty"},
		{"missing required", "name,category,district\n", "missing required columns: city, type"},
		{"unknown column", "name,category,district,city,type,rating\n", `Unknown CSV column "rating"`},
		{"duplicate column", "name,name,category,district,city,type\n", `Duplicate CSV column "name"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCollegeCSV(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if apperror.KindOf(err) != apperror.KindBadRequest {
				t.Errorf("kind = %v, want BAD_REQUEST", apperror.KindOf(err))
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestDecodeCollegeCSVRowErrors(t *testing.T) {
	input := "name,category,district,city,type,autonomous,established_year\n" +
		"A,Engineering,Pune,Pune,Private,maybe,\n" +
		"B,Engineering,Pune,Pune,Private,,nineteen\n" +
		"C,Engineering,Pune\n" +
		",,,,,,\n" +
		"D,Engineering,Pune,Pune,Private,no,2001\n"

	records, err := DecodeCollegeCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeCollegeCSV() error = %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4 (blank row skipped)", len(records))
	}

	wantErr := []string{
		`autonomous must be true or false, got "maybe"`,
		`established_year must be a whole number, got "nineteen"`,
		"expected 7 columns, got 3",
	}
	for i, want := range wantErr {
		if records[i].Err == nil || records[i].Err.Error() != want {
			t.Errorf("record %d error = %v, want %q", i+1, records[i].Err, want)
		}
	}

	last := records[3]
	if last.Err != nil || last.Line != 6 || last.Position != 4 {
		t.Errorf("last record = %+v, want line 6 position 4 without error", last)
	}
}

func TestDecodeCollegeCSVMalformedQuote(t *testing.T) {
	input := "name,category,district,city,type\n" +
		"A \"quoted\" name,Engineering,Pune,Pune,Private\n" +
		"B,Engineering,Pune,Pune,Private\n"

	records, err := DecodeCollegeCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeCollegeCSV() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Err == nil || records[0].Line != 2 {
		t.Errorf("first record = %+v, want parse error on line 2", records[0])
	}
	if records[1].Err != nil || records[1].College.Name != "B" {
		t.Errorf("second record = %+v, want B decoded", records[1])
	}
}

func TestParseOptionalBool(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "Yes", "y", "1", "t"} {
		b, err := parseOptionalBool("autonomous", v)
		if err != nil || b == nil || !*b {
			t.Errorf("parseOptionalBool(%q) = %v, %v; want true", v, b, err)
		}
	}
	for _, v := range []string{"false", "No", "n", "0", "F"} {
		b, err := parseOptionalBool("autonomous", v)
		if err != nil || b == nil || *b {
			t.Errorf("parseOptionalBool(%q) = %v, %v; want false", v, b, err)
		}
	}
	if b, err := parseOptionalBool("autonomous", ""); b != nil || err != nil {
		t.Errorf("blank should be nil, got %v, %v", b, err)
	}
}

func TestCSVTemplate(t *testing.T) {
	want := "name,category,district,city,type,autonomous,minority,hostel_available,established_year,phone,email,website,address,pincode\n"
	if got := CSVTemplate(); got != want {
		t.Errorf("CSVTemplate() = %q", got)
	}

	records, err := DecodeCollegeCSV(strings.NewReader(CSVTemplate()))
	if err != nil || len(records) != 0 {
		t.Errorf("template should decode to zero records, got %d, %v", len(records), err)
	}
}
