package validation

import (
	"strings"
	"testing"
)

type sampleRecord struct {
	Name  string `json:"name" validate:"required,max=5"`
	Year  *int   `json:"established_year" validate:"omitempty,gte=1800"`
	Notes string `validate:"max=3"`
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	v := NewValidator()
	year := 1700

	err := v.ValidateStruct(sampleRecord{Year: &year, Notes: "toolong"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	fields := FormatValidationErrors(err)
	if fields["name"] != "name is required" {
		t.Errorf("name error = %q", fields["name"])
	}
	if fields["established_year"] != "established_year must be greater than or equal to 1800" {
		t.Errorf("established_year error = %q", fields["established_year"])
	}
	if fields["Notes"] != "Notes must be at most 3 characters" {
		t.Errorf("Notes error = %q", fields["Notes"])
	}
}

func TestFormatValidationMessageIsSorted(t *testing.T) {
	v := NewValidator()
	year := 1700

	err := v.ValidateStruct(sampleRecord{Year: &year})
	got := FormatValidationMessage(err)
	want := "established_year must be greater than or equal to 1800; name is required"
	if got != want {
		t.Errorf("FormatValidationMessage() = %q, want %q", got, want)
	}
}

func TestValidStruct(t *testing.T) {
	if err := NewValidator().ValidateStruct(sampleRecord{Name: "COEP"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSanitizeString(t *testing.T) {
	got := SanitizeString("  Pu\x00ne \n")
	if got != "Pune" {
		t.Errorf("SanitizeString() = %q", got)
	}
	if strings.Contains(got, "\x00") {
		t.Error("null byte kept")
	}
}
