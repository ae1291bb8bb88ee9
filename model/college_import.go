package model

import "strings"

// CollegeImport is one record of a bulk upload, whatever encoding it arrived in.
type CollegeImport struct {
	Name            string  `json:"name" validate:"required,max=255"`
	Category        string  `json:"category" validate:"required,max=100"`
	District        string  `json:"district" validate:"required,max=100"`
	City            string  `json:"city" validate:"required,max=100"`
	Type            string  `json:"type" validate:"required,max=100"`
	Autonomous      *bool   `json:"autonomous"`
	Minority        *bool   `json:"minority"`
	HostelAvailable *bool   `json:"hostel_available"`
	EstablishedYear *int    `json:"established_year" validate:"omitempty,gte=1800,lte=2100"`
	Phone           *string `json:"phone" validate:"omitempty,max=50"`
	Email           *string `json:"email" validate:"omitempty,max=255"`
	Website         *string `json:"website" validate:"omitempty,max=512"`
	Address         *string `json:"address"`
	Pincode         *string `json:"pincode" validate:"omitempty,max=10"`
}

// Normalize trims every string and turns blank optional fields into nil.
func (r *CollegeImport) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.District = strings.TrimSpace(r.District)
	r.City = strings.TrimSpace(r.City)
	r.Type = strings.TrimSpace(r.Type)
	r.Phone = trimOptional(r.Phone)
	r.Email = trimOptional(r.Email)
	r.Website = trimOptional(r.Website)
	r.Address = trimOptional(r.Address)
	r.Pincode = trimOptional(r.Pincode)
}

// College returns the college row described by the record.
func (r *CollegeImport) College() *College {
	return &College{
		Name:            r.Name,
		Category:        r.Category,
		District:        r.District,
		City:            r.City,
		Type:            r.Type,
		Autonomous:      r.Autonomous,
		Minority:        r.Minority,
		HostelAvailable: r.HostelAvailable,
		EstablishedYear: r.EstablishedYear,
	}
}

// ContactInfo returns the contact row for collegeID, or nil when the record has none.
func (r *CollegeImport) ContactInfo(collegeID uint) *ContactInfo {
	contact := &ContactInfo{
		CollegeID: collegeID,
		Phone:     r.Phone,
		Email:     r.Email,
		Website:   r.Website,
		Address:   r.Address,
		Pincode:   r.Pincode,
	}
	if contact.IsEmpty() {
		return nil
	}
	return contact
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
