package model

// ContactInfo holds optional contact details, at most one row per college.
type ContactInfo struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	CollegeID uint    `gorm:"not null;uniqueIndex" json:"college_id"`
	Phone     *string `gorm:"type:varchar(50)" json:"phone"`
	Email     *string `gorm:"type:varchar(255)" json:"email"`
	Website   *string `gorm:"type:varchar(512)" json:"website"`
	Address   *string `gorm:"type:text" json:"address"`
	Pincode   *string `gorm:"type:varchar(10)" json:"pincode"`
}

// TableName specifies the table name for ContactInfo
func (ContactInfo) TableName() string {
	return "contact_info"
}

// IsEmpty reports whether no contact field is set.
func (c *ContactInfo) IsEmpty() bool {
	return c.Phone == nil && c.Email == nil && c.Website == nil && c.Address == nil && c.Pincode == nil
}
