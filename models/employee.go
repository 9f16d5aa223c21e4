package models

import "time"

// Employee is an HR record owned by one organisation. Email is unique per
// organisation, not globally.
type Employee struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrganisationID uint      `gorm:"not null;uniqueIndex:idx_employees_org_email,priority:1" json:"organisation_id"`
	FirstName      string    `gorm:"not null" json:"first_name"`
	LastName       string    `gorm:"not null" json:"last_name"`
	Email          string    `gorm:"not null;uniqueIndex:idx_employees_org_email,priority:2" json:"email"`
	Phone          string    `gorm:"not null" json:"phone"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Organisation *Organisation `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
