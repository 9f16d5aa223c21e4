package models

import "time"

// User represents an account that can sign in to its organisation.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrganisationID uint      `gorm:"not null;index" json:"organisation_id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Organisation *Organisation `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
