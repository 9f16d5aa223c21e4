package models

import "time"

// Organisation is the tenant. Every employee, team and log entry belongs to
// exactly one organisation.
type Organisation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
