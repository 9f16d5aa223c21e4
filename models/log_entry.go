package models

import (
	"time"

	"gorm.io/datatypes"
)

// LogEntry is one audit record. Rows are only ever inserted.
type LogEntry struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	OrganisationID uint              `gorm:"not null;index:idx_logs_org_timestamp,priority:1" json:"organisation_id"`
	UserID         uint              `gorm:"not null;index" json:"user_id"`
	Action         string            `gorm:"not null;index" json:"action"`
	Meta           datatypes.JSONMap `json:"meta"`
	Timestamp      time.Time         `gorm:"not null;index:idx_logs_org_timestamp,priority:2" json:"timestamp"`
}

func (LogEntry) TableName() string {
	return "logs"
}
