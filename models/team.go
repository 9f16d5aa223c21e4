package models

import "time"

// Team groups employees of one organisation. Names are unique per organisation.
type Team struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrganisationID uint      `gorm:"not null;uniqueIndex:idx_teams_org_name,priority:1" json:"organisation_id"`
	Name           string    `gorm:"not null;uniqueIndex:idx_teams_org_name,priority:2" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Organisation *Organisation `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// EmployeeTeam joins employees to teams. A pair is stored at most once.
type EmployeeTeam struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmployeeID uint      `gorm:"not null;uniqueIndex:idx_employee_teams_pair,priority:1" json:"employee_id"`
	TeamID     uint      `gorm:"not null;uniqueIndex:idx_employee_teams_pair,priority:2;index" json:"team_id"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`

	// Relations
	Employee *Employee `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Team     *Team     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
