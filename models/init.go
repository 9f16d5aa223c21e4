package models

import "gorm.io/gorm"

// Migrate creates or updates the schema, including the unique indexes that
// back the per-organisation uniqueness rules.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Organisation{},
		&User{},
		&Employee{},
		&Team{},
		&EmployeeTeam{},
		&LogEntry{},
	)
}
