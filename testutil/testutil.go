// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hrms/models"
)

// NewDB opens a migrated sqlite database in a per-test temp directory with
// foreign keys enforced.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openDB(t, true)
}

// NewDBWithoutForeignKeys is NewDB for tests that need rows a cascading
// store would never leave behind.
func NewDBWithoutForeignKeys(t *testing.T) *gorm.DB {
	t.Helper()
	return openDB(t, false)
}

func openDB(t *testing.T, foreignKeys bool) *gorm.DB {
	t.Helper()

	fk := "0"
	if foreignKeys {
		fk = "1"
	}
	dsn := filepath.Join(t.TempDir(), "hrms.db") + "?_foreign_keys=" + fk + "&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.Migrate(db))
	return db
}

// NewLogger returns a logger that discards output.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// CreateOrganisation inserts an organisation with one user and returns both.
func CreateOrganisation(t *testing.T, db *gorm.DB, name, email string) (models.Organisation, models.User) {
	t.Helper()

	org := models.Organisation{Name: name}
	require.NoError(t, db.Create(&org).Error)

	user := models.User{
		OrganisationID: org.ID,
		Email:          email,
		PasswordHash:   "x",
		Name:           "Admin " + name,
	}
	require.NoError(t, db.Create(&user).Error)
	return org, user
}
