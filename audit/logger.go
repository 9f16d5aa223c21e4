// Package audit writes the per-organisation action trail.
//
// Entries are written after the action they describe has succeeded. A failed
// write is reported to the operational log and to Sentry, and never returned
// to the caller: losing an entry is preferred over failing the action.
package audit

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hrms/models"
	"hrms/utils"
)

// Meta is the free-form payload stored with an entry.
type Meta map[string]interface{}

type Logger struct {
	db  *gorm.DB
	log logrus.FieldLogger
	now func() time.Time
}

func NewLogger(db *gorm.DB, log logrus.FieldLogger) *Logger {
	return &Logger{
		db:  db,
		log: log,
		now: time.Now,
	}
}

// Record appends an entry for action performed by userID in orgID.
func (l *Logger) Record(ctx context.Context, action string, userID, orgID uint, meta Meta) {
	timestamp := l.now().UTC()

	l.log.WithFields(logrus.Fields{
		"audit_action":    action,
		"user_id":         userID,
		"organisation_id": orgID,
	}).Info(Message(action, userID, meta))

	entry := models.LogEntry{
		OrganisationID: orgID,
		UserID:         userID,
		Action:         action,
		Meta:           toJSONMap(meta),
		Timestamp:      timestamp,
	}

	// The action already happened; a caller hanging up must not drop its entry.
	if err := l.db.WithContext(context.WithoutCancel(ctx)).Create(&entry).Error; err != nil {
		utils.LogError(l.log, "audit_insert_failed", err, logrus.Fields{
			"audit_action":    action,
			"user_id":         userID,
			"organisation_id": orgID,
		})
	}
}

func toJSONMap(meta Meta) datatypes.JSONMap {
	if meta == nil {
		return datatypes.JSONMap{}
	}
	return datatypes.JSONMap(meta)
}
