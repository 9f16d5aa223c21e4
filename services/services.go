// Package services holds the tenant-scoped domain operations.
//
// Every operation reads the caller from the tenant context in ctx. Queries
// filter on that organisation, inserts stamp it, and lookups by id include
// it, so an id owned by another organisation behaves exactly like a missing
// one.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"hrms/audit"
	"hrms/utils"
)

// AuditRecorder appends an entry to the action trail. Implementations must
// not fail the caller.
type AuditRecorder interface {
	Record(ctx context.Context, action string, userID, orgID uint, meta audit.Meta)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// presentValue reports the trimmed value of an optional field and whether
// it should overwrite the stored one.
func presentValue(field *string) (string, bool) {
	if field == nil {
		return "", false
	}
	value := strings.TrimSpace(*field)
	return value, value != ""
}

func internal(message string, err error) error {
	return utils.NewInternalError(message, err)
}
