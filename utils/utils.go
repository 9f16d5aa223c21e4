package utils

import (
	"errors"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const internalErrorMessage = "Internal server error."

// ErrorResponse writes a JSON error body.
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// HandleError renders err according to its kind. Internal failures are
// logged and reported, and the caller only sees a generic message.
func HandleError(c *fiber.Ctx, log logrus.FieldLogger, err error) error {
	kind := KindOf(err)
	if kind == KindInternal {
		LogError(log, "request_failed", err, logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		})
		return ErrorResponse(c, kind.Status(), internalErrorMessage)
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return ErrorResponse(c, kind.Status(), appErr.Message)
	}
	return ErrorResponse(c, kind.Status(), err.Error())
}

// ParseID parses a positive numeric path parameter.
func ParseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, NewValidationError("Valid " + name + " is required.")
	}
	return uint(id), nil
}

// Pagination bounds for list endpoints.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// NormalizePage clamps a 1-based page number and page size.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// PageCount returns how many pages of size limit hold total rows.
func PageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
