package utils

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-01-01")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *got)

	got, err = ParseDate("2024-01-01T10:30:00+02:00")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC), *got)

	got, err = ParseDate("  ")
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = ParseDate("01/02/2024")
	require.Error(t, err)
	require.Equal(t, KindValidation, KindOf(err))
}

func TestEndOfDay(t *testing.T) {
	end := EndOfDay(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Equal(t, time.Date(2024, 1, 1, 23, 59, 59, 999000000, time.UTC), end)
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, DefaultPageLimit},
		{-3, 10, 1, 10},
		{2, 500, 2, MaxPageLimit},
		{4, 25, 4, 25},
	}
	for _, tt := range tests {
		page, limit := NormalizePage(tt.page, tt.limit)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantLimit, limit)
	}

	assert.Equal(t, 0, PageCount(0, 20))
	assert.Equal(t, 1, PageCount(20, 20))
	assert.Equal(t, 2, PageCount(21, 20))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(NewValidationError("bad")))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("wrapped: %w", NewConflictError("dup"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, 404, KindNotFound.Status())
	assert.Equal(t, 401, KindUnauthenticated.Status())
}

func TestHandleError(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	app := fiber.New()
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return HandleError(c, log, NewConflictError("Employee with this email already exists."))
	})
	app.Get("/internal", func(c *fiber.Ctx) error {
		return HandleError(c, log, errors.New("pq: connection refused"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/conflict", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	require.JSONEq(t, `{"error":"Employee with this email already exists."}`, string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/internal", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	require.JSONEq(t, `{"error":"Internal server error."}`, string(body))
}

func TestValidateStruct(t *testing.T) {
	type input struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
	}

	err := ValidateStruct(input{Email: "nope"})
	require.Error(t, err)
	require.Equal(t, KindValidation, KindOf(err))
	require.Contains(t, err.Error(), "name is required")
	require.Contains(t, err.Error(), "email must be a valid email")

	require.NoError(t, ValidateStruct(input{Name: "a", Email: "a@example.com"}))
	require.Error(t, ValidateEmail("missing-at.example.com"))
	require.NoError(t, ValidateEmail("jane@example.com"))
}
