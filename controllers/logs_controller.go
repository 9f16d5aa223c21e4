package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"hrms/services"
	"hrms/utils"
)

type LogsController struct {
	Service *services.LogService
	Logger  logrus.FieldLogger
}

func NewLogsController(service *services.LogService, logger logrus.FieldLogger) *LogsController {
	return &LogsController{
		Service: service,
		Logger:  logger,
	}
}

// GetLogs serves the organisation's audit trail, newest first.
func (lc *LogsController) GetLogs(c *fiber.Ctx) error {
	filter, err := parseLogFilter(c)
	if err != nil {
		return utils.HandleError(c, lc.Logger, err)
	}

	page, err := lc.Service.Query(c.UserContext(), filter)
	if err != nil {
		return utils.HandleError(c, lc.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "Logs fetched successfully",
		"total":   page.Total,
		"page":    page.Page,
		"pages":   page.Pages,
		"limit":   page.Limit,
		"data":    page.Data,
	})
}

func parseLogFilter(c *fiber.Ctx) (services.LogFilter, error) {
	var filter services.LogFilter

	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return filter, utils.NewValidationError("Valid user_id is required.")
		}
		filter.UserID = uint(userID)
	}
	filter.Action = c.Query("action")

	startDate, err := utils.ParseDate(c.Query("startDate"))
	if err != nil {
		return filter, err
	}
	endDate, err := utils.ParseDate(c.Query("endDate"))
	if err != nil {
		return filter, err
	}
	if startDate != nil && endDate != nil && startDate.After(utils.EndOfDay(*endDate)) {
		return filter, utils.NewValidationError("startDate must not be after endDate.")
	}
	filter.StartDate = startDate
	filter.EndDate = endDate

	filter.Page = c.QueryInt("page", 1)
	filter.Limit = c.QueryInt("limit", utils.DefaultPageLimit)

	return filter, nil
}
