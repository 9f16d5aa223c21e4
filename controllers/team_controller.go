package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"hrms/services"
	"hrms/utils"
)

type TeamController struct {
	Service *services.TeamService
	Logger  logrus.FieldLogger
}

func NewTeamController(service *services.TeamService, logger logrus.FieldLogger) *TeamController {
	return &TeamController{
		Service: service,
		Logger:  logger,
	}
}

// membershipRequest accepts a single employeeId or a list in employeeIds.
// A single id wins when both are sent.
type membershipRequest struct {
	EmployeeID  uint   `json:"employeeId"`
	EmployeeIDs []uint `json:"employeeIds"`
}

func (r membershipRequest) ids() []uint {
	if r.EmployeeID != 0 {
		return []uint{r.EmployeeID}
	}
	return r.EmployeeIDs
}

func (tc *TeamController) GetTeams(c *fiber.Ctx) error {
	teams, err := tc.Service.List(c.UserContext())
	if err != nil {
		return utils.HandleError(c, tc.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "Teams fetched successfully.",
		"data":    teams,
	})
}

func (tc *TeamController) CreateTeam(c *fiber.Ctx) error {
	var input services.CreateTeamInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	team, err := tc.Service.Create(c.UserContext(), input)
	if err != nil {
		return utils.HandleError(c, tc.Logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Team created successfully.",
		"data":    team,
	})
}

func (tc *TeamController) UpdateTeam(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return utils.HandleError(c, tc.Logger, err)
	}

	var input services.UpdateTeamInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	team, err := tc.Service.Update(c.UserContext(), id, input)
	if err != nil {
		return utils.HandleError(c, tc.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "Team updated successfully.",
		"data":    team,
	})
}

func (tc *TeamController) DeleteTeam(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return utils.HandleError(c, tc.Logger, err)
	}

	if err := tc.Service.Delete(c.UserContext(), id); err != nil {
		return utils.HandleError(c, tc.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "Team deleted successfully.",
	})
}

// AssignEmployees reports per-employee outcomes; skipped ids do not fail the
// request.
func (tc *TeamController) AssignEmployees(c *fiber.Ctx) error {
	teamID, err := utils.ParseID(c, "teamId")
	if err != nil {
		return utils.HandleError(c, tc.Logger, err)
	}

	var input membershipRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := tc.Service.Assign(c.UserContext(), teamID, input.ids())
	if err != nil {
		return utils.HandleError(c, tc.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Assignment completed.",
		"assigned": result.Assigned,
		"skipped":  result.Skipped,
	})
}

func (tc *TeamController) GetTeamEmployees(c *fiber.Ctx) error {
	teamID, err := utils.ParseID(c, "teamId")
	if err != nil {
		return utils.HandleError(c, tc.Logger, err)
	}

	employees, err := tc.Service.Members(c.UserContext(), teamID)
	if err != nil {
		return utils.HandleError(c, tc.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message":   "Assigned employees fetched successfully.",
		"employees": employees,
	})
}

func (tc *TeamController) UnassignEmployees(c *fiber.Ctx) error {
	teamID, err := utils.ParseID(c, "teamId")
	if err != nil {
		return utils.HandleError(c, tc.Logger, err)
	}

	var input membershipRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := tc.Service.Unassign(c.UserContext(), teamID, input.ids())
	if err != nil {
		return utils.HandleError(c, tc.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "Unassignment completed.",
		"removed": result.Removed,
		"skipped": result.Skipped,
	})
}
