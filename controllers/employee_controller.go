package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"hrms/services"
	"hrms/utils"
)

type EmployeeController struct {
	Service *services.EmployeeService
	Logger  logrus.FieldLogger
}

func NewEmployeeController(service *services.EmployeeService, logger logrus.FieldLogger) *EmployeeController {
	return &EmployeeController{
		Service: service,
		Logger:  logger,
	}
}

func (ec *EmployeeController) CreateEmployee(c *fiber.Ctx) error {
	var input services.CreateEmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	employee, err := ec.Service.Create(c.UserContext(), input)
	if err != nil {
		return utils.HandleError(c, ec.Logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Employee data added successfully.",
		"data":    employee,
	})
}

func (ec *EmployeeController) GetEmployees(c *fiber.Ctx) error {
	employees, err := ec.Service.List(c.UserContext())
	if err != nil {
		return utils.HandleError(c, ec.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "Successfully fetched employees data.",
		"data":    employees,
	})
}

func (ec *EmployeeController) GetEmployee(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return utils.HandleError(c, ec.Logger, err)
	}

	employee, err := ec.Service.Get(c.UserContext(), id)
	if err != nil {
		return utils.HandleError(c, ec.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "Employee data fetched successfully.",
		"data":    employee,
	})
}

// UpdateEmployee applies a partial update. Fields missing from the body are
// left untouched.
func (ec *EmployeeController) UpdateEmployee(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return utils.HandleError(c, ec.Logger, err)
	}

	var input services.UpdateEmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	employee, err := ec.Service.Update(c.UserContext(), id, input)
	if err != nil {
		return utils.HandleError(c, ec.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "Employee updated successfully.",
		"data":    employee,
	})
}

func (ec *EmployeeController) DeleteEmployee(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return utils.HandleError(c, ec.Logger, err)
	}

	if err := ec.Service.Delete(c.UserContext(), id); err != nil {
		return utils.HandleError(c, ec.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "Employee deleted successfully.",
	})
}
