package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"hrms/services"
	"hrms/utils"
)

type AuthController struct {
	Service *services.AuthService
	Logger  logrus.FieldLogger
}

func NewAuthController(service *services.AuthService, logger logrus.FieldLogger) *AuthController {
	return &AuthController{
		Service: service,
		Logger:  logger,
	}
}

// Register creates an organisation together with its first user
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := ac.Service.Register(c.UserContext(), input)
	if err != nil {
		return utils.HandleError(c, ac.Logger, err)
	}

	c.Set(fiber.HeaderAuthorization, "Bearer "+result.Token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Organisation registered successfully.",
		"token":   result.Token,
		"orgId":   result.OrgID,
		"userId":  result.UserID,
	})
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := ac.Service.Login(c.UserContext(), input)
	if err != nil {
		return utils.HandleError(c, ac.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful.",
		"token":   result.Token,
		"userId":  result.UserID,
		"orgId":   result.OrgID,
	})
}

// Logout only records the event. Tokens stay valid until they expire.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Service.Logout(c.UserContext()); err != nil {
		return utils.HandleError(c, ac.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "Logout successful.",
	})
}
