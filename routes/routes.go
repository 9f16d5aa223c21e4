package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hrms/audit"
	"hrms/config"
	controller "hrms/controllers"
	"hrms/middleware"
	"hrms/services"
	"hrms/utils"
)

// Dependencies are the process-wide collaborators built once in main.
type Dependencies struct {
	Config *config.Config
	DB     *gorm.DB
	Logger *logrus.Logger
	Tokens *utils.TokenService
	// RateLimitStorage backs the auth limiter; nil keeps counters in memory.
	RateLimitStorage fiber.Storage
}

type controllers struct {
	auth      *controller.AuthController
	employees *controller.EmployeeController
	teams     *controller.TeamController
	logs      *controller.LogsController
}

func newControllers(deps Dependencies) controllers {
	recorder := audit.NewLogger(deps.DB, deps.Logger.WithField("component", "audit"))

	return controllers{
		auth: controller.NewAuthController(
			services.NewAuthService(deps.DB, deps.Tokens, recorder, deps.Logger),
			deps.Logger.WithField("controller", "auth"),
		),
		employees: controller.NewEmployeeController(
			services.NewEmployeeService(deps.DB, recorder, deps.Logger),
			deps.Logger.WithField("controller", "employees"),
		),
		teams: controller.NewTeamController(
			services.NewTeamService(deps.DB, recorder, deps.Logger),
			deps.Logger.WithField("controller", "teams"),
		),
		logs: controller.NewLogsController(
			services.NewLogService(deps.DB, deps.Logger),
			deps.Logger.WithField("controller", "logs"),
		),
	}
}

func SetupAuthRoutes(api fiber.Router, deps Dependencies, ctrl controllers) {
	limiter := middleware.AuthRateLimiter(deps.Config, deps.RateLimitStorage, deps.Logger)

	auth := api.Group("/auth")
	auth.Post("/register", limiter, ctrl.auth.Register)
	auth.Post("/login", limiter, ctrl.auth.Login)
	auth.Post("/logout", middleware.Protected(deps.Tokens), ctrl.auth.Logout)
}

func SetupAPIRoutes(api fiber.Router, deps Dependencies, ctrl controllers) {
	protected := middleware.Protected(deps.Tokens)

	employees := api.Group("/employees", protected)
	employees.Post("/", ctrl.employees.CreateEmployee)
	employees.Get("/", ctrl.employees.GetEmployees)
	employees.Get("/:id", ctrl.employees.GetEmployee)
	employees.Put("/:id", ctrl.employees.UpdateEmployee)
	employees.Delete("/:id", ctrl.employees.DeleteEmployee)

	teams := api.Group("/teams", protected)
	teams.Get("/", ctrl.teams.GetTeams)
	teams.Post("/", ctrl.teams.CreateTeam)
	teams.Put("/:id", ctrl.teams.UpdateTeam)
	teams.Delete("/:id", ctrl.teams.DeleteTeam)
	teams.Post("/:teamId/assign", ctrl.teams.AssignEmployees)
	teams.Get("/:teamId/employees", ctrl.teams.GetTeamEmployees)
	teams.Delete("/:teamId/unassign", ctrl.teams.UnassignEmployees)

	api.Get("/logs", protected, ctrl.logs.GetLogs)
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	ctrl := newControllers(deps)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		Output: deps.Logger.Out,
	}))

	SetupAuthRoutes(api, deps, ctrl)
	SetupAPIRoutes(api, deps, ctrl)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})

	deps.Logger.Info("Routes initialized successfully")
}
