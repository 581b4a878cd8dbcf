package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-asistencia/internal/application/dto"
	"github.com/jhoicas/portal-asistencia/internal/application/usecase"
	"github.com/jhoicas/portal-asistencia/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UserUC       *usecase.UserUseCase
	AttendanceUC *usecase.AttendanceUseCase
	InventoryUC  *usecase.InventoryUseCase
	Log          *logger.Logger
	Service      string
	Store        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log != nil {
		app.Use(RequestLogger(deps.Log.Named("http")))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.Service, Store: deps.Store})
	})

	userHandler := NewUserHandler(deps.UserUC)
	app.Get("/users", userHandler.List)
	app.Put("/users/:id", userHandler.Update)

	attendanceHandler := NewAttendanceHandler(deps.AttendanceUC)
	app.Get("/attendance", attendanceHandler.List)
	app.Post("/attendance", attendanceHandler.Create)
	app.Put("/attendance/:id", attendanceHandler.UpdateStatus)

	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	app.Get("/inventory", inventoryHandler.List)
	app.Put("/inventory/:id", inventoryHandler.Update)
}
