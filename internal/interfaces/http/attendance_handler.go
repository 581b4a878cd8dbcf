package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-asistencia/internal/application/dto"
	"github.com/jhoicas/portal-asistencia/internal/application/usecase"
)

// AttendanceHandler maneja las peticiones HTTP de asistencia.
type AttendanceHandler struct {
	uc *usecase.AttendanceUseCase
}

// NewAttendanceHandler construye el handler.
func NewAttendanceHandler(uc *usecase.AttendanceUseCase) *AttendanceHandler {
	return &AttendanceHandler{uc: uc}
}

// List godoc
// @Summary      Listar registros de asistencia
// @Tags         attendance
// @Produce      json
// @Success      200  {array}   dto.AttendanceResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /attendance [get]
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar asistencia
// @Description  Crea el registro pendiente de hoy para ownerId. id es opcional; date y timestamp los fija el servidor.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAttendanceRequest  true  "Registro"
// @Success      201   {object}  dto.AttendanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /attendance [post]
func (h *AttendanceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAttendanceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Aprobar o rechazar asistencia
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del registro"
// @Param        body  body  dto.UpdateAttendanceRequest  true  "Decisión"
// @Success      200   {object}  dto.AttendanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /attendance/{id} [put]
func (h *AttendanceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateAttendanceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
