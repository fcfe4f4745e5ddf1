package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/usecase"
	"github.com/jhoicas/bau-portal/internal/domain"
)

// localError guarda el error interno para el log de la petición.
const localError = "error"

// writeError responde con el sobre de error del API.
func writeError(c *fiber.Ctx, status int, msg string, fields ...dto.FieldError) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Timestamp:   dto.Timestamp{Time: time.Now()},
		Status:      status,
		Error:       utils.StatusMessage(status),
		Message:     msg,
		Path:        c.Path(),
		FieldErrors: fields,
	})
}

// fromError traduce errores de dominio a código HTTP.
func fromError(c *fiber.Ctx, err error) error {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return writeError(c, fiber.StatusBadRequest, "Validierung fehlgeschlagen", verr.Fields...)
	case errors.Is(err, domain.ErrValidation):
		return writeError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "Ressource nicht gefunden")
	case errors.Is(err, domain.ErrForbidden):
		return writeError(c, fiber.StatusForbidden, "Keine Berechtigung für diese Aktion")
	case errors.Is(err, domain.ErrUnauthorized):
		return writeError(c, fiber.StatusUnauthorized, "Ungültige E-Mail oder Passwort")
	case errors.Is(err, domain.ErrInvalidTransition):
		return writeError(c, fiber.StatusConflict, "Statuswechsel nicht erlaubt")
	default:
		c.Locals(localError, err)
		return writeError(c, fiber.StatusInternalServerError, "Interner Serverfehler")
	}
}

// ErrorHandler manejador de errores de la app Fiber; mantiene el mismo sobre
// para rutas desconocidas y pánicos recuperados.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return writeError(c, fe.Code, fe.Message)
	}
	return fromError(c, err)
}
