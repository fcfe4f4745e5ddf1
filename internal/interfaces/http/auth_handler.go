package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bau-portal/internal/application/auth"
	"github.com/jhoicas/bau-portal/internal/application/dto"
)

// AuthHandler maneja login y logout.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, "Ungültiger Request-Body")
	}
	var fields []dto.FieldError
	if in.Email == "" {
		fields = append(fields, dto.FieldError{Field: "email", Message: "Dieses Feld ist erforderlich"})
	}
	if in.Password == "" {
		fields = append(fields, dto.FieldError{Field: "password", Message: "Dieses Feld ist erforderlich"})
	}
	if len(fields) > 0 {
		return writeError(c, fiber.StatusBadRequest, "Validierung fehlgeschlagen", fields...)
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return fromError(c, err)
	}
	return c.JSON(out)
}

// Logout POST /api/v1/auth/logout. Los tokens no se revocan; el cliente los descarta.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
