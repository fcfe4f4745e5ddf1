package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/usecase"
)

// BetriebHandler CRUD de Betriebe; las escrituras pasan por RequireRole(ADMIN).
type BetriebHandler struct {
	uc *usecase.BetriebUseCase
}

// NewBetriebHandler construye el handler.
func NewBetriebHandler(uc *usecase.BetriebUseCase) *BetriebHandler {
	return &BetriebHandler{uc: uc}
}

// List GET /api/v1/betriebe.
func (h *BetriebHandler) List(c *fiber.Ctx) error {
	page, err := h.uc.List(betriebFilter(c), pageRequest(c))
	if err != nil {
		return fromError(c, err)
	}
	return c.JSON(page)
}

// GetByID GET /api/v1/betriebe/:id.
func (h *BetriebHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fromError(c, err)
	}
	return c.JSON(out)
}

// Create POST /api/v1/betriebe.
func (h *BetriebHandler) Create(c *fiber.Ctx) error {
	var in dto.BetriebCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, "Ungültiger Request-Body")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return fromError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/v1/betriebe/:id.
func (h *BetriebHandler) Update(c *fiber.Ctx) error {
	var in dto.BetriebUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, "Ungültiger Request-Body")
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return fromError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus PATCH /api/v1/betriebe/:id/status.
func (h *BetriebHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.BetriebStatusUpdate
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, "Ungültiger Request-Body")
	}
	out, err := h.uc.UpdateStatus(c.Params("id"), in)
	if err != nil {
		return fromError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/v1/betriebe/:id. Borra también sus Bedarfe.
func (h *BetriebHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return fromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
