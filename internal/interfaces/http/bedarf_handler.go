package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/usecase"
)

// BedarfHandler CRUD de Bedarfe.
type BedarfHandler struct {
	uc *usecase.BedarfUseCase
}

// NewBedarfHandler construye el handler.
func NewBedarfHandler(uc *usecase.BedarfUseCase) *BedarfHandler {
	return &BedarfHandler{uc: uc}
}

// List GET /api/v1/bedarfe.
func (h *BedarfHandler) List(c *fiber.Ctx) error {
	return h.list(c, "")
}

// ListByBetrieb GET /api/v1/bedarfe/betrieb/:betriebId.
func (h *BedarfHandler) ListByBetrieb(c *fiber.Ctx) error {
	return h.list(c, c.Params("betriebId"))
}

func (h *BedarfHandler) list(c *fiber.Ctx, betriebID string) error {
	f, fields := bedarfFilter(c)
	if len(fields) > 0 {
		return writeError(c, fiber.StatusBadRequest, "Ungültige Filter", fields...)
	}
	f.BetriebID = betriebID
	page, err := h.uc.List(f, pageRequest(c))
	if err != nil {
		return fromError(c, err)
	}
	return c.JSON(page)
}

// GetByID GET /api/v1/bedarfe/:id.
func (h *BedarfHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fromError(c, err)
	}
	return c.JSON(out)
}

// Create POST /api/v1/bedarfe.
func (h *BedarfHandler) Create(c *fiber.Ctx) error {
	var in dto.BedarfCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, "Ungültiger Request-Body")
	}
	out, err := h.uc.Create(Actor(c), in)
	if err != nil {
		return fromError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/v1/bedarfe/:id.
func (h *BedarfHandler) Update(c *fiber.Ctx) error {
	var in dto.BedarfUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, "Ungültiger Request-Body")
	}
	out, err := h.uc.Update(Actor(c), c.Params("id"), in)
	if err != nil {
		return fromError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus PATCH /api/v1/bedarfe/:id/status.
func (h *BedarfHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.BedarfStatusUpdate
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, "Ungültiger Request-Body")
	}
	out, err := h.uc.UpdateStatus(Actor(c), c.Params("id"), in)
	if err != nil {
		return fromError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/v1/bedarfe/:id.
func (h *BedarfHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(Actor(c), c.Params("id")); err != nil {
		return fromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
