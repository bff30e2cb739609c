package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/application/followups"
)

// FollowupHandler maneja el ciclo de vida de los seguimientos mensuales.
type FollowupHandler struct {
	uc *followups.Lifecycle
}

// NewFollowupHandler construye el handler.
func NewFollowupHandler(uc *followups.Lifecycle) *FollowupHandler {
	return &FollowupHandler{uc: uc}
}

// Save godoc
// @Summary      Guardar seguimiento (crea o actualiza por cliente y mes)
// @Tags         followups
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FollowupRequest  true  "seguimiento"
// @Success      200   {object}  dto.SaveFollowupResponse
// @Success      201   {object}  dto.SaveFollowupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/followups [post]
func (h *FollowupHandler) Save(c *fiber.Ctx) error {
	var in dto.FollowupRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Save(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	status := fiber.StatusOK
	if out.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}

// GetByID GET /api/followups/:id
func (h *FollowupHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/followups/:id
func (h *FollowupHandler) Update(c *fiber.Ctx) error {
	var in dto.FollowupRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/followups/:id
func (h *FollowupHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), actorFrom(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reopen godoc
// @Summary      Reabrir un seguimiento pagado (solo admin)
// @Tags         followups
// @Produce      json
// @Param        id  path  string  true  "ID del seguimiento"
// @Success      200  {object}  dto.FollowupResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/followups/{id}/reopen [post]
func (h *FollowupHandler) Reopen(c *fiber.Ctx) error {
	out, err := h.uc.Reopen(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
