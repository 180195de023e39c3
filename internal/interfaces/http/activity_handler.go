package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stockpilot/stockpilot-api/internal/application/activity"
	"github.com/stockpilot/stockpilot-api/internal/application/dto"
)

// ActivityHandler expone el feed de actividad reciente (protegido).
type ActivityHandler struct {
	uc *activity.FeedUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *activity.FeedUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// Recent godoc
// @Summary      Actividad reciente
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200  {object}  dto.ActivityListResponse
// @Router       /api/activity [get]
func (h *ActivityHandler) Recent(c *fiber.Ctx) error {
	out, err := h.uc.Recent(c.Context(), GetUserID(c), c.QueryInt("limit", 10))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
