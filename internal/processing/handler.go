package processing

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicbridge/intake/internal/domain/cases"
)

type Handler struct {
	pipeline *Pipeline
}

func NewHandler(p *Pipeline) *Handler {
	return &Handler{pipeline: p}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/cases/:id/process", h.Trigger)
	api.GET("/cases/:id/processing", h.GetStatus)
}

func (h *Handler) Trigger(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return cases.RespondError(c, cases.NewValidationFault("id must be a UUID"))
	}
	sv, err := h.pipeline.Trigger(c.Request().Context(), id)
	if err != nil {
		return cases.RespondError(c, err)
	}
	return c.JSON(http.StatusAccepted, map[string]interface{}{
		"success": true,
		"data":    sv,
	})
}

func (h *Handler) GetStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return cases.RespondError(c, cases.NewValidationFault("id must be a UUID"))
	}
	sv, err := h.pipeline.GetStatus(c.Request().Context(), id)
	if err != nil {
		return cases.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    sv,
	})
}
