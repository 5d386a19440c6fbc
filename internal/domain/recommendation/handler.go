package recommendation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicbridge/intake/internal/domain/cases"
	"github.com/clinicbridge/intake/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/cases/:id/recommendation", h.GetByCase)
	api.GET("/recommendations/:id", h.Get)

	doctor := api.Group("", auth.RequireRole("doctor"))
	doctor.DELETE("/recommendations/:id", h.Delete)
}

// respond translates recommendation errors into the shared failure envelope.
// Missing rows become NOT_FOUND; anything else is a storage fault.
func respond(c echo.Context, err error) error {
	if errors.Is(err, ErrNotFound) {
		return cases.RespondError(c, &cases.Fault{
			Kind:    cases.KindNotFound,
			Message: "recommendation not found",
		})
	}
	return cases.RespondError(c, err)
}

func badID(c echo.Context) error {
	return cases.RespondError(c, cases.NewValidationFault("input validation failed",
		cases.FieldError{Field: "id", Message: "must be a UUID"}))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badID(c)
	}
	rec, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) GetByCase(c echo.Context) error {
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badID(c)
	}
	rec, err := h.svc.GetByCase(c.Request().Context(), caseID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badID(c)
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
