package bridge

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicbridge/intake/internal/domain/cases"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/bridge/chat", h.HandleChat)
	api.POST("/bridge/classify", h.Classify)
}

type chatRequest struct {
	PatientID string `json:"patient_id"`
	Message   string `json:"message"`
}

func (h *Handler) HandleChat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return cases.RespondError(c, cases.NewValidationFault("malformed JSON body"))
	}
	pid, err := uuid.Parse(req.PatientID)
	if err != nil {
		return cases.RespondError(c, cases.NewValidationFault("patient_id must be a UUID",
			cases.FieldError{Field: "patient_id", Message: "must be a UUID"}))
	}
	res, err := h.svc.HandleMessage(c.Request().Context(), ChatInput{
		PatientID: pid,
		Message:   req.Message,
	})
	if err != nil {
		return cases.RespondError(c, err)
	}
	status := http.StatusOK
	if res.CaseCreated {
		status = http.StatusCreated
	}
	return c.JSON(status, map[string]interface{}{
		"success": true,
		"data":    res,
	})
}

// Classify runs intent inference without creating a case; intended for
// client-side previews while the patient is still typing.
func (h *Handler) Classify(c echo.Context) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return cases.RespondError(c, cases.NewValidationFault("malformed JSON body"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    InferIntent(req.Message),
	})
}
