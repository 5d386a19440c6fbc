package cases

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicbridge/intake/internal/platform/auth"
	"github.com/clinicbridge/intake/internal/safety"
	"github.com/clinicbridge/intake/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/cases", h.SubmitCase)
	api.GET("/cases", h.ListCases)
	api.GET("/cases/queue", h.ListCases)
	api.GET("/cases/stats", h.GetQueueStats)
	api.GET("/cases/:id", h.GetCase)
	api.PATCH("/cases/:id", h.UpdateCase)
	api.POST("/cases/:id/submit-for-review", h.SubmitForReview)

	doctor := api.Group("", auth.RequireRole("doctor"))
	doctor.POST("/cases/:id/review", h.MarkAsReviewed)
	doctor.POST("/cases/:id/close", h.CloseCase)
}

// envelope is the tagged result returned by every case endpoint.
type envelope struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Error    ErrorKind   `json:"error,omitempty"`
	Message  string      `json:"message,omitempty"`
	Details  interface{} `json:"details,omitempty"`
}

func ok(c echo.Context, status int, data interface{}, warnings []Warning) error {
	return c.JSON(status, envelope{Success: true, Data: data, Warnings: warnings})
}

// RespondError writes the envelope for a failed operation; shared by every
// handler that surfaces case-domain faults.
func RespondError(c echo.Context, err error) error {
	f := AsFault(err)
	status := http.StatusInternalServerError
	switch f.Kind {
	case KindValidation:
		status = http.StatusBadRequest
	case KindNotFound:
		status = http.StatusNotFound
	case KindInvalidState:
		status = http.StatusConflict
	case KindForbidden:
		status = http.StatusForbidden
	case KindSafetyViolation:
		status = http.StatusUnprocessableEntity
	}
	resp := envelope{Success: false, Error: f.Kind, Message: f.Message, Details: f.Details}
	if f.Kind == KindDatabase {
		// Storage faults are opaque at the boundary.
		resp.Details = nil
	}
	return c.JSON(status, resp)
}

func (h *Handler) SubmitCase(c echo.Context) error {
	var in SubmitInput
	if err := c.Bind(&in); err != nil {
		return RespondError(c, validationFault([]FieldError{{Field: "body", Message: "malformed JSON body"}}))
	}
	view, warnings, err := h.svc.SubmitCase(c.Request().Context(), &in)
	if err != nil {
		return RespondError(c, err)
	}
	return ok(c, http.StatusCreated, view, warnings)
}

func (h *Handler) GetCase(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return RespondError(c, notFoundFault("case"))
	}
	view, err := h.svc.GetCase(c.Request().Context(), id)
	if err != nil {
		return RespondError(c, err)
	}
	return ok(c, http.StatusOK, view, nil)
}

func (h *Handler) ListCases(c echo.Context) error {
	pg := pagination.FromContext(c)
	var f Filter
	if v := c.QueryParam("patient_id"); v != "" {
		pid, err := uuid.Parse(v)
		if err != nil {
			return RespondError(c, validationFault([]FieldError{{Field: "patient_id", Message: "must be a UUID"}}))
		}
		f.PatientID = &pid
	}
	if v := c.QueryParam("status"); v != "" {
		st := safety.Status(v)
		if !safety.ValidStatus(st) {
			return RespondError(c, validationFault([]FieldError{{Field: "status", Message: "unknown status"}}))
		}
		f.Status = &st
	}
	if v := c.QueryParam("priority"); v != "" {
		p := safety.Priority(v)
		if !safety.ValidPriority(p) {
			return RespondError(c, validationFault([]FieldError{{Field: "priority", Message: "unknown priority"}}))
		}
		f.Priority = &p
	}
	views, total, err := h.svc.ListCases(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return RespondError(c, err)
	}
	return ok(c, http.StatusOK, pagination.NewResponse(views, total, pg.Limit, pg.Offset), nil)
}

func (h *Handler) UpdateCase(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return RespondError(c, notFoundFault("case"))
	}
	var patch UpdateInput
	if err := c.Bind(&patch); err != nil {
		return RespondError(c, validationFault([]FieldError{{Field: "body", Message: "malformed JSON body"}}))
	}
	if f := doctorFieldGuard(c, &patch); f != nil {
		return RespondError(c, f)
	}
	view, err := h.svc.UpdateCase(c.Request().Context(), id, &patch)
	if err != nil {
		return RespondError(c, err)
	}
	return ok(c, http.StatusOK, view, nil)
}

// doctorFieldGuard rejects a patch touching doctor-only fields unless the
// caller holds the doctor role.
func doctorFieldGuard(c echo.Context, patch *UpdateInput) *Fault {
	var blocked []string
	for _, field := range patch.Fields() {
		if safety.IsDoctorField(field) {
			blocked = append(blocked, field)
		}
	}
	if len(blocked) == 0 || auth.HasRole(c.Request().Context(), "doctor") {
		return nil
	}
	return &Fault{
		Kind:    KindForbidden,
		Message: "doctor fields require the doctor role",
		Details: map[string]interface{}{"doctor_fields": blocked},
	}
}

func (h *Handler) SubmitForReview(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return RespondError(c, notFoundFault("case"))
	}
	view, err := h.svc.SubmitForReview(c.Request().Context(), id)
	if err != nil {
		return RespondError(c, err)
	}
	return ok(c, http.StatusOK, view, nil)
}

func (h *Handler) MarkAsReviewed(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return RespondError(c, notFoundFault("case"))
	}
	var body struct {
		ReviewedBy string `json:"reviewed_by"`
	}
	if err := c.Bind(&body); err != nil {
		return RespondError(c, validationFault([]FieldError{{Field: "body", Message: "malformed JSON body"}}))
	}
	view, err := h.svc.MarkAsReviewed(c.Request().Context(), id, body.ReviewedBy)
	if err != nil {
		return RespondError(c, err)
	}
	return ok(c, http.StatusOK, view, nil)
}

func (h *Handler) CloseCase(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return RespondError(c, notFoundFault("case"))
	}
	var body struct {
		Decision string `json:"decision"`
	}
	if err := c.Bind(&body); err != nil {
		return RespondError(c, validationFault([]FieldError{{Field: "body", Message: "malformed JSON body"}}))
	}
	view, err := h.svc.CloseCase(c.Request().Context(), id, body.Decision)
	if err != nil {
		return RespondError(c, err)
	}
	return ok(c, http.StatusOK, view, nil)
}

func (h *Handler) GetQueueStats(c echo.Context) error {
	stats, err := h.svc.GetQueueStats(c.Request().Context())
	if err != nil {
		return RespondError(c, err)
	}
	return ok(c, http.StatusOK, stats, nil)
}
