package cases

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinicbridge/intake/internal/safety"
)

// ProcessingStatus tracks the asynchronous AI summary pipeline for a case.
// It is system-managed; clients observe it only through polling.
type ProcessingStatus string

const (
	ProcessingNotStarted ProcessingStatus = "NOT_STARTED"
	ProcessingPending    ProcessingStatus = "PENDING"
	ProcessingCompleted  ProcessingStatus = "COMPLETED"
	ProcessingFailed     ProcessingStatus = "FAILED"
)

// VitalSigns is the optional measurement block captured at intake.
type VitalSigns struct {
	Temperature   *float64 `json:"temperature,omitempty"`
	BloodPressure *string  `json:"blood_pressure,omitempty"`
	PulseRate     *int     `json:"pulse_rate,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
}

// Attachment is a document the patient supplied with the intake.
type Attachment struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	URL         *string `json:"url,omitempty"`
}

var validAttachmentTypes = map[string]bool{
	"LAB_REPORT": true, "PRESCRIPTION": true, "IMAGE": true, "OTHER": true,
}

// Case maps to the intake_case table. The status field governs which other
// fields may change; see the safety package for the transition graph and
// the editability policy.
type Case struct {
	ID                uuid.UUID        `db:"id" json:"id"`
	PatientID         uuid.UUID        `db:"patient_id" json:"patient_id"`
	Status            safety.Status    `db:"status" json:"status"`
	Priority          safety.Priority  `db:"priority" json:"priority"`
	ChiefComplaint    string           `db:"chief_complaint" json:"chief_complaint"`
	SymptomDuration   *string          `db:"symptom_duration" json:"symptom_duration,omitempty"`
	RawNotes          *string          `db:"raw_notes" json:"raw_notes,omitempty"`
	VitalSigns        *VitalSigns      `db:"vital_signs" json:"vital_signs,omitempty"`
	Attachments       []Attachment     `db:"attachments" json:"attachments,omitempty"`
	StructuredSummary *string          `db:"structured_summary" json:"structured_summary,omitempty"`
	ClinicalFlags     []string         `db:"clinical_flags" json:"clinical_flags,omitempty"`
	DoctorNotes       *string          `db:"doctor_notes" json:"doctor_notes,omitempty"`
	DoctorDecision    *string          `db:"doctor_decision" json:"doctor_decision,omitempty"`
	ReviewedBy        *string          `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt        *time.Time       `db:"reviewed_at" json:"reviewed_at,omitempty"`
	RecommendationID  *uuid.UUID       `db:"recommendation_id" json:"recommendation_id,omitempty"`
	ProcessingStatus  ProcessingStatus `db:"processing_status" json:"processing_status"`
	Version           int              `db:"version" json:"version"`
	CreatedAt         time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time        `db:"updated_at" json:"updated_at"`
}

// Meta is the computed view metadata attached to every case payload. It is
// never stored; it is recomputed from the current status on every read.
type Meta struct {
	AllowedTransitions []safety.Status `json:"allowed_transitions"`
	EditableFields     []string        `json:"editable_fields"`
	ReadOnlyFields     []string        `json:"read_only_fields"`
}

// View is a case plus its computed metadata, the shape returned to callers.
type View struct {
	*Case
	Meta Meta `json:"_meta"`
}

// NewView wraps a case with metadata derived from its current status.
func NewView(c *Case) *View {
	return &View{
		Case: c,
		Meta: Meta{
			AllowedTransitions: safety.AllowedTransitions(c.Status),
			EditableFields:     safety.EditableFields(c.Status),
			ReadOnlyFields:     safety.ReadOnlyFields(c.Status),
		},
	}
}

// Warning codes attached to successful submissions.
const (
	WarnEmergencyEscalation = "EMERGENCY_ESCALATION"
	WarnPrioritySuggestion  = "PRIORITY_SUGGESTION"
)

// Warning is a non-blocking advisory returned alongside a created case.
type Warning struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Triggers []string `json:"triggers,omitempty"`
}
