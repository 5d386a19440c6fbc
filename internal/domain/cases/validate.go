package cases

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"

	"github.com/google/uuid"

	"github.com/clinicbridge/intake/internal/safety"
)

const (
	minComplaintLen = 5
	maxComplaintLen = 1000
	maxNotesLen     = 5000
	maxDecisionLen  = 2000
	minDecisionLen  = 5
	maxAttachments  = 10
)

var bloodPressurePattern = regexp.MustCompile(`^\d{2,3}/\d{2,3}$`)

// SubmitInput is the shape accepted by case creation.
type SubmitInput struct {
	PatientID       uuid.UUID       `json:"patient_id"`
	ChiefComplaint  string          `json:"chief_complaint"`
	SymptomDuration *string         `json:"symptom_duration,omitempty"`
	RawNotes        *string         `json:"raw_notes,omitempty"`
	VitalSigns      *VitalSigns     `json:"vital_signs,omitempty"`
	Attachments     []Attachment    `json:"attachments,omitempty"`
	Priority        safety.Priority `json:"priority,omitempty"`
}

func validateSubmit(in *SubmitInput) []FieldError {
	var errs []FieldError
	if in.PatientID == uuid.Nil {
		errs = append(errs, FieldError{"patient_id", "patient_id is required"})
	}
	if n := len(in.ChiefComplaint); n < minComplaintLen || n > maxComplaintLen {
		errs = append(errs, FieldError{"chief_complaint",
			fmt.Sprintf("must be between %d and %d characters", minComplaintLen, maxComplaintLen)})
	}
	if in.RawNotes != nil && len(*in.RawNotes) > maxNotesLen {
		errs = append(errs, FieldError{"raw_notes",
			fmt.Sprintf("must be at most %d characters", maxNotesLen)})
	}
	if in.Priority != "" && !safety.ValidPriority(in.Priority) {
		errs = append(errs, FieldError{"priority", "must be ROUTINE, ELEVATED, or URGENT"})
	}
	errs = append(errs, validateVitals(in.VitalSigns)...)
	errs = append(errs, validateAttachments(in.Attachments)...)
	return errs
}

func validateVitals(v *VitalSigns) []FieldError {
	if v == nil {
		return nil
	}
	var errs []FieldError
	if v.Temperature != nil && (*v.Temperature < 90 || *v.Temperature > 110) {
		errs = append(errs, FieldError{"vital_signs.temperature", "must be between 90 and 110 °F"})
	}
	if v.BloodPressure != nil && !bloodPressurePattern.MatchString(*v.BloodPressure) {
		errs = append(errs, FieldError{"vital_signs.blood_pressure", "must match systolic/diastolic, e.g. 120/80"})
	}
	if v.PulseRate != nil && (*v.PulseRate < 30 || *v.PulseRate > 250) {
		errs = append(errs, FieldError{"vital_signs.pulse_rate", "must be between 30 and 250"})
	}
	if v.Weight != nil && (*v.Weight < 1 || *v.Weight > 500) {
		errs = append(errs, FieldError{"vital_signs.weight", "must be between 1 and 500 kg"})
	}
	return errs
}

func validateAttachments(atts []Attachment) []FieldError {
	var errs []FieldError
	if len(atts) > maxAttachments {
		errs = append(errs, FieldError{"attachments",
			fmt.Sprintf("at most %d attachments allowed", maxAttachments)})
	}
	for i, a := range atts {
		if !validAttachmentTypes[a.Type] {
			errs = append(errs, FieldError{
				fmt.Sprintf("attachments[%d].type", i),
				"must be LAB_REPORT, PRESCRIPTION, IMAGE, or OTHER",
			})
		}
	}
	return errs
}

// UpdateInput is a partial case patch. Field presence is tracked from the
// raw JSON keys so the editability policy can be applied per field and
// unknown fields fail closed.
type UpdateInput struct {
	ChiefComplaint  *string          `json:"chief_complaint,omitempty"`
	SymptomDuration *string          `json:"symptom_duration,omitempty"`
	RawNotes        *string          `json:"raw_notes,omitempty"`
	VitalSigns      *VitalSigns      `json:"vital_signs,omitempty"`
	Attachments     *[]Attachment    `json:"attachments,omitempty"`
	DoctorNotes     *string          `json:"doctor_notes,omitempty"`
	DoctorDecision  *string          `json:"doctor_decision,omitempty"`
	ReviewedBy      *string          `json:"reviewed_by,omitempty"`
	Priority        *safety.Priority `json:"priority,omitempty"`

	present []string
}

// UnmarshalJSON records which keys appeared in the patch, sorted for
// deterministic error reporting.
func (u *UpdateInput) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	type plain UpdateInput
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*u = UpdateInput(p)
	u.present = make([]string, 0, len(raw))
	for k := range raw {
		u.present = append(u.present, k)
	}
	sort.Strings(u.present)
	return nil
}

// Fields returns the JSON keys present in the patch.
func (u *UpdateInput) Fields() []string { return u.present }

// SetFields overrides the present-key list; used by callers constructing a
// patch programmatically rather than from JSON.
func (u *UpdateInput) SetFields(fields []string) {
	u.present = append([]string(nil), fields...)
	sort.Strings(u.present)
}

func validateUpdate(in *UpdateInput) []FieldError {
	var errs []FieldError
	if in.ChiefComplaint != nil {
		if n := len(*in.ChiefComplaint); n < minComplaintLen || n > maxComplaintLen {
			errs = append(errs, FieldError{"chief_complaint",
				fmt.Sprintf("must be between %d and %d characters", minComplaintLen, maxComplaintLen)})
		}
	}
	if in.RawNotes != nil && len(*in.RawNotes) > maxNotesLen {
		errs = append(errs, FieldError{"raw_notes",
			fmt.Sprintf("must be at most %d characters", maxNotesLen)})
	}
	if in.DoctorNotes != nil && len(*in.DoctorNotes) > maxNotesLen {
		errs = append(errs, FieldError{"doctor_notes",
			fmt.Sprintf("must be at most %d characters", maxNotesLen)})
	}
	if in.DoctorDecision != nil && len(*in.DoctorDecision) > maxDecisionLen {
		errs = append(errs, FieldError{"doctor_decision",
			fmt.Sprintf("must be at most %d characters", maxDecisionLen)})
	}
	if in.Priority != nil && !safety.ValidPriority(*in.Priority) {
		errs = append(errs, FieldError{"priority", "must be ROUTINE, ELEVATED, or URGENT"})
	}
	errs = append(errs, validateVitals(in.VitalSigns)...)
	if in.Attachments != nil {
		errs = append(errs, validateAttachments(*in.Attachments)...)
	}
	return errs
}
