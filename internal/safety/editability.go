package safety

// Field category tables for the editability policy. Categories are checked
// in precedence order: immutable, system-managed, pre-review-only,
// doctor-only, then priority. Unknown fields are never editable.
var (
	immutableFields = []string{"id", "patient_id", "created_at"}

	systemManagedFields = []string{
		"updated_at", "structured_summary", "clinical_flags",
		"recommendation_id", "processing_status", "version",
	}

	preReviewFields = []string{
		"chief_complaint", "symptom_duration", "raw_notes",
		"vital_signs", "attachments",
	}

	doctorFields = []string{"doctor_notes", "doctor_decision", "reviewed_by"}
)

// IsDoctorField reports whether the named field belongs to the doctor-only
// group, writable only by callers holding the doctor role.
func IsDoctorField(field string) bool {
	return contains(doctorFields, field)
}

// Editability is the verdict for a single field at a given status.
type Editability struct {
	Editable bool   `json:"editable"`
	Reason   string `json:"reason,omitempty"`
}

// FieldEditable decides whether a named case field may be mutated while the
// case is in the given status. The first matching category wins.
func FieldEditable(field string, status Status) Editability {
	if contains(immutableFields, field) {
		return Editability{Reason: "field is immutable"}
	}
	if contains(systemManagedFields, field) {
		return Editability{Reason: "field is system-managed"}
	}
	if contains(preReviewFields, field) {
		if status == StatusDraft {
			return Editability{Editable: true}
		}
		return Editability{Reason: "clinical input is locked once submitted for review"}
	}
	if contains(doctorFields, field) {
		switch status {
		case StatusDraft:
			return Editability{Reason: "doctor fields are not writable before review"}
		case StatusClosed:
			return Editability{Reason: "case is closed"}
		default:
			return Editability{Editable: true}
		}
	}
	if field == "priority" {
		if status == StatusClosed {
			return Editability{Reason: "case is closed"}
		}
		return Editability{Editable: true}
	}
	return Editability{Reason: "unknown field"}
}

// EditableFields returns every known field that is editable at the given
// status, in a stable order.
func EditableFields(status Status) []string {
	var out []string
	for _, f := range knownFields() {
		if FieldEditable(f, status).Editable {
			out = append(out, f)
		}
	}
	return out
}

// ReadOnlyFields returns every known field that is not editable at the
// given status, in a stable order.
func ReadOnlyFields(status Status) []string {
	var out []string
	for _, f := range knownFields() {
		if !FieldEditable(f, status).Editable {
			out = append(out, f)
		}
	}
	return out
}

func knownFields() []string {
	fields := make([]string, 0, len(immutableFields)+len(systemManagedFields)+
		len(preReviewFields)+len(doctorFields)+1)
	fields = append(fields, immutableFields...)
	fields = append(fields, systemManagedFields...)
	fields = append(fields, preReviewFields...)
	fields = append(fields, doctorFields...)
	fields = append(fields, "priority")
	return fields
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
