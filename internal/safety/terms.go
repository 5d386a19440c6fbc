package safety

import "strings"

// prohibitedDiagnosisTerms are phrases that assert diagnostic certainty.
// Doctor-facing and patient-facing text claiming a diagnosis is rejected
// before persistence; this is a regulatory guardrail, not a style check.
var prohibitedDiagnosisTerms = []string{
	"diagnosed with",
	"you have",
	"definitely have",
	"confirmed diagnosis",
	"suffering from",
	"this is certainly",
	"test confirms",
}

// prohibitedMedicalClaims are phrases that prescribe treatment or dosage.
var prohibitedMedicalClaims = []string{
	"prescribe",
	"prescription for",
	"take this medicine",
	"dosage of",
	"mg twice daily",
	"mg once daily",
	"guaranteed cure",
	"will cure",
	"stop taking your",
}

// emergencyKeywords trigger immediate priority escalation when they appear
// in patient-reported text.
var emergencyKeywords = []string{
	"chest pain",
	"difficulty breathing",
	"cannot breathe",
	"can't breathe",
	"severe bleeding",
	"unconscious",
	"stroke",
	"seizure",
	"anaphylaxis",
	"heart attack",
	"suicidal",
	"severe allergic reaction",
	"paralysis",
}

// elevatedKeywords suggest an ELEVATED priority without being emergencies.
var elevatedKeywords = []string{
	"severe",
	"worsening",
	"high fever",
	"unbearable",
	"blood in",
	"persistent vomiting",
	"dehydration",
}

// EmergencyResult is the outcome of an emergency keyword scan.
type EmergencyResult struct {
	IsEmergency bool     `json:"is_emergency"`
	Triggers    []string `json:"triggers,omitempty"`
}

// CheckEmergency scans text for emergency keywords and returns every match,
// in keyword table order, so callers can surface all triggers for audit.
func CheckEmergency(text string) EmergencyResult {
	lower := strings.ToLower(text)
	var triggers []string
	for _, kw := range emergencyKeywords {
		if strings.Contains(lower, kw) {
			triggers = append(triggers, kw)
		}
	}
	return EmergencyResult{IsEmergency: len(triggers) > 0, Triggers: triggers}
}

// SafetyResult is the outcome of a prohibited-term scan.
type SafetyResult struct {
	Safe       bool     `json:"safe"`
	Violations []string `json:"violations,omitempty"`
}

// ValidateContentSafety scans text against both prohibited term lists,
// case-insensitively, and returns every violated term.
func ValidateContentSafety(text string) SafetyResult {
	lower := strings.ToLower(text)
	var violations []string
	for _, term := range prohibitedDiagnosisTerms {
		if strings.Contains(lower, term) {
			violations = append(violations, term)
		}
	}
	for _, term := range prohibitedMedicalClaims {
		if strings.Contains(lower, term) {
			violations = append(violations, term)
		}
	}
	return SafetyResult{Safe: len(violations) == 0, Violations: violations}
}

// SuggestPriority derives a triage tier from patient-reported text. Any
// emergency keyword wins; elevated keywords come next; everything else is
// routine.
func SuggestPriority(text string) Priority {
	if CheckEmergency(text).IsEmergency {
		return PriorityUrgent
	}
	lower := strings.ToLower(text)
	for _, kw := range elevatedKeywords {
		if strings.Contains(lower, kw) {
			return PriorityElevated
		}
	}
	return PriorityRoutine
}
