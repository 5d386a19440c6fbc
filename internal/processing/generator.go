// Package processing runs the asynchronous summary pipeline: a claimed case
// is snapshotted, handed to a generator, and the derived summary plus a
// recommendation are written back with an observable status at every step.
package processing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/clinicbridge/intake/internal/domain/cases"
	"github.com/clinicbridge/intake/internal/domain/recommendation"
	"github.com/clinicbridge/intake/internal/safety"
)

// CaseSnapshot is the generator input: a point-in-time copy of the fields a
// summary may be derived from. Generators never see live case state.
type CaseSnapshot struct {
	CaseID          uuid.UUID         `json:"case_id"`
	PatientID       uuid.UUID         `json:"patient_id"`
	ChiefComplaint  string            `json:"chief_complaint"`
	SymptomDuration *string           `json:"symptom_duration,omitempty"`
	RawNotes        *string           `json:"raw_notes,omitempty"`
	VitalSigns      *cases.VitalSigns `json:"vital_signs,omitempty"`
	Priority        safety.Priority   `json:"priority"`
	PatientAge      int               `json:"patient_age,omitempty"`
	Prakriti        *string           `json:"prakriti,omitempty"`
}

// Summary is the generator output: the derived case fields plus the content
// of the recommendation to be created. UrgencyLevel, SuggestedFollowUp,
// ConfidenceScore, and AIGenerated are advisory metadata persisted on the
// recommendation; AIGenerated is false whenever the stub produced the output.
type Summary struct {
	StructuredSummary string                      `json:"structured_summary"`
	ClinicalFlags     []string                    `json:"clinical_flags,omitempty"`
	Allopathy         recommendation.Track        `json:"allopathy"`
	Ayurveda          recommendation.Track        `json:"ayurveda"`
	Contraindications []string                    `json:"contraindications,omitempty"`
	RedFlags          []string                    `json:"red_flags,omitempty"`
	CostEstimate      recommendation.CostEstimate `json:"cost_estimate"`
	UrgencyLevel      safety.Priority             `json:"urgency_level"`
	SuggestedFollowUp string                      `json:"suggested_follow_up"`
	ConfidenceScore   int                         `json:"confidence_score"`
	AIGenerated       bool                        `json:"ai_generated"`
}

// Generator produces a summary for a case snapshot.
type Generator interface {
	Generate(ctx context.Context, snap CaseSnapshot) (*Summary, error)
}

// StubGenerator derives a summary from the snapshot alone. Its output is
// deterministic: the same snapshot always yields the same summary, which is
// what makes it a safe fallback when the external generator is unavailable.
type StubGenerator struct{}

func (StubGenerator) Generate(_ context.Context, snap CaseSnapshot) (*Summary, error) {
	s := &Summary{
		StructuredSummary: buildSummaryText(snap),
		ClinicalFlags:     buildClinicalFlags(snap),
		Allopathy: recommendation.Track{
			Approach: "allopathy",
			Suggestions: []string{
				"schedule an in-person consultation with a general practitioner",
				"maintain hydration and rest until reviewed",
				"record symptom changes daily for the consultation",
			},
			Guidance: "Advisory only; a licensed practitioner must confirm any treatment.",
		},
		Ayurveda:          ayurvedaTrack(snap.Prakriti),
		Contraindications: stubContraindications(snap),
		RedFlags:          redFlags(snap),
		CostEstimate:      recommendation.CostEstimate{Min: 300, Max: 800, Currency: "INR"},
		UrgencyLevel:      snap.Priority,
		SuggestedFollowUp: followUpAdvice(snap.Priority),
		ConfidenceScore:   stubConfidence,
		AIGenerated:       false,
	}
	return s, nil
}

// stubConfidence marks template-derived output; the stub has no model to
// score itself against.
const stubConfidence = 40

func followUpAdvice(p safety.Priority) string {
	switch p {
	case safety.PriorityUrgent:
		return "Consult a practitioner within 24 hours; go to emergency care if symptoms worsen."
	case safety.PriorityElevated:
		return "Schedule a consultation within 2-3 days and monitor symptoms daily."
	default:
		return "Schedule a routine consultation within the week."
	}
}

func stubContraindications(snap CaseSnapshot) []string {
	out := []string{"do not start or stop any medication without practitioner review"}
	if v := snap.VitalSigns; v != nil && v.Temperature != nil && *v.Temperature >= 100.4 {
		out = append(out, "avoid repeated antipyretic dosing before the consultation")
	}
	return out
}

func buildSummaryText(snap CaseSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Patient reports: %s.", strings.TrimSuffix(snap.ChiefComplaint, "."))
	if snap.SymptomDuration != nil && *snap.SymptomDuration != "" {
		fmt.Fprintf(&b, " Duration: %s.", *snap.SymptomDuration)
	}
	if v := snap.VitalSigns; v != nil {
		var parts []string
		if v.Temperature != nil {
			parts = append(parts, fmt.Sprintf("temperature %.1f°F", *v.Temperature))
		}
		if v.BloodPressure != nil {
			parts = append(parts, "blood pressure "+*v.BloodPressure)
		}
		if v.PulseRate != nil {
			parts = append(parts, fmt.Sprintf("pulse %d bpm", *v.PulseRate))
		}
		if len(parts) > 0 {
			fmt.Fprintf(&b, " Vitals: %s.", strings.Join(parts, ", "))
		}
	}
	fmt.Fprintf(&b, " Triage priority: %s.", snap.Priority)
	return b.String()
}

func buildClinicalFlags(snap CaseSnapshot) []string {
	var flags []string
	text := snap.ChiefComplaint
	if snap.RawNotes != nil {
		text += " " + *snap.RawNotes
	}
	for _, trigger := range safety.CheckEmergency(text).Triggers {
		flags = append(flags, "emergency:"+trigger)
	}
	if snap.Priority != safety.PriorityRoutine {
		flags = append(flags, "priority:"+strings.ToLower(string(snap.Priority)))
	}
	if v := snap.VitalSigns; v != nil {
		if v.Temperature != nil && *v.Temperature >= 100.4 {
			flags = append(flags, "fever")
		}
		if v.PulseRate != nil && *v.PulseRate > 100 {
			flags = append(flags, "tachycardia")
		}
	}
	return flags
}

// ayurvedaTracks are the stub's advisory templates, keyed by prakriti.
var ayurvedaTracks = map[string]recommendation.Track{
	"VATA": {
		Approach: "ayurveda",
		Suggestions: []string{
			"favour warm, regular meals and consistent sleep timing",
			"gentle abhyanga (oil massage) may ease restlessness",
		},
		Guidance: "Vata-pacifying routine pending practitioner review.",
	},
	"PITTA": {
		Approach: "ayurveda",
		Suggestions: []string{
			"favour cooling foods; avoid excessive spice and fermented items",
			"keep midday activity light until reviewed",
		},
		Guidance: "Pitta-pacifying routine pending practitioner review.",
	},
	"KAPHA": {
		Approach: "ayurveda",
		Suggestions: []string{
			"favour light, warm meals; avoid heavy or oily food",
			"light daily movement supports recovery",
		},
		Guidance: "Kapha-pacifying routine pending practitioner review.",
	},
}

func ayurvedaTrack(prakriti *string) recommendation.Track {
	if prakriti != nil {
		if t, ok := ayurvedaTracks[strings.ToUpper(*prakriti)]; ok {
			return t
		}
	}
	return recommendation.Track{
		Approach: "ayurveda",
		Suggestions: []string{
			"maintain a regular meal and sleep routine",
			"a practitioner can advise a constitution-specific regimen",
		},
		Guidance: "General routine pending practitioner review.",
	}
}

func redFlags(snap CaseSnapshot) []string {
	if snap.Priority != safety.PriorityUrgent {
		return nil
	}
	return []string{"urgent triage priority; do not wait for the scheduled review if symptoms worsen"}
}
