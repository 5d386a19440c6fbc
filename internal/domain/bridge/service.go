package bridge

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinicbridge/intake/internal/domain/cases"
	"github.com/clinicbridge/intake/internal/safety"
)

// ChatInput is one inbound patient message.
type ChatInput struct {
	PatientID uuid.UUID `json:"patient_id"`
	Message   string    `json:"message"`
}

// ChatResult reports what the bridge did with a message. Case is nil when
// confidence stayed below the auto-create threshold and no emergency was
// detected.
type ChatResult struct {
	Intent      Intent                 `json:"intent"`
	Emergency   safety.EmergencyResult `json:"emergency"`
	CaseCreated bool                   `json:"case_created"`
	Case        *cases.View            `json:"case,omitempty"`
	Warnings    []cases.Warning        `json:"warnings,omitempty"`
}

// Service turns chat messages into intake cases.
type Service struct {
	cases *cases.Service
	log   zerolog.Logger
}

func NewService(cs *cases.Service, log zerolog.Logger) *Service {
	return &Service{cases: cs, log: log}
}

// HandleMessage classifies a message and, when it clears the confidence
// threshold or contains an emergency trigger, opens a case on the patient's
// behalf. Emergencies always create a case regardless of confidence.
func (s *Service) HandleMessage(ctx context.Context, in ChatInput) (*ChatResult, error) {
	msg := safety.Sanitize(in.Message)
	if msg == "" {
		return nil, cases.NewValidationFault("message must not be empty",
			cases.FieldError{Field: "message", Message: "message must not be empty"})
	}

	res := &ChatResult{
		Intent:    InferIntent(msg),
		Emergency: safety.CheckEmergency(msg),
	}
	if res.Intent.Confidence < autoCreateThreshold && !res.Emergency.IsEmergency {
		return res, nil
	}

	view, warnings, err := s.cases.SubmitCase(ctx, &cases.SubmitInput{
		PatientID:      in.PatientID,
		ChiefComplaint: composeComplaint(res.Intent, msg),
		RawNotes:       &msg,
		Priority:       safety.SuggestPriority(msg),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("case_id", view.ID.String()).
		Str("category", res.Intent.Category).
		Int("confidence", res.Intent.Confidence).
		Bool("emergency", res.Emergency.IsEmergency).
		Msg("case auto-created from chat")

	res.CaseCreated = true
	res.Case = view
	res.Warnings = warnings
	return res, nil
}

// composeComplaint carries the patient's own words into the case, prefixed
// with the inferred category so reviewers see the routing at a glance. The
// raw words must survive verbatim: downstream safety scans re-run on the
// chief complaint.
func composeComplaint(intent Intent, msg string) string {
	if intent.Category == "unknown" {
		return msg
	}
	return fmt.Sprintf("[%s] %s", strings.ToUpper(intent.Category), msg)
}
