package processing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinicbridge/intake/internal/domain/cases"
	"github.com/clinicbridge/intake/internal/domain/recommendation"
)

// runTimeout bounds one generation run end to end, including the write-back.
const runTimeout = 60 * time.Second

// Pipeline owns the asynchronous generation lifecycle for cases. The claim
// in cases.Service.BeginProcessing makes each run exclusive; the pipeline
// itself only sequences snapshot, generation, and write-back.
type Pipeline struct {
	cases    *cases.Service
	recs     *recommendation.Service
	patients cases.PatientLookup
	gen      Generator
	log      zerolog.Logger

	wg sync.WaitGroup
}

func NewPipeline(cs *cases.Service, recs *recommendation.Service, patients cases.PatientLookup, gen Generator, log zerolog.Logger) *Pipeline {
	return &Pipeline{cases: cs, recs: recs, patients: patients, gen: gen, log: log}
}

// StatusView is the poll response for a case's processing state. Summary
// fields appear only once processing has completed.
type StatusView struct {
	CaseID            uuid.UUID              `json:"case_id"`
	Status            cases.ProcessingStatus `json:"status"`
	StructuredSummary *string                `json:"structured_summary,omitempty"`
	ClinicalFlags     []string               `json:"clinical_flags,omitempty"`
	RecommendationID  *uuid.UUID             `json:"recommendation_id,omitempty"`
}

// Trigger claims the case for processing and starts a generation run in the
// background. A case that is PENDING, COMPLETED, or already linked to a
// recommendation rejects the trigger; FAILED may be retried.
func (p *Pipeline) Trigger(ctx context.Context, caseID uuid.UUID) (*StatusView, error) {
	c, err := p.cases.BeginProcessing(ctx, caseID)
	if err != nil {
		return nil, err
	}

	snap := p.snapshot(ctx, c)
	p.wg.Add(1)
	go p.run(snap)

	p.log.Info().Str("case_id", caseID.String()).Msg("processing started")
	return &StatusView{CaseID: caseID, Status: cases.ProcessingPending}, nil
}

// GetStatus returns the current processing state of a case.
func (p *Pipeline) GetStatus(ctx context.Context, caseID uuid.UUID) (*StatusView, error) {
	view, err := p.cases.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	sv := &StatusView{
		CaseID:           caseID,
		Status:           view.ProcessingStatus,
		RecommendationID: view.RecommendationID,
	}
	if view.ProcessingStatus == cases.ProcessingCompleted {
		sv.StructuredSummary = view.StructuredSummary
		sv.ClinicalFlags = view.ClinicalFlags
	}
	return sv, nil
}

// Wait blocks until all in-flight runs finish; called on server shutdown so
// claimed cases are not abandoned in PENDING.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

func (p *Pipeline) snapshot(ctx context.Context, c *cases.Case) CaseSnapshot {
	snap := CaseSnapshot{
		CaseID:          c.ID,
		PatientID:       c.PatientID,
		ChiefComplaint:  c.ChiefComplaint,
		SymptomDuration: c.SymptomDuration,
		RawNotes:        c.RawNotes,
		VitalSigns:      c.VitalSigns,
		Priority:        c.Priority,
	}
	// Demographics enrich the summary but are not required for it.
	if pat, err := p.patients.GetByID(ctx, c.PatientID); err == nil {
		snap.PatientAge = pat.Age
		snap.Prakriti = pat.Prakriti
	}
	return snap
}

// run executes one generation against a detached context: the triggering
// request has already returned by the time generation finishes.
func (p *Pipeline) run(snap CaseSnapshot) {
	defer p.wg.Done()
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	log := p.log.With().Str("case_id", snap.CaseID.String()).Logger()

	summary, err := p.gen.Generate(ctx, snap)
	if err != nil {
		log.Error().Err(err).Msg("summary generation failed")
		p.fail(ctx, snap.CaseID)
		return
	}

	rec := &recommendation.Recommendation{
		CaseID:            snap.CaseID,
		Allopathy:         summary.Allopathy,
		Ayurveda:          summary.Ayurveda,
		Contraindications: summary.Contraindications,
		RedFlags:          summary.RedFlags,
		CostEstimate:      summary.CostEstimate,
		UrgencyLevel:      string(summary.UrgencyLevel),
		SuggestedFollowUp: summary.SuggestedFollowUp,
		ConfidenceScore:   summary.ConfidenceScore,
		AIGenerated:       summary.AIGenerated,
	}
	if err := p.recs.Create(ctx, rec); err != nil {
		log.Error().Err(err).Msg("recommendation creation failed")
		p.fail(ctx, snap.CaseID)
		return
	}

	if err := p.cases.FinishProcessing(ctx, snap.CaseID, summary.StructuredSummary, summary.ClinicalFlags, rec.ID); err != nil {
		log.Error().Err(err).Msg("processing write-back failed")
		p.fail(ctx, snap.CaseID)
		return
	}
	log.Info().Str("recommendation_id", rec.ID.String()).Msg("processing completed")
}

func (p *Pipeline) fail(ctx context.Context, caseID uuid.UUID) {
	if err := p.cases.FailProcessing(ctx, caseID); err != nil {
		p.log.Error().Err(err).Str("case_id", caseID.String()).Msg("could not record processing failure")
	}
}
