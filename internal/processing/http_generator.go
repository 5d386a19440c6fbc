package processing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTPGenerator calls an external summarisation endpoint and degrades to
// the deterministic stub on any failure. It never returns an error: the
// pipeline must produce a summary whether or not the external service is
// reachable.
type HTTPGenerator struct {
	endpoint string
	client   *http.Client
	stub     StubGenerator
	log      zerolog.Logger
}

func NewHTTPGenerator(endpoint string, timeout time.Duration, log zerolog.Logger) *HTTPGenerator {
	return &HTTPGenerator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

func (g *HTTPGenerator) Generate(ctx context.Context, snap CaseSnapshot) (*Summary, error) {
	if g.endpoint == "" {
		return g.stub.Generate(ctx, snap)
	}
	summary, err := g.call(ctx, snap)
	if err != nil {
		g.log.Warn().Err(err).
			Str("case_id", snap.CaseID.String()).
			Msg("external generator failed; using stub output")
		return g.stub.Generate(ctx, snap)
	}
	return summary, nil
}

func (g *HTTPGenerator) call(ctx context.Context, snap CaseSnapshot) (*Summary, error) {
	body, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call generator: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator returned status %d", resp.StatusCode)
	}

	var summary Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	if summary.StructuredSummary == "" {
		return nil, fmt.Errorf("generator returned an empty summary")
	}
	// The external service produced this output, whatever it self-reports.
	summary.AIGenerated = true
	if summary.UrgencyLevel == "" {
		summary.UrgencyLevel = snap.Priority
	}
	return &summary, nil
}
