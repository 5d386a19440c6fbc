package recommendation

import (
	"time"

	"github.com/google/uuid"
)

// Disclaimer is the fixed advisory notice attached to every persisted
// recommendation. It is non-removable; the service refuses to store a
// recommendation without it.
const Disclaimer = "This information is educational guidance generated to support " +
	"a licensed practitioner's review. It is not a diagnosis, not a prescription, " +
	"and not a substitute for an in-person consultation. Seek immediate medical " +
	"care for any emergency."

const maxSafetyItems = 10

// Track is one advisory track (allopathy or ayurveda). Tracks are
// independent; neither is authoritative.
type Track struct {
	Approach    string   `json:"approach"`
	Suggestions []string `json:"suggestions"`
	Guidance    string   `json:"guidance,omitempty"`
}

// CostEstimate is an indicative consultation cost range.
type CostEstimate struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// Recommendation maps to the recommendation table. Each recommendation is
// owned by exactly one case; a case blocks regeneration while its
// recommendation exists.
type Recommendation struct {
	ID                uuid.UUID    `db:"id" json:"id"`
	CaseID            uuid.UUID    `db:"case_id" json:"case_id"`
	Allopathy         Track        `db:"allopathy" json:"allopathy"`
	Ayurveda          Track        `db:"ayurveda" json:"ayurveda"`
	Contraindications []string     `db:"contraindications" json:"contraindications,omitempty"`
	RedFlags          []string     `db:"red_flags" json:"red_flags,omitempty"`
	CostEstimate      CostEstimate `db:"cost_estimate" json:"cost_estimate"`
	UrgencyLevel      string       `db:"urgency_level" json:"urgency_level,omitempty"`
	SuggestedFollowUp string       `db:"suggested_follow_up" json:"suggested_follow_up,omitempty"`
	ConfidenceScore   int          `db:"confidence_score" json:"confidence_score"`
	AIGenerated       bool         `db:"ai_generated" json:"ai_generated"`
	Disclaimer        string       `db:"disclaimer" json:"disclaimer"`
	CreatedAt         time.Time    `db:"created_at" json:"created_at"`
}
