package entities

import (
	"time"
)

// ReferenceStatus is the lifecycle state of a disease reference entry.
//
// Entries start as slim reference-tier candidates. Lookup traffic moves a
// tracking entry to eligible once it crosses the promotion threshold, and an
// explicit promote call publishes it into the full library tier. Retired is
// terminal from every state.
type ReferenceStatus string

const (
	StatusCandidate ReferenceStatus = "candidate"
	StatusTracking  ReferenceStatus = "tracking"
	StatusEligible  ReferenceStatus = "eligible"
	StatusPromoted  ReferenceStatus = "promoted"
	StatusRetired   ReferenceStatus = "retired"
)

// DiseaseReference is an entry in the two-tier diagnosis library.
type DiseaseReference struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	MondoID     string          `json:"mondo_id" db:"mondo_id"`
	ICD10Code   string          `json:"icd10_code" db:"icd10_code"`
	Summary     string          `json:"summary" db:"summary"`
	Status      ReferenceStatus `json:"status" db:"status"`
	SearchCount int             `json:"search_count" db:"search_count"`
	PromotedAt  *time.Time      `json:"promoted_at,omitempty" db:"promoted_at"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// InLibrary reports whether the entry has reached the full library tier.
func (r *DiseaseReference) InLibrary() bool {
	return r.Status == StatusPromoted
}
