package entities

// ClinicalTrial is a study record from the clinical trials registry.
type ClinicalTrial struct {
	NCTID         string   `json:"nct_id"`
	Title         string   `json:"title"`
	Status        string   `json:"status"`
	Phase         string   `json:"phase,omitempty"`
	Conditions    []string `json:"conditions,omitempty"`
	Interventions []string `json:"interventions,omitempty"`
	BriefSummary  string   `json:"brief_summary,omitempty"`
}
