package entities

// DiseaseSummary is a condition summary assembled from an upstream
// disease knowledge base lookup.
type DiseaseSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	MondoID     string   `json:"mondo_id,omitempty"`
	Definition  string   `json:"definition,omitempty"`
	Synonyms    []string `json:"synonyms,omitempty"`
	Xrefs       []string `json:"xrefs,omitempty"`
	SourceScore float64  `json:"source_score,omitempty"`
}
