package entities

import "strings"

// SBARReport is a clinical handoff summary in the standard
// Situation / Background / Assessment / Recommendation structure.
type SBARReport struct {
	Situation      string `json:"situation"`
	Background     string `json:"background"`
	Assessment     string `json:"assessment"`
	Recommendation string `json:"recommendation"`

	// RawText holds the original model output so nothing is lost when
	// the structured parse only partially matches.
	RawText string `json:"raw_text,omitempty"`

	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`

	// Readability scores the generated text so callers can judge whether
	// it is suitable for patient-facing use.
	Readability *ReadabilityReport `json:"readability,omitempty"`
}

// CombinedText joins the populated sections into one block of prose,
// suitable for readability scoring. Empty when no section was parsed.
func (r *SBARReport) CombinedText() string {
	sections := make([]string, 0, 4)
	for _, s := range []string{r.Situation, r.Background, r.Assessment, r.Recommendation} {
		if s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n\n")
}
