package entities

// ReadabilityReport is the result of scoring a piece of patient-facing text.
// It is computed fresh on every call and carries no identity.
type ReadabilityReport struct {
	FleschReadingEase  float64  `json:"flesch_reading_ease"`
	FleschKincaidGrade float64  `json:"flesch_kincaid_grade"`
	Sentences          int      `json:"sentences"`
	Words              int      `json:"words"`
	Syllables          int      `json:"syllables"`
	Suggestions        []string `json:"suggestions"`
}
