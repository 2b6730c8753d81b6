package entities

// HealthTopic is a consumer-health education topic resolved from a
// diagnosis or medication code.
type HealthTopic struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary,omitempty"`
	Code    string `json:"code,omitempty"`
	System  string `json:"system,omitempty"`
}
