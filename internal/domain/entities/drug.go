package entities

// DrugLabel is a structured product label pulled from the FDA label corpus.
type DrugLabel struct {
	BrandName       string   `json:"brand_name"`
	GenericName     string   `json:"generic_name"`
	Manufacturer    string   `json:"manufacturer,omitempty"`
	Route           []string `json:"route,omitempty"`
	IndicationsText string   `json:"indications_text,omitempty"`
	WarningsText    string   `json:"warnings_text,omitempty"`
	DosageText      string   `json:"dosage_text,omitempty"`
}
