package entities

// Article is a literature citation from the PubMed index.
type Article struct {
	PMID     string   `json:"pmid"`
	Title    string   `json:"title"`
	Journal  string   `json:"journal,omitempty"`
	PubDate  string   `json:"pub_date,omitempty"`
	Authors  []string `json:"authors,omitempty"`
	DOI      string   `json:"doi,omitempty"`
	Abstract string   `json:"abstract,omitempty"`
}
