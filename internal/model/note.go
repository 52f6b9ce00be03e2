package model

// Note is a vault entry: a saved strategy, idea or screener snapshot.
type Note struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
	Source   string `json:"source"`
	Date     string `json:"date"` // YYYY-MM-DD
}

// Note categories
const (
	CategoryStrategy   = "Strategy"
	CategoryIndicator  = "Indicator"
	CategoryRule       = "Rule"
	CategoryConcept    = "Concept"
	CategoryPattern    = "Pattern"
	CategoryIdea       = "Idea"
	CategoryPDFExtract = "PDF Extract"
)
