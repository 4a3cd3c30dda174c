package model

// RawEntry is a single feed item as handed over by the ingestion layer.
// Summary may contain HTML markup.
type RawEntry struct {
	Title   string
	Summary string
	Link    string
}

// ExtractedFields holds the structured facts pulled out of one RawEntry.
// Absent string fields are empty; Discount defaults to 0.
type ExtractedFields struct {
	ProductURL string
	ID         string
	Price      string // raw price text from the title, e.g. "$19.99"
	Discount   int
	Image      string
}

// Sentinels for fields the pipeline cannot determine from feed text alone.
const (
	UnknownPrice  = "$?"
	UnknownRating = "N/A"
)

// Deal is a curated, deduplicated, scored and categorized record derived
// from one raw feed entry. Field names are the downstream JSON contract.
type Deal struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	Price     string `json:"price"`
	Rating    string `json:"rating"`
	Reviews   string `json:"reviews"`
	URL       string `json:"url"`
	Category  string `json:"category"`
	Timestamp int64  `json:"timestamp"`
	Score     int    `json:"score"`
	Discount  int    `json:"discount"`
}

// Collection is the output envelope written for downstream consumers.
type Collection struct {
	Deals []Deal `json:"deals"`
}
