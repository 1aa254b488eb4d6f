package domain

const (
	SearchSourceAgent    = "agent"
	SearchSourceDatabase = "database"
)

type SearchHit struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Excerpt *string `json:"excerpt"`
	Slug    string  `json:"slug"`
	Score   float64 `json:"score,omitempty"`
}

type SearchResult struct {
	Articles []SearchHit `json:"articles"`
	Query    string      `json:"query"`
	Source   string      `json:"source"`
}
