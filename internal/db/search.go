package db

// TextQuery is the input for full-text search.
type TextQuery struct {
	IndexName    string
	Field        string // text field to match against
	Query        string // raw user text; drivers tokenize it the way they tokenize documents
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit, ordered by engine relevance.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
