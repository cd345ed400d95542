package search

import "context"

// Result is a single web research hit, normalized across engines.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"` // engine that produced the hit
}

// Options narrows a query to a market/language.
type Options struct {
	MaxResults  int
	CountryCode string
	Language    string
}

// SearchProvider defines the contract for one search engine backend.
type SearchProvider interface {
	Name() string
	Search(ctx context.Context, query string, opts Options) ([]Result, error)
}
