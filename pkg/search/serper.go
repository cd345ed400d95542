package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const serperEndpoint = "https://google.serper.dev/search"

// SerperProvider queries Google results through the serper.dev API.
// First in the fallback order when a key is configured.
type SerperProvider struct {
	APIKey   string
	Client   *http.Client
	endpoint string
}

var _ SearchProvider = &SerperProvider{}

func NewSerperProvider(apiKey string) *SerperProvider {
	return &SerperProvider{
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: serperEndpoint,
	}
}

type serperRequest struct {
	Query    string `json:"q"`
	Country  string `json:"gl,omitempty"`
	Language string `json:"hl,omitempty"`
	Num      int    `json:"num,omitempty"`
}

type serperOrganic struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type serperResponse struct {
	Organic []serperOrganic `json:"organic"`
}

func (s *SerperProvider) Name() string {
	return "serper"
}

func (s *SerperProvider) Search(ctx context.Context, query string, opts Options) ([]Result, error) {
	payload := serperRequest{
		Query:    query,
		Country:  opts.CountryCode,
		Language: opts.Language,
		Num:      opts.MaxResults,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.endpoint, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-KEY", s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed serperResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	results := make([]Result, 0, len(parsed.Organic))
	for _, o := range parsed.Organic {
		results = append(results, Result{
			Title:   o.Title,
			URL:     o.Link,
			Snippet: o.Snippet,
			Source:  s.Name(),
		})
	}

	return results, nil
}
