package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const googleCSEEndpoint = "https://www.googleapis.com/customsearch/v1"

// GoogleCSEProvider queries the Google Custom Search JSON API directly.
type GoogleCSEProvider struct {
	APIKey   string
	CX       string
	Client   *http.Client
	endpoint string
}

var _ SearchProvider = &GoogleCSEProvider{}

func NewGoogleCSEProvider(apiKey, cx string) *GoogleCSEProvider {
	return &GoogleCSEProvider{
		APIKey:   apiKey,
		CX:       cx,
		Client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: googleCSEEndpoint,
	}
}

type googleCSEItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type googleCSEResponse struct {
	Items []googleCSEItem `json:"items"`
}

func (g *GoogleCSEProvider) Name() string {
	return "google_cse"
}

func (g *GoogleCSEProvider) Search(ctx context.Context, query string, opts Options) ([]Result, error) {
	// CSE caps num at 10 per request
	num := opts.MaxResults
	if num <= 0 || num > 10 {
		num = 10
	}

	params := url.Values{}
	params.Set("key", g.APIKey)
	params.Set("cx", g.CX)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(num))
	if opts.CountryCode != "" {
		params.Set("gl", opts.CountryCode)
	}
	if opts.Language != "" {
		params.Set("lr", "lang_"+opts.Language)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google cse request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google cse error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed googleCSEResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	results := make([]Result, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		results = append(results, Result{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
			Source:  g.Name(),
		})
	}

	return results, nil
}
