package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSerperSearchParsesOrganicResults(t *testing.T) {
	var gotKey string
	var gotBody serperRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		json.NewDecoder(r.Body).Decode(&gotBody)

		json.NewEncoder(w).Encode(serperResponse{Organic: []serperOrganic{
			{Title: "Mercado fitness", Link: "https://example.com/a", Snippet: "cresce 10%"},
			{Title: "Apps de treino", Link: "https://example.com/b", Snippet: "comparativo"},
		}})
	}))
	defer srv.Close()

	p := NewSerperProvider("test-key")
	p.endpoint = srv.URL

	results, err := p.Search(context.Background(), "mercado fitness brasil", Options{
		MaxResults:  5,
		CountryCode: "br",
		Language:    "pt-br",
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotKey != "test-key" {
		t.Errorf("X-API-KEY = %q", gotKey)
	}
	if gotBody.Query != "mercado fitness brasil" || gotBody.Country != "br" || gotBody.Num != 5 {
		t.Errorf("request body = %+v", gotBody)
	}

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].URL != "https://example.com/a" {
		t.Errorf("results[0].URL = %q", results[0].URL)
	}
	if results[0].Source != "serper" {
		t.Errorf("results[0].Source = %q, want serper", results[0].Source)
	}
}

func TestSerperSearchSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "invalid key"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	p := NewSerperProvider("bad-key")
	p.endpoint = srv.URL

	if _, err := p.Search(context.Background(), "q", Options{}); err == nil {
		t.Fatal("Search() error = nil, want status error")
	}
}
