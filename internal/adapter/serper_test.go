package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prospectiq/brief-cli/internal/model"
	"github.com/prospectiq/brief-cli/pkg/serper"
)

func newSerperAdapter(baseURL string) *SerperAdapter {
	client := serper.NewClient("test-key", serper.WithBaseURL(baseURL))
	return NewSerperAdapter(client, 5*time.Second, 0, 0)
}

func TestSerperFetch_WebsiteSummaryAndNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req serper.SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Acme company business", req.Query)

		_, _ = w.Write([]byte(`{
			"organic": [
				{"title": "Acme on Crunchbase", "link": "https://crunchbase.com/org/acme", "snippet": "Acme profile on Crunchbase."},
				{"title": "Acme — Home", "link": "https://acme.com", "snippet": "Acme builds industrial robots."},
				{"title": "Acme review", "link": "https://reviews.example.com/acme", "snippet": "A review of Acme."}
			],
			"topStories": [
				{"title": "Acme launches new arm", "link": "https://news.example.com/arm", "source": "Example News", "date": "Aug 1, 2026"},
				{"title": "", "link": "https://news.example.com/empty"}
			]
		}`))
	}))
	defer srv.Close()

	pr := newSerperAdapter(srv.URL).Fetch(context.Background(), model.Query{Name: "Acme"})

	require.True(t, pr.OK)
	assert.Equal(t, SourceSerper, pr.SourceID)
	assert.Equal(t, "https://acme.com", pr.Fields[model.FieldWebsite])
	// Top two snippets joined, in result order.
	assert.Equal(t, "Acme profile on Crunchbase. Acme builds industrial robots.", pr.Fields[model.FieldSummary])

	items := pr.NewsValue()
	require.Len(t, items, 1)
	assert.Equal(t, "Acme launches new arm", items[0].Title)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), items[0].PublishedAt)
	assert.Equal(t, "Example News", items[0].Source)
}

func TestSerperFetch_NoMatchingDomain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"organic": [
				{"title": "Unrelated", "link": "https://directory.example.com/listing", "snippet": "A listing."}
			]
		}`))
	}))
	defer srv.Close()

	pr := newSerperAdapter(srv.URL).Fetch(context.Background(), model.Query{Name: "Acme"})

	require.True(t, pr.OK)
	_, hasWebsite := pr.Fields[model.FieldWebsite]
	assert.False(t, hasWebsite)
	assert.Equal(t, "A listing.", pr.Fields[model.FieldSummary])
}

func TestSerperFetch_EmptyResultsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"organic": []}`))
	}))
	defer srv.Close()

	pr := newSerperAdapter(srv.URL).Fetch(context.Background(), model.Query{Name: "Ghost Co"})

	assert.False(t, pr.OK)
	assert.Contains(t, pr.Err, "no organic results")
}

func TestParseSerperDate(t *testing.T) {
	tests := []struct {
		in   string
		zero bool
	}{
		{"Aug 1, 2026", false},
		{"1 Aug 2026", false},
		{"2026-08-01", false},
		{"2 days ago", true},
		{"", true},
	}
	for _, tt := range tests {
		got := parseSerperDate(tt.in)
		assert.Equal(t, tt.zero, got.IsZero(), "input %q", tt.in)
	}
}
