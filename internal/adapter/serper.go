package adapter

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/prospectiq/brief-cli/internal/model"
	"github.com/prospectiq/brief-cli/internal/resilience"
	"github.com/prospectiq/brief-cli/pkg/serper"
)

// SerperAdapter pulls organic search context: a website candidate, a
// snippet summary, and news-box stories. It sits at the bottom of the
// precedence table for every field it supplies.
type SerperAdapter struct {
	client  serper.Client
	timeout time.Duration
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewSerperAdapter creates the adapter.
func NewSerperAdapter(client serper.Client, timeout time.Duration, ratePerSec float64, retries int) *SerperAdapter {
	cfg := resilience.DefaultRetryConfig(SourceSerper)
	cfg.MaxAttempts = retries + 1
	return &SerperAdapter{
		client:  client,
		timeout: timeout,
		limiter: newLimiter(ratePerSec),
		retry:   cfg,
	}
}

// Name implements Adapter.
func (a *SerperAdapter) Name() string { return SourceSerper }

// Fetch implements Adapter.
func (a *SerperAdapter) Fetch(ctx context.Context, q model.Query) model.PartialRecord {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if err := a.limiter.Wait(ctx); err != nil {
		return failed(SourceSerper, err)
	}

	query := disambiguate(q.Name) + " company business"
	resp, err := resilience.DoVal(ctx, a.retry, func(ctx context.Context) (*serper.SearchResponse, error) {
		return a.client.Search(ctx, serper.SearchRequest{Query: query, Num: 5})
	})
	if err != nil {
		return failed(SourceSerper, err)
	}

	fields := make(map[model.FieldName]any)

	if site := websiteFromOrganic(q.Name, resp.Organic); site != "" {
		fields[model.FieldWebsite] = site
	}
	if snippet := snippetSummary(resp.Organic); snippet != "" {
		fields[model.FieldSummary] = snippet
	}
	if items := newsFromStories(resp.TopStories); len(items) > 0 {
		fields[model.FieldNews] = items
	}

	if len(fields) == 0 {
		return failed(SourceSerper, eris.New("no organic results for query"))
	}
	return ok(SourceSerper, fields)
}

// websiteFromOrganic picks the first organic link whose host looks like
// the company's own site rather than a directory or news page.
func websiteFromOrganic(name string, organic []serper.OrganicResult) string {
	compact := strings.ReplaceAll(normalizeLower(name), " ", "")
	for _, r := range organic {
		link := r.Link
		if link == "" {
			continue
		}
		if !strings.HasPrefix(link, "http") {
			link = "https://" + strings.TrimPrefix(link, "/")
		}
		domain := ExtractDomain(link)
		if domain == "" {
			continue
		}
		if strings.Contains(strings.ReplaceAll(domain, "-", ""), compact) {
			return link
		}
	}
	return ""
}

// snippetSummary joins the top organic snippets into a short context blob.
func snippetSummary(organic []serper.OrganicResult) string {
	var parts []string
	for _, r := range organic {
		if r.Snippet == "" {
			continue
		}
		parts = append(parts, strings.TrimSpace(r.Snippet))
		if len(parts) == 2 {
			break
		}
	}
	return strings.Join(parts, " ")
}

func newsFromStories(stories []serper.NewsResult) []model.NewsItem {
	items := make([]model.NewsItem, 0, len(stories))
	for _, s := range stories {
		if s.Title == "" || s.Link == "" {
			continue
		}
		items = append(items, model.NewsItem{
			Title:       s.Title,
			URL:         s.Link,
			PublishedAt: parseSerperDate(s.Date),
			Source:      s.Source,
		})
	}
	return items
}

// parseSerperDate handles the absolute formats Serper emits; relative
// dates ("2 days ago") are left as zero time.
func parseSerperDate(s string) time.Time {
	for _, layout := range []string{"Jan 2, 2006", "2 Jan 2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
