package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/prospectiq/brief-cli/internal/model"
	"github.com/prospectiq/brief-cli/internal/resilience"
	"github.com/prospectiq/brief-cli/pkg/newsdata"
)

// pubDateLayouts are the timestamp formats NewsData has been observed to
// return.
var pubDateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// NewsDataAdapter fetches recent news mentions for a company.
type NewsDataAdapter struct {
	client  newsdata.Client
	timeout time.Duration
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewNewsDataAdapter creates the adapter.
func NewNewsDataAdapter(client newsdata.Client, timeout time.Duration, ratePerSec float64, retries int) *NewsDataAdapter {
	cfg := resilience.DefaultRetryConfig(SourceNewsData)
	cfg.MaxAttempts = retries + 1
	return &NewsDataAdapter{
		client:  client,
		timeout: timeout,
		limiter: newLimiter(ratePerSec),
		retry:   cfg,
	}
}

// Name implements Adapter.
func (a *NewsDataAdapter) Name() string { return SourceNewsData }

// Fetch implements Adapter.
func (a *NewsDataAdapter) Fetch(ctx context.Context, q model.Query) model.PartialRecord {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if err := a.limiter.Wait(ctx); err != nil {
		return failed(SourceNewsData, err)
	}

	query := q.Name
	if commonWords[normalizeLower(q.Name)] {
		query = fmt.Sprintf("%q company OR %q startup OR %q tech", q.Name, q.Name, q.Name)
	}

	resp, err := resilience.DoVal(ctx, a.retry, func(ctx context.Context) (*newsdata.NewsResponse, error) {
		return a.client.Latest(ctx, query)
	})
	if err != nil {
		return failed(SourceNewsData, err)
	}
	if resp.Status != "" && resp.Status != "success" {
		return failed(SourceNewsData, eris.Errorf("newsdata: status %s", resp.Status))
	}

	items := make([]model.NewsItem, 0, len(resp.Results))
	for _, art := range resp.Results {
		if art.Title == "" {
			continue
		}
		items = append(items, model.NewsItem{
			Title:       art.Title,
			URL:         art.Link,
			PublishedAt: parsePubDate(art.PubDate),
			Source:      art.SourceID,
		})
	}
	if len(items) == 0 {
		return failed(SourceNewsData, eris.New("no articles for query"))
	}

	return ok(SourceNewsData, map[model.FieldName]any{
		model.FieldNews: items,
	})
}

func parsePubDate(s string) time.Time {
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
