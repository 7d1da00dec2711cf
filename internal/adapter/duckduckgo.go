package adapter

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/prospectiq/brief-cli/internal/model"
	"github.com/prospectiq/brief-cli/internal/resilience"
	"github.com/prospectiq/brief-cli/pkg/duckduckgo"
)

// companyIndicators distinguish a company abstract from a concept
// definition (e.g. "Vector" the startup vs. vectors in math).
var companyIndicators = []string{
	"company", "startup", "tech", "business", "inc", "corp", "ltd",
	"founder", "ceo", "venture",
}

// DuckDuckGoAdapter resolves a company summary and official website from
// the Instant Answer API. Discovery-oriented, so it holds top precedence
// for website and summary.
type DuckDuckGoAdapter struct {
	client  duckduckgo.Client
	timeout time.Duration
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewDuckDuckGoAdapter creates the adapter.
func NewDuckDuckGoAdapter(client duckduckgo.Client, timeout time.Duration, ratePerSec float64, retries int) *DuckDuckGoAdapter {
	cfg := resilience.DefaultRetryConfig(SourceDuckDuckGo)
	cfg.MaxAttempts = retries + 1
	return &DuckDuckGoAdapter{
		client:  client,
		timeout: timeout,
		limiter: newLimiter(ratePerSec),
		retry:   cfg,
	}
}

// Name implements Adapter.
func (a *DuckDuckGoAdapter) Name() string { return SourceDuckDuckGo }

// Fetch implements Adapter.
func (a *DuckDuckGoAdapter) Fetch(ctx context.Context, q model.Query) model.PartialRecord {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if err := a.limiter.Wait(ctx); err != nil {
		return failed(SourceDuckDuckGo, err)
	}

	answer, err := resilience.DoVal(ctx, a.retry, func(ctx context.Context) (*duckduckgo.InstantAnswer, error) {
		return a.client.InstantAnswer(ctx, disambiguate(q.Name))
	})
	if err != nil {
		return failed(SourceDuckDuckGo, err)
	}

	fields := make(map[model.FieldName]any)

	if summary := summaryFromAnswer(answer); summary != "" {
		fields[model.FieldSummary] = summary
	}
	if website := websiteFromAnswer(answer); website != "" {
		fields[model.FieldWebsite] = website
	} else if q.Website == "" {
		// No website supplied and none on the abstract: run a dedicated
		// discovery query.
		if site, siteErr := a.discoverWebsite(ctx, q.Name); siteErr == nil && site != "" {
			fields[model.FieldWebsite] = site
		}
	}

	if len(fields) == 0 {
		return failed(SourceDuckDuckGo, eris.New("no instant answer for query"))
	}
	return ok(SourceDuckDuckGo, fields)
}

func (a *DuckDuckGoAdapter) discoverWebsite(ctx context.Context, name string) (string, error) {
	answer, err := a.client.InstantAnswer(ctx, disambiguate(name)+" official website")
	if err != nil {
		return "", err
	}
	if answer.AbstractURL != "" {
		return answer.AbstractURL, nil
	}
	for _, rt := range answer.RelatedTopics {
		if rt.FirstURL != "" {
			return rt.FirstURL, nil
		}
	}
	return "", nil
}

// summaryFromAnswer picks the abstract text, rejecting long conceptual
// definitions that carry no business indicator, then falls back to
// related topics that do.
func summaryFromAnswer(answer *duckduckgo.InstantAnswer) string {
	summary := answer.AbstractText
	if summary == "" {
		summary = answer.Heading
	}

	if summary != "" && !hasCompanyIndicator(summary) && len(strings.Fields(summary)) > 20 {
		summary = ""
	}

	if summary == "" {
		for _, rt := range answer.RelatedTopics {
			text := rt.Text
			if text == "" {
				text = rt.Result
			}
			if text != "" && hasCompanyIndicator(text) {
				summary = text
				break
			}
		}
	}
	return summary
}

func websiteFromAnswer(answer *duckduckgo.InstantAnswer) string {
	return answer.AbstractURL
}

func hasCompanyIndicator(s string) bool {
	lower := strings.ToLower(s)
	for _, ind := range companyIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}
