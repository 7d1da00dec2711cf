package adapter

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/prospectiq/brief-cli/internal/model"
	"github.com/prospectiq/brief-cli/internal/resilience"
)

// contentSelectors are tried in order when looking for the main content
// block of a company site.
var contentSelectors = []string{"main", "article", ".content", "#content", ".main-content"}

// WebsiteAdapter extracts a summary directly from the company's own site:
// title, meta description, headings, and the main content block. Used for
// niche companies that search providers have no abstract for.
type WebsiteAdapter struct {
	http       *http.Client
	userAgent  string
	maxContent int
	limiter    *rate.Limiter
	retry      resilience.RetryConfig
}

// NewWebsiteAdapter creates the adapter.
func NewWebsiteAdapter(timeout time.Duration, userAgent string, maxContent int, ratePerSec float64, retries int) *WebsiteAdapter {
	cfg := resilience.DefaultRetryConfig(SourceWebsite)
	cfg.MaxAttempts = retries + 1
	if maxContent <= 0 {
		maxContent = 500
	}
	return &WebsiteAdapter{
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent:  userAgent,
		maxContent: maxContent,
		limiter:    newLimiter(ratePerSec),
		retry:      cfg,
	}
}

// Name implements Adapter.
func (a *WebsiteAdapter) Name() string { return SourceWebsite }

// Fetch implements Adapter.
func (a *WebsiteAdapter) Fetch(ctx context.Context, q model.Query) model.PartialRecord {
	site := strings.TrimSpace(q.Website)
	if site == "" {
		return failed(SourceWebsite, eris.New("no website to scrape"))
	}
	if !strings.HasPrefix(site, "http://") && !strings.HasPrefix(site, "https://") {
		site = "https://" + site
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return failed(SourceWebsite, err)
	}

	doc, err := resilience.DoVal(ctx, a.retry, func(ctx context.Context) (*goquery.Document, error) {
		return a.fetchDocument(ctx, site)
	})
	if err != nil {
		return failed(SourceWebsite, err)
	}

	summary := a.buildSummary(doc)
	if summary == "" {
		return failed(SourceWebsite, eris.Errorf("no extractable content at %s", site))
	}

	return ok(SourceWebsite, map[model.FieldName]any{
		model.FieldSummary: summary,
	})
}

func (a *WebsiteAdapter) fetchDocument(ctx context.Context, site string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, site, nil)
	if err != nil {
		return nil, eris.Wrap(err, "website: create request")
	}
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "website: send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("website: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "website: parse html")
	}
	return doc, nil
}

// buildSummary assembles a compact "Title | Description | Headings |
// Content" blob from the parsed page.
func (a *WebsiteAdapter) buildSummary(doc *goquery.Document) string {
	doc.Find("script, style, nav, header, footer").Remove()

	var parts []string

	if title := collapseSpace(doc.Find("title").First().Text()); title != "" {
		parts = append(parts, "Title: "+title)
	}
	if desc, exists := doc.Find(`meta[name="description"]`).Attr("content"); exists {
		if desc = collapseSpace(desc); desc != "" {
			parts = append(parts, "Description: "+desc)
		}
	}

	var headings []string
	doc.Find("h1").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if h := collapseSpace(s.Text()); h != "" {
			headings = append(headings, h)
		}
		return len(headings) < 2
	})
	if len(headings) > 0 {
		parts = append(parts, "Headings: "+strings.Join(headings, ", "))
	}

	content := ""
	for _, sel := range contentSelectors {
		text := collapseSpace(doc.Find(sel).First().Text())
		if len(text) > 50 {
			content = truncate(text, a.maxContent)
			break
		}
	}
	if content == "" {
		if body := collapseSpace(doc.Find("body").Text()); body != "" {
			content = truncate(body, a.maxContent)
		}
	}
	if content == "" {
		if p := collapseSpace(doc.Find("p").First().Text()); p != "" {
			content = truncate(p, 300)
		}
	}
	if content != "" {
		parts = append(parts, "Content: "+content)
	}

	return strings.Join(parts, " | ")
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate caps s at n bytes without splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
