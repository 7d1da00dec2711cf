// Package duckduckgo provides a client for the DuckDuckGo Instant Answer API.
// The API is unauthenticated and returns encyclopedic abstracts keyed by query.
package duckduckgo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.duckduckgo.com"

// Client queries the Instant Answer API.
type Client interface {
	InstantAnswer(ctx context.Context, query string) (*InstantAnswer, error)
}

// RelatedTopic is a disambiguation entry attached to an instant answer.
type RelatedTopic struct {
	Text     string `json:"Text"`
	FirstURL string `json:"FirstURL"`
	Result   string `json:"Result"`
}

// InstantAnswer is the response from GET /?format=json.
type InstantAnswer struct {
	Heading        string         `json:"Heading"`
	AbstractText   string         `json:"AbstractText"`
	AbstractURL    string         `json:"AbstractURL"`
	AbstractSource string         `json:"AbstractSource"`
	RelatedTopics  []RelatedTopic `json:"RelatedTopics"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an Instant Answer client. No API key is required.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) InstantAnswer(ctx context.Context, query string) (*InstantAnswer, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_redirect", "1")
	params.Set("no_html", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "duckduckgo: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "duckduckgo: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "duckduckgo: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("duckduckgo: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result InstantAnswer
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "duckduckgo: unmarshal response")
	}

	return &result, nil
}
