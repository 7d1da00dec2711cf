// Package newsdata provides a client for the NewsData.io latest-news API.
package newsdata

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://newsdata.io/api/1"

// Client queries the NewsData.io API.
type Client interface {
	Latest(ctx context.Context, query string) (*NewsResponse, error)
}

// Article is a single news result.
type Article struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	PubDate  string `json:"pubDate"`
	SourceID string `json:"source_id"`
}

// NewsResponse is the response from GET /news.
type NewsResponse struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Results      []Article `json:"results"`
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
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a NewsData.io client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
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

func (c *httpClient) Latest(ctx context.Context, query string) (*NewsResponse, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("q", query)
	params.Set("language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/news?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "newsdata: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "newsdata: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "newsdata: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("newsdata: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result NewsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "newsdata: unmarshal response")
	}

	return &result, nil
}
