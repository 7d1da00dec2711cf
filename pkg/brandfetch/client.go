// Package brandfetch provides a client for the Brandfetch brand API.
package brandfetch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.brandfetch.io/v2"

// Client looks up brand assets by domain.
type Client interface {
	Brand(ctx context.Context, domain string) (*Brand, error)
}

// LogoFormat is one rendition of a logo asset.
type LogoFormat struct {
	Src    string `json:"src"`
	Format string `json:"format"`
}

// Logo is a logo asset with its renditions.
type Logo struct {
	Type    string       `json:"type"`
	Theme   string       `json:"theme"`
	Formats []LogoFormat `json:"formats"`
}

// Color is a single brand color.
type Color struct {
	Hex  string `json:"hex"`
	Type string `json:"type"`
}

// Industry is a company industry classification.
type Industry struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Company carries Brandfetch's structured company data.
type Company struct {
	Industries []Industry `json:"industries"`
}

// Brand is the response from GET /brands/{domain}.
type Brand struct {
	Name        string  `json:"name"`
	Domain      string  `json:"domain"`
	Description string  `json:"description"`
	Logos       []Logo  `json:"logos"`
	Colors      []Color `json:"colors"`
	Company     Company `json:"company"`
}

// PrimaryLogoURL returns the first usable logo source URL, or "".
func (b *Brand) PrimaryLogoURL() string {
	for _, logo := range b.Logos {
		for _, f := range logo.Formats {
			if f.Src != "" {
				return f.Src
			}
		}
	}
	return ""
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

// NewClient creates a Brandfetch client.
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

func (c *httpClient) Brand(ctx context.Context, domain string) (*Brand, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/brands/"+domain, nil)
	if err != nil {
		return nil, eris.Wrap(err, "brandfetch: create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "brandfetch: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "brandfetch: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("brandfetch: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result Brand
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "brandfetch: unmarshal response")
	}

	return &result, nil
}
