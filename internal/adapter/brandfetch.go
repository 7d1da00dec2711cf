package adapter

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/prospectiq/brief-cli/internal/model"
	"github.com/prospectiq/brief-cli/internal/resilience"
	"github.com/prospectiq/brief-cli/pkg/brandfetch"
)

// BrandfetchAdapter resolves brand assets (logo, colors), canonical name,
// and a structured industry classification by company domain. It only
// runs when a domain can be derived from the query.
type BrandfetchAdapter struct {
	client  brandfetch.Client
	timeout time.Duration
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewBrandfetchAdapter creates the adapter.
func NewBrandfetchAdapter(client brandfetch.Client, timeout time.Duration, ratePerSec float64, retries int) *BrandfetchAdapter {
	cfg := resilience.DefaultRetryConfig(SourceBrandfetch)
	cfg.MaxAttempts = retries + 1
	return &BrandfetchAdapter{
		client:  client,
		timeout: timeout,
		limiter: newLimiter(ratePerSec),
		retry:   cfg,
	}
}

// Name implements Adapter.
func (a *BrandfetchAdapter) Name() string { return SourceBrandfetch }

// Fetch implements Adapter.
func (a *BrandfetchAdapter) Fetch(ctx context.Context, q model.Query) model.PartialRecord {
	domain := ExtractDomain(q.Website)
	if domain == "" {
		// Brand lookup is keyed by domain; without one there is nothing to
		// ask the provider, and guessing a domain would be fabrication.
		return failed(SourceBrandfetch, eris.New("no domain available for brand lookup"))
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if err := a.limiter.Wait(ctx); err != nil {
		return failed(SourceBrandfetch, err)
	}

	brand, err := resilience.DoVal(ctx, a.retry, func(ctx context.Context) (*brandfetch.Brand, error) {
		return a.client.Brand(ctx, domain)
	})
	if err != nil {
		return failed(SourceBrandfetch, err)
	}

	fields := make(map[model.FieldName]any)

	branding := &model.Branding{LogoURL: brand.PrimaryLogoURL()}
	for _, c := range brand.Colors {
		if c.Hex != "" {
			branding.Colors = append(branding.Colors, c.Hex)
		}
	}
	if branding.LogoURL != "" || len(branding.Colors) > 0 {
		fields[model.FieldBranding] = branding
	}

	if brand.Name != "" {
		fields[model.FieldCompany] = brand.Name
	}
	if brand.Description != "" {
		fields[model.FieldSummary] = brand.Description
	}
	if len(brand.Company.Industries) > 0 && brand.Company.Industries[0].Name != "" {
		fields[model.FieldIndustry] = brand.Company.Industries[0].Name
	}

	if len(fields) == 0 {
		return failed(SourceBrandfetch, eris.Errorf("no brand data for domain %s", domain))
	}
	return ok(SourceBrandfetch, fields)
}
