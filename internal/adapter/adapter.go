// Package adapter translates external provider responses into the shared
// PartialRecord shape. One adapter per provider; each owns exactly one
// provider's schema and never fabricates a field the provider did not
// return.
package adapter

import (
	"context"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/prospectiq/brief-cli/internal/model"
)

// Source identifiers. Registration order doubles as the merge tie-break
// order, so the constants are listed in precedence order.
const (
	SourceDuckDuckGo  = "duckduckgo"
	SourceWebsite     = "website"
	SourceNewsData    = "newsdata"
	SourceBrandfetch  = "brandfetch"
	SourceSerper      = "serper"
	SourceLLMIndustry = "llm_industry"
)

// Adapter fetches one provider's view of a company. Fetch never returns
// an error: provider failures (timeout, rate limit, malformed response)
// come back as a PartialRecord with OK=false and a reason.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, q model.Query) model.PartialRecord
}

// Registry holds adapters in registration order. Order matters: the
// aggregator breaks merge ties by earliest registration.
type Registry struct {
	adapters []Adapter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends an adapter. Returns the registry for chaining.
func (r *Registry) Register(a Adapter) *Registry {
	r.adapters = append(r.adapters, a)
	return r
}

// Adapters returns the registered adapters in registration order.
func (r *Registry) Adapters() []Adapter {
	return r.adapters
}

// Len returns the number of registered adapters.
func (r *Registry) Len() int {
	return len(r.adapters)
}

// ok builds a successful PartialRecord for a source.
func ok(source string, fields map[model.FieldName]any) model.PartialRecord {
	return model.PartialRecord{
		SourceID:  source,
		Fields:    fields,
		FetchedAt: time.Now().UTC(),
		OK:        true,
	}
}

// failed builds an unavailable PartialRecord carrying the failure reason.
func failed(source string, err error) model.PartialRecord {
	return model.PartialRecord{
		SourceID:  source,
		FetchedAt: time.Now().UTC(),
		OK:        false,
		Err:       err.Error(),
	}
}

// newLimiter builds a per-adapter rate limiter. A non-positive rate
// disables limiting.
func newLimiter(perSec float64) *rate.Limiter {
	if perSec <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(perSec), 1)
}

// ExtractDomain returns the bare domain from a URL or domain-like input,
// or "" when none can be derived.
func ExtractDomain(raw string) string {
	if raw == "" {
		return ""
	}
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return strings.ToLower(strings.TrimPrefix(u.Host, "www."))
	}
	// Bare "acme.com" style input.
	if !strings.Contains(raw, "/") && strings.Contains(raw, ".") {
		return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "www."))
	}
	return ""
}

// commonWords are generic terms that need disambiguation when used as a
// company name, otherwise search providers return concept definitions.
var commonWords = map[string]bool{
	"stochastic": true, "quantum": true, "vector": true, "matrix": true,
	"alpha": true, "beta": true, "gamma": true, "delta": true,
	"sigma": true, "lambda": true, "omega": true, "zen": true,
	"nova": true, "pulse": true, "flux": true,
}

// disambiguate appends business qualifiers to common-word company names.
func disambiguate(name string) string {
	if commonWords[normalizeLower(name)] {
		return name + " company tech startup business"
	}
	return name
}

func normalizeLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
