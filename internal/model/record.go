// Package model defines the shared data shapes for the enrichment pipeline.
package model

import "time"

// FieldName identifies a canonical company field.
type FieldName string

const (
	FieldCompany  FieldName = "name"
	FieldWebsite  FieldName = "website"
	FieldSummary  FieldName = "summary"
	FieldIndustry FieldName = "industry"
	FieldNews     FieldName = "news"
	FieldBranding FieldName = "branding"
)

// RecognizedFields is the fixed set of fields the pipeline reconciles,
// in report order.
var RecognizedFields = []FieldName{
	FieldCompany,
	FieldWebsite,
	FieldSummary,
	FieldIndustry,
	FieldNews,
	FieldBranding,
}

// Query is the inbound enrichment request.
type Query struct {
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
}

// PartialRecord is one adapter's normalized contribution. It is created
// fresh per request, immutable once returned, and discarded after merge.
type PartialRecord struct {
	SourceID  string            `json:"source_id"`
	Fields    map[FieldName]any `json:"fields,omitempty"`
	FetchedAt time.Time         `json:"fetched_at"`
	OK        bool              `json:"ok"`
	Err       string            `json:"error,omitempty"`
}

// NewsValue extracts the news items carried in Fields, if any.
func (p PartialRecord) NewsValue() []NewsItem {
	items, _ := p.Fields[FieldNews].([]NewsItem)
	return items
}

// NewsItem is a single news mention.
type NewsItem struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at,omitempty"`
	Source      string    `json:"source,omitempty"`
}

// Branding holds visual identity data from a brand provider.
type Branding struct {
	LogoURL string   `json:"logo_url,omitempty"`
	Colors  []string `json:"colors,omitempty"`
}

// CompanyRecord is the canonical merged record. Every non-zero field
// traces to exactly one winning PartialRecord via Provenance; the merge
// never synthesizes values.
type CompanyRecord struct {
	Name       string               `json:"name"`
	Website    string               `json:"website,omitempty"`
	Summary    string               `json:"summary,omitempty"`
	Industry   string               `json:"industry,omitempty"`
	News       []NewsItem           `json:"news,omitempty"`
	Branding   *Branding            `json:"branding,omitempty"`
	Provenance map[FieldName]string `json:"provenance,omitempty"`
}

// Field returns the record's value for a recognized field, with ok=false
// when the field is absent after cleaning.
func (r CompanyRecord) Field(f FieldName) (any, bool) {
	switch f {
	case FieldCompany:
		return r.Name, r.Name != ""
	case FieldWebsite:
		return r.Website, r.Website != ""
	case FieldSummary:
		return r.Summary, r.Summary != ""
	case FieldIndustry:
		return r.Industry, r.Industry != ""
	case FieldNews:
		return r.News, len(r.News) > 0
	case FieldBranding:
		return r.Branding, r.Branding != nil
	}
	return nil, false
}

// RunStatus represents the current state of an enrichment request.
type RunStatus string

const (
	RunStatusStarted     RunStatus = "started"
	RunStatusAggregating RunStatus = "aggregating"
	RunStatusCleaning    RunStatus = "cleaning"
	RunStatusGrounding   RunStatus = "grounding"
	RunStatusGenerating  RunStatus = "generating"
	RunStatusAssembling  RunStatus = "assembling"
	RunStatusDone        RunStatus = "done"
	RunStatusFailed      RunStatus = "failed"
)
