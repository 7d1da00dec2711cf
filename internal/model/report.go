package model

import "time"

// GroundingPrompt is a read-only view over a validated CompanyRecord.
// KnownFacts carries only non-null fields rendered verbatim;
// UnknownFields enumerates the absent ones so the generator can be told
// not to invent them.
type GroundingPrompt struct {
	KnownFacts    map[FieldName]string `json:"known_facts"`
	UnknownFields []FieldName          `json:"unknown_fields"`
	Instruction   string               `json:"instruction"`
}

// InsightSections is the structured output of the insight generator.
type InsightSections struct {
	Positioning string `json:"positioning"`
	GTMSignals  string `json:"gtm_signals"`
	GrowthRisks string `json:"growth_risks"`
}

// SectionStatus labels whether a report section carries generated content.
type SectionStatus string

const (
	SectionAvailable   SectionStatus = "available"
	SectionEmpty       SectionStatus = "empty"
	SectionUnavailable SectionStatus = "unavailable"
)

// ReportSection is one labeled insight section.
type ReportSection struct {
	Title   string        `json:"title"`
	Status  SectionStatus `json:"status"`
	Content string        `json:"content,omitempty"`
}

// AdapterOutcome records how a single adapter fared during aggregation.
type AdapterOutcome struct {
	SourceID   string      `json:"source_id"`
	OK         bool        `json:"ok"`
	Err        string      `json:"error,omitempty"`
	DurationMS int64       `json:"duration_ms"`
	Fields     []FieldName `json:"fields,omitempty"`
}

// Report is the exportable result of one enrichment request. It merges
// the canonical record and the generated sections; exporters consume it
// verbatim.
type Report struct {
	RequestID   string           `json:"request_id"`
	Record      CompanyRecord    `json:"record"`
	Sections    []ReportSection  `json:"sections"`
	Outcomes    []AdapterOutcome `json:"adapter_outcomes,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
	DurationMS  int64            `json:"duration_ms"`
	Status      RunStatus        `json:"status"`
	Degraded    bool             `json:"degraded,omitempty"`
}
