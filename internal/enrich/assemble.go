package enrich

import (
	"strings"
	"time"

	"github.com/prospectiq/brief-cli/internal/model"
)

// AssembleReport merges the cleaned record and generated sections into
// the exportable report. It is a pure merge: no new facts are introduced,
// and sections that came back empty or failed are labeled rather than
// silently omitted.
func AssembleReport(requestID string, record model.CompanyRecord, sections model.InsightSections, genErr error, outcomes []model.AdapterOutcome, started time.Time) *model.Report {
	report := &model.Report{
		RequestID:   requestID,
		Record:      record,
		Outcomes:    outcomes,
		GeneratedAt: time.Now().UTC(),
		DurationMS:  time.Since(started).Milliseconds(),
		Status:      model.RunStatusDone,
	}

	report.Sections = []model.ReportSection{
		labeledSection(SectionTitlePositioning, sections.Positioning, genErr),
		labeledSection(SectionTitleGTM, sections.GTMSignals, genErr),
		labeledSection(SectionTitleGrowthRisks, sections.GrowthRisks, genErr),
	}

	if genErr != nil {
		report.Degraded = true
	}
	for _, o := range outcomes {
		if !o.OK {
			report.Degraded = true
			break
		}
	}

	return report
}

func labeledSection(title, content string, genErr error) model.ReportSection {
	if genErr != nil {
		return model.ReportSection{Title: title, Status: model.SectionUnavailable}
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return model.ReportSection{Title: title, Status: model.SectionEmpty}
	}
	return model.ReportSection{Title: title, Status: model.SectionAvailable, Content: content}
}
