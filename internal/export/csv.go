// Package export renders enrichment reports for downstream consumers.
// The report is consumed verbatim; no fields are reinterpreted here.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/prospectiq/brief-cli/internal/model"
)

// csvHeader is the fixed column set for CSV exports.
var csvHeader = []string{
	"request_id", "company_name", "website", "industry", "summary",
	"news", "logo_url", "brand_colors", "provenance",
	"strategic_positioning", "gtm_signals", "growth_signals_risks",
	"degraded", "generated_at",
}

// WriteCSV renders a report as a single CSV row with a header.
func WriteCSV(w io.Writer, report *model.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	if err := cw.Write(reportRow(report)); err != nil {
		return eris.Wrap(err, "export: write csv row")
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

// ExportCSV writes a timestamped CSV file into dir and returns its path.
func ExportCSV(report *model.Report, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrap(err, "export: create dir")
	}
	path := filepath.Join(dir, fmt.Sprintf("brief_%s.csv", time.Now().Format("20060102_150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", eris.Wrap(err, "export: create csv file")
	}
	defer f.Close()

	if err := WriteCSV(f, report); err != nil {
		return "", err
	}
	return path, nil
}

func reportRow(report *model.Report) []string {
	record := report.Record

	newsLines := make([]string, 0, len(record.News))
	for _, item := range record.News {
		newsLines = append(newsLines, item.Title+" <"+item.URL+">")
	}

	logo, colors := "", ""
	if record.Branding != nil {
		logo = record.Branding.LogoURL
		colors = strings.Join(record.Branding.Colors, " ")
	}

	provParts := make([]string, 0, len(record.Provenance))
	for _, field := range model.RecognizedFields {
		if src, ok := record.Provenance[field]; ok {
			provParts = append(provParts, string(field)+"="+src)
		}
	}

	return []string{
		report.RequestID,
		record.Name,
		record.Website,
		record.Industry,
		record.Summary,
		strings.Join(newsLines, "; "),
		logo,
		colors,
		strings.Join(provParts, "; "),
		sectionCell(report, 0),
		sectionCell(report, 1),
		sectionCell(report, 2),
		fmt.Sprintf("%t", report.Degraded),
		report.GeneratedAt.Format(time.RFC3339),
	}
}

// sectionCell renders a section's content, or its status marker when no
// content came back, so exports never hide a gap.
func sectionCell(report *model.Report, idx int) string {
	if idx >= len(report.Sections) {
		return string(model.SectionUnavailable)
	}
	s := report.Sections[idx]
	if s.Status != model.SectionAvailable {
		return "[" + string(s.Status) + "]"
	}
	return s.Content
}
