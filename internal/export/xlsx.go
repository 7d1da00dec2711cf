package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/prospectiq/brief-cli/internal/model"
)

// ExportXLSX writes a timestamped XLSX workbook into dir and returns its
// path. The workbook carries one field-per-row sheet plus an insights
// sheet, so sparse records stay readable.
func ExportXLSX(report *model.Report, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrap(err, "export: create dir")
	}
	path := filepath.Join(dir, fmt.Sprintf("brief_%s.xlsx", time.Now().Format("20060102_150405")))

	f := xlsx.NewFile()

	record := report.Record
	sheet, err := f.AddSheet("Company")
	if err != nil {
		return "", eris.Wrap(err, "export: add company sheet")
	}

	addRow(sheet, "Request ID", report.RequestID)
	addRow(sheet, "Name", record.Name)
	addRow(sheet, "Website", valueOrMissing(record.Website))
	addRow(sheet, "Industry", valueOrMissing(record.Industry))
	addRow(sheet, "Summary", valueOrMissing(record.Summary))
	if record.Branding != nil {
		addRow(sheet, "Logo", record.Branding.LogoURL)
		addRow(sheet, "Brand colors", strings.Join(record.Branding.Colors, " "))
	} else {
		addRow(sheet, "Logo", "(missing)")
	}
	for _, field := range model.RecognizedFields {
		if src, ok := record.Provenance[field]; ok {
			addRow(sheet, "Source: "+string(field), src)
		}
	}

	newsSheet, err := f.AddSheet("News")
	if err != nil {
		return "", eris.Wrap(err, "export: add news sheet")
	}
	addRow(newsSheet, "Title", "URL", "Published", "Source")
	for _, item := range record.News {
		published := ""
		if !item.PublishedAt.IsZero() {
			published = item.PublishedAt.Format("2006-01-02")
		}
		addRow(newsSheet, item.Title, item.URL, published, item.Source)
	}

	insightSheet, err := f.AddSheet("Insights")
	if err != nil {
		return "", eris.Wrap(err, "export: add insights sheet")
	}
	addRow(insightSheet, "Section", "Status", "Content")
	for _, s := range report.Sections {
		addRow(insightSheet, s.Title, string(s.Status), s.Content)
	}

	if err := f.Save(path); err != nil {
		return "", eris.Wrap(err, "export: save xlsx")
	}
	return path, nil
}

func addRow(sheet *xlsx.Sheet, cells ...string) {
	row := sheet.AddRow()
	for _, c := range cells {
		row.AddCell().Value = c
	}
}

func valueOrMissing(s string) string {
	if s == "" {
		return "(missing)"
	}
	return s
}
