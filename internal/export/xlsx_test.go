package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestExportXLSX(t *testing.T) {
	dir := t.TempDir()

	path, err := ExportXLSX(sampleReport(), dir)
	require.NoError(t, err)

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	require.Len(t, f.Sheets, 3)
	assert.Equal(t, "Company", f.Sheets[0].Name)
	assert.Equal(t, "News", f.Sheets[1].Name)
	assert.Equal(t, "Insights", f.Sheets[2].Name)

	company := f.Sheets[0]
	assert.Equal(t, "Request ID", company.Rows[0].Cells[0].Value)
	assert.Equal(t, "req-123", company.Rows[0].Cells[1].Value)
	assert.Equal(t, "Acme", company.Rows[1].Cells[1].Value)

	news := f.Sheets[1]
	require.Len(t, news.Rows, 2) // header + one story
	assert.Equal(t, "Launch", news.Rows[1].Cells[0].Value)
	assert.Equal(t, "2026-08-01", news.Rows[1].Cells[2].Value)

	insights := f.Sheets[2]
	require.Len(t, insights.Rows, 4)
	assert.Equal(t, "Strategic Positioning", insights.Rows[1].Cells[0].Value)
	assert.Equal(t, "available", insights.Rows[1].Cells[1].Value)
	assert.Equal(t, "unavailable", insights.Rows[3].Cells[1].Value)
}

func TestExportXLSX_MissingFieldsLabeled(t *testing.T) {
	report := sampleReport()
	report.Record.Website = ""
	report.Record.Branding = nil

	dir := t.TempDir()
	path, err := ExportXLSX(report, dir)
	require.NoError(t, err)

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	var websiteRow string
	for _, row := range f.Sheets[0].Rows {
		if len(row.Cells) >= 2 && row.Cells[0].Value == "Website" {
			websiteRow = row.Cells[1].Value
		}
	}
	assert.Equal(t, "(missing)", websiteRow)
}
