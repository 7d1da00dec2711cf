package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyRecord_Field(t *testing.T) {
	r := CompanyRecord{
		Name:    "Acme",
		Summary: "Acme builds robots.",
		News:    []NewsItem{{Title: "Launch", URL: "https://news.example.com/launch"}},
	}

	tests := []struct {
		field   FieldName
		present bool
	}{
		{FieldCompany, true},
		{FieldSummary, true},
		{FieldNews, true},
		{FieldWebsite, false},
		{FieldIndustry, false},
		{FieldBranding, false},
	}

	for _, tt := range tests {
		_, present := r.Field(tt.field)
		assert.Equal(t, tt.present, present, "field %s", tt.field)
	}

	_, present := r.Field(FieldName("unrecognized"))
	assert.False(t, present)
}

func TestPartialRecord_NewsValue(t *testing.T) {
	pr := PartialRecord{
		SourceID: "newsdata",
		Fields: map[FieldName]any{
			FieldNews: []NewsItem{{Title: "Launch", URL: "https://news.example.com/a", PublishedAt: time.Now()}},
		},
		OK: true,
	}

	items := pr.NewsValue()
	require.Len(t, items, 1)
	assert.Equal(t, "Launch", items[0].Title)

	empty := PartialRecord{SourceID: "serper", OK: true}
	assert.Nil(t, empty.NewsValue())

	wrongType := PartialRecord{Fields: map[FieldName]any{FieldNews: "not items"}}
	assert.Nil(t, wrongType.NewsValue())
}

func TestRecognizedFields_Complete(t *testing.T) {
	assert.Equal(t, []FieldName{
		FieldCompany, FieldWebsite, FieldSummary, FieldIndustry, FieldNews, FieldBranding,
	}, RecognizedFields)
}
