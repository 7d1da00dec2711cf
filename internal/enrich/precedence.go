// Package enrich implements the enrichment core: concurrent adapter
// fan-out with field-level precedence merge, record cleaning, grounding
// prompt construction, and report assembly.
package enrich

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/prospectiq/brief-cli/internal/adapter"
	"github.com/prospectiq/brief-cli/internal/model"
)

// Precedence declares, per field, the ordered list of sources allowed to
// win that field. Earlier sources win; sources absent from a field's list
// cannot supply it. Keeping this as one table (rather than scattered
// conditionals) makes merge behavior auditable and testable in isolation.
type Precedence map[model.FieldName][]string

// DefaultPrecedence returns the built-in precedence table.
//
// Discovery-oriented sources lead website and summary; structured brand
// data leads industry, with LLM inference last so it only fills gaps;
// news accepts every news-bearing source (items are deduplicated, not
// raced).
func DefaultPrecedence() Precedence {
	return Precedence{
		model.FieldCompany: {
			adapter.SourceBrandfetch,
		},
		model.FieldWebsite: {
			adapter.SourceDuckDuckGo,
			adapter.SourceSerper,
		},
		model.FieldSummary: {
			adapter.SourceDuckDuckGo,
			adapter.SourceWebsite,
			adapter.SourceBrandfetch,
			adapter.SourceSerper,
		},
		model.FieldIndustry: {
			adapter.SourceBrandfetch,
			adapter.SourceLLMIndustry,
		},
		model.FieldNews: {
			adapter.SourceNewsData,
			adapter.SourceSerper,
		},
		model.FieldBranding: {
			adapter.SourceBrandfetch,
		},
	}
}

// LoadPrecedence reads a precedence table override from a YAML file.
// The file has a top-level "precedence" key mapping field names to
// ordered source lists; fields not mentioned keep their defaults.
func LoadPrecedence(path string) (Precedence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "enrich: read precedence %s", path)
	}

	var wrapper struct {
		Precedence map[string][]string `yaml:"precedence"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "enrich: parse precedence")
	}

	table := DefaultPrecedence()
	for field, sources := range wrapper.Precedence {
		table[model.FieldName(field)] = sources
	}
	return table, nil
}

// Rank returns the precedence index of a source for a field, with ok=false
// when the source is not allowed to supply the field.
func (p Precedence) Rank(field model.FieldName, source string) (int, bool) {
	for i, s := range p[field] {
		if s == source {
			return i, true
		}
	}
	return 0, false
}
