package enrich

import (
	"fmt"
	"strings"

	"github.com/prospectiq/brief-cli/internal/model"
)

// Section titles the generator is instructed to produce, in order.
const (
	SectionTitlePositioning = "Strategic Positioning"
	SectionTitleGTM         = "GTM Signals"
	SectionTitleGrowthRisks = "Growth Signals & Risks"
)

// BuildPrompt converts a validated CompanyRecord into a bounded,
// deterministic instruction payload. Every recognized field lands either
// in KnownFacts (verbatim) or UnknownFields (explicitly enumerated so the
// generator is told not to invent it). This function is the grounding
// defense; it performs no I/O.
func BuildPrompt(r model.CompanyRecord) model.GroundingPrompt {
	prompt := model.GroundingPrompt{
		KnownFacts: make(map[model.FieldName]string),
	}

	for _, field := range model.RecognizedFields {
		value, present := r.Field(field)
		if !present {
			prompt.UnknownFields = append(prompt.UnknownFields, field)
			continue
		}
		prompt.KnownFacts[field] = renderFact(field, value)
	}

	prompt.Instruction = renderInstruction(r, prompt)
	return prompt
}

// renderFact renders one field value verbatim as prompt text.
func renderFact(field model.FieldName, value any) string {
	switch field {
	case model.FieldNews:
		items := value.([]model.NewsItem)
		lines := make([]string, 0, len(items))
		for _, item := range items {
			line := item.Title
			if !item.PublishedAt.IsZero() {
				line += " (" + item.PublishedAt.Format("2006-01-02") + ")"
			}
			line += " — " + item.URL
			lines = append(lines, line)
		}
		return strings.Join(lines, "\n")
	case model.FieldBranding:
		b := value.(*model.Branding)
		var parts []string
		if b.LogoURL != "" {
			parts = append(parts, "logo: "+b.LogoURL)
		}
		if len(b.Colors) > 0 {
			parts = append(parts, "colors: "+strings.Join(b.Colors, ", "))
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprintf("%v", value)
	}
}

// renderInstruction builds the full generator instruction. Iteration
// follows RecognizedFields order, so the output is deterministic for a
// given record.
func renderInstruction(r model.CompanyRecord, prompt model.GroundingPrompt) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a business intelligence analyst writing a brief for the company %q.\n\n", r.Name)

	b.WriteString("## Known facts\n")
	b.WriteString("These are the only facts available. Cite nothing else.\n")
	for _, field := range model.RecognizedFields {
		fact, present := prompt.KnownFacts[field]
		if !present {
			continue
		}
		if field == model.FieldNews {
			b.WriteString("- news:\n")
			for _, line := range strings.Split(fact, "\n") {
				b.WriteString("    - " + line + "\n")
			}
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", field, fact)
	}

	if len(prompt.UnknownFields) > 0 {
		b.WriteString("\n## Unknown fields\n")
		b.WriteString("No data was found for these fields. Do not guess or invent values for them; ")
		b.WriteString("omit them or use explicitly hedged language.\n")
		for _, field := range prompt.UnknownFields {
			fmt.Fprintf(&b, "- %s\n", field)
		}
	}

	b.WriteString("\n## Task\n")
	fmt.Fprintf(&b, "Write exactly three numbered sections:\n")
	fmt.Fprintf(&b, "1) %s\n2) %s\n3) %s\n\n", SectionTitlePositioning, SectionTitleGTM, SectionTitleGrowthRisks)
	b.WriteString("Rules:\n")
	b.WriteString("- Base every statement strictly on the known facts above.\n")
	b.WriteString("- Never introduce entities, numbers, dates, or relationships that do not appear in the known facts.\n")
	b.WriteString("- Where the facts are too thin for a section, state \"insufficient data\" for that section instead of speculating.\n")
	b.WriteString("- Keep each section concise and complete; do not cut off mid-sentence.\n")

	return b.String()
}
