// Package insight implements the insight generator boundary: turning a
// grounding prompt into the three report sections via an LLM provider.
package insight

import (
	"regexp"
	"strings"

	"github.com/prospectiq/brief-cli/internal/model"
)

// sectionHeadRe matches the numbered section headings the prompt asks
// for, tolerating markdown decoration: "1)", "2.", "**3)**", "## 1.".
var sectionHeadRe = regexp.MustCompile(`(?m)^\s*(?:#+\s*)?(?:\*\*)?\s*([123])\s*[).:]`)

// ParseSections splits a completion into the three requested sections.
// Text before the first heading is discarded; a missing section stays
// empty and is labeled by the assembler.
func ParseSections(text string) model.InsightSections {
	var sections model.InsightSections

	matches := sectionHeadRe.FindAllStringSubmatchIndex(text, -1)
	for i, m := range matches {
		start := m[1] // after the heading marker
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		content := strings.TrimSpace(strings.TrimLeft(text[start:end], "*) .:"))
		content = strings.TrimSpace(strings.TrimPrefix(content, "**"))

		switch text[m[2]:m[3]] {
		case "1":
			sections.Positioning = cleanSection(content)
		case "2":
			sections.GTMSignals = cleanSection(content)
		case "3":
			sections.GrowthRisks = cleanSection(content)
		}
	}

	return sections
}

// cleanSection strips a leading section title line when the model echoed
// it back, keeping the body.
func cleanSection(s string) string {
	for _, title := range []string{
		"Strategic Positioning",
		"GTM Signals",
		"Growth Signals & Risks",
	} {
		if strings.HasPrefix(s, title) {
			s = strings.TrimSpace(strings.TrimLeft(strings.TrimPrefix(s, title), "*: \n"))
			break
		}
	}
	return strings.TrimSpace(s)
}
