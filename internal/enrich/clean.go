package enrich

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/prospectiq/brief-cli/internal/model"
)

var (
	nameSuffixRe = regexp.MustCompile(`(?i)[\s,]+(inc\.?|ltd\.?|corp\.?|co\.?|llc\.?)$`)
	hexColorRe   = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	titleCaser   = cases.Title(language.English)
)

// trackingParams are query parameters stripped during news URL
// normalization; they never change the target document.
var trackingParams = map[string]bool{
	"ref": true, "fbclid": true, "gclid": true, "mc_cid": true, "mc_eid": true,
}

// Clean normalizes and validates a merged CompanyRecord. It is pure and
// idempotent: Clean(Clean(r)) == Clean(r). Malformed values are dropped,
// never repaired by guessing, and the matching provenance entry is
// removed with the field.
func Clean(r model.CompanyRecord) model.CompanyRecord {
	out := model.CompanyRecord{
		Name:       NormalizeCompanyName(r.Name),
		Provenance: make(map[model.FieldName]string, len(r.Provenance)),
	}
	for k, v := range r.Provenance {
		out.Provenance[k] = v
	}

	out.Website = cleanURLField(r.Website, model.FieldWebsite, out.Provenance)
	out.Summary = cleanTextField(r.Summary, model.FieldSummary, out.Provenance)
	out.Industry = cleanIndustry(r.Industry, out.Provenance)
	out.News = cleanNews(r.News, out.Provenance)
	out.Branding = cleanBranding(r.Branding, out.Provenance)

	// Provenance entries must only exist for surviving fields.
	for field := range out.Provenance {
		if _, present := out.Field(field); !present {
			delete(out.Provenance, field)
		}
	}
	if len(out.Provenance) == 0 {
		out.Provenance = nil
	}

	return out
}

// NormalizeCompanyName trims noise suffixes (Inc, Ltd, Corp, Co, LLC),
// collapses whitespace, and title-cases the result. Stacked suffixes
// ("Acme Co. Ltd") are stripped to a fixpoint so a single pass settles
// the name.
func NormalizeCompanyName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	for {
		stripped := nameSuffixRe.ReplaceAllString(name, "")
		if stripped == name {
			break
		}
		name = stripped
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(name))
}

// IsValidURL reports whether raw is a syntactically valid absolute
// http(s) URL.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// NormalizeNewsURL canonicalizes a news URL for deduplication: lowercase
// host without "www.", no fragment, no trailing slash, tracking
// parameters removed, remaining query sorted. Returns "" for URLs that
// fail validation.
func NormalizeNewsURL(raw string) string {
	if !IsValidURL(raw) {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")
	path := strings.TrimRight(u.Path, "/")

	q := u.Query()
	for key := range q {
		if trackingParams[key] || strings.HasPrefix(strings.ToLower(key), "utm_") {
			q.Del(key)
		}
	}

	normalized := strings.ToLower(u.Scheme) + "://" + host + path
	if encoded := q.Encode(); encoded != "" {
		normalized += "?" + encoded
	}
	return normalized
}

func cleanURLField(raw string, field model.FieldName, provenance map[model.FieldName]string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !IsValidURL(raw) {
		zap.L().Debug("clean: dropping invalid url",
			zap.String("field", string(field)),
			zap.String("value", raw),
		)
		delete(provenance, field)
		return ""
	}
	return raw
}

func cleanTextField(raw string, field model.FieldName, provenance map[model.FieldName]string) string {
	cleaned := strings.Join(strings.Fields(raw), " ")
	if cleaned == "" {
		delete(provenance, field)
	}
	return cleaned
}

// cleanIndustry treats empty strings and the classifier's "Unknown"
// placeholder as absent rather than as valid values.
func cleanIndustry(raw string, provenance map[model.FieldName]string) string {
	cleaned := strings.Join(strings.Fields(raw), " ")
	if cleaned == "" || strings.EqualFold(cleaned, "unknown") {
		delete(provenance, model.FieldIndustry)
		return ""
	}
	return cleaned
}

// cleanNews validates item URLs, deduplicates by normalized URL keeping
// the earliest-seen entry, and zeroes implausible publication dates.
// Item order is preserved, which keeps the operation idempotent.
func cleanNews(items []model.NewsItem, provenance map[model.FieldName]string) []model.NewsItem {
	if len(items) == 0 {
		delete(provenance, model.FieldNews)
		return nil
	}

	horizon := time.Now().Add(24 * time.Hour)
	seen := make(map[string]bool, len(items))
	out := make([]model.NewsItem, 0, len(items))
	for _, item := range items {
		key := NormalizeNewsURL(item.URL)
		if key == "" || seen[key] {
			continue
		}
		title := strings.Join(strings.Fields(item.Title), " ")
		if title == "" {
			continue
		}
		seen[key] = true

		if item.PublishedAt.After(horizon) {
			item.PublishedAt = time.Time{}
		}
		item.Title = title
		item.Source = strings.TrimSpace(item.Source)
		out = append(out, item)
	}

	if len(out) == 0 {
		delete(provenance, model.FieldNews)
		return nil
	}
	return out
}

func cleanBranding(b *model.Branding, provenance map[model.FieldName]string) *model.Branding {
	if b == nil {
		delete(provenance, model.FieldBranding)
		return nil
	}

	out := &model.Branding{}
	if IsValidURL(strings.TrimSpace(b.LogoURL)) {
		out.LogoURL = strings.TrimSpace(b.LogoURL)
	}
	for _, c := range b.Colors {
		c = strings.ToLower(strings.TrimSpace(c))
		if hexColorRe.MatchString(c) {
			out.Colors = append(out.Colors, c)
		}
	}
	sort.Strings(out.Colors)

	if out.LogoURL == "" && len(out.Colors) == 0 {
		delete(provenance, model.FieldBranding)
		return nil
	}
	return out
}
