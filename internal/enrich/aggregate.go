package enrich

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/prospectiq/brief-cli/internal/adapter"
	"github.com/prospectiq/brief-cli/internal/model"
)

// IndustryClassifier infers an industry label from a company name and
// summary. It acts as the lowest-precedence industry source and only
// runs when no structured provider supplied one.
type IndustryClassifier interface {
	InferIndustry(ctx context.Context, name, summary string) (string, error)
}

// Aggregator fans an enrichment query out to every registered adapter
// concurrently and merges the partial records into one canonical
// CompanyRecord by field-level precedence.
type Aggregator struct {
	registry   *adapter.Registry
	precedence Precedence
	classifier IndustryClassifier
	maxNews    int
}

// NewAggregator creates an aggregator over the given adapter registry.
func NewAggregator(registry *adapter.Registry, precedence Precedence, maxNews int) *Aggregator {
	if precedence == nil {
		precedence = DefaultPrecedence()
	}
	if maxNews <= 0 {
		maxNews = 5
	}
	return &Aggregator{
		registry:   registry,
		precedence: precedence,
		maxNews:    maxNews,
	}
}

// WithClassifier attaches the LLM industry classifier.
func (a *Aggregator) WithClassifier(c IndustryClassifier) *Aggregator {
	a.classifier = c
	return a
}

// Aggregate runs every adapter concurrently, waits for all of them to
// settle (complete or time out, a join rather than a race), and merges the
// results. A failed adapter leaves its fields null; it never fails the
// aggregation. The only error returned is context cancellation, in which
// case no adapter result is applied.
func (a *Aggregator) Aggregate(ctx context.Context, q model.Query) (model.CompanyRecord, []model.AdapterOutcome, error) {
	adapters := a.registry.Adapters()
	partials := make([]model.PartialRecord, len(adapters))
	outcomes := make([]model.AdapterOutcome, len(adapters))

	g, gCtx := errgroup.WithContext(ctx)
	for i, ad := range adapters {
		i, ad := i, ad
		g.Go(func() error {
			start := time.Now()
			// Each adapter writes only its own slot; the merge below is the
			// single reader after the join.
			partials[i] = ad.Fetch(gCtx, q)
			outcomes[i] = outcomeFor(partials[i], time.Since(start))
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		return model.CompanyRecord{}, nil, ctx.Err()
	}

	record := a.merge(q, adapters, partials)

	// Gap-fill industry from the LLM classifier when no structured source
	// supplied one. The inference is wrapped in a PartialRecord like any
	// other adapter output so provenance stays uniform.
	if record.Industry == "" && a.classifier != nil && record.Summary != "" {
		if pr, outcome := a.inferIndustry(ctx, record); pr != nil {
			if label, ok := pr.Fields[model.FieldIndustry].(string); ok && label != "" {
				record.Industry = label
				record.Provenance[model.FieldIndustry] = pr.SourceID
			}
			outcomes = append(outcomes, outcome)
		}
	}

	zap.L().Info("aggregate: adapters settled",
		zap.String("company", q.Name),
		zap.Int("adapters", len(adapters)),
		zap.Int("fields", len(record.Provenance)),
	)

	return record, outcomes, nil
}

func outcomeFor(pr model.PartialRecord, d time.Duration) model.AdapterOutcome {
	outcome := model.AdapterOutcome{
		SourceID:   pr.SourceID,
		OK:         pr.OK,
		Err:        pr.Err,
		DurationMS: d.Milliseconds(),
	}
	for f := range pr.Fields {
		outcome.Fields = append(outcome.Fields, f)
	}
	sort.Slice(outcome.Fields, func(i, j int) bool { return outcome.Fields[i] < outcome.Fields[j] })
	if !pr.OK {
		zap.L().Warn("aggregate: adapter unavailable",
			zap.String("source", pr.SourceID),
			zap.String("reason", pr.Err),
		)
	}
	return outcome
}

// merge applies the precedence table field by field. Ties between sources
// with no declared order fall back to adapter registration order, which
// is the iteration order here.
func (a *Aggregator) merge(q model.Query, adapters []adapter.Adapter, partials []model.PartialRecord) model.CompanyRecord {
	record := model.CompanyRecord{
		Name:       q.Name,
		Website:    q.Website,
		Provenance: make(map[model.FieldName]string),
	}

	for _, field := range model.RecognizedFields {
		if field == model.FieldNews {
			a.mergeNews(&record, partials)
			continue
		}
		if field == model.FieldWebsite && q.Website != "" {
			// A caller-supplied website is authoritative; adapters only
			// discover one when the request had none.
			continue
		}
		source, value := a.winner(field, partials)
		if source == "" {
			continue
		}
		if applyScalar(&record, field, value) {
			record.Provenance[field] = source
		}
	}

	return record
}

// winner returns the highest-precedence OK partial carrying the field.
// Partials are scanned in registration order, so equal ranks resolve to
// the earliest-registered adapter.
func (a *Aggregator) winner(field model.FieldName, partials []model.PartialRecord) (string, any) {
	bestRank := -1
	var bestSource string
	var bestValue any
	for _, pr := range partials {
		if !pr.OK {
			continue
		}
		value, present := pr.Fields[field]
		if !present {
			continue
		}
		rank, allowed := a.precedence.Rank(field, pr.SourceID)
		if !allowed {
			continue
		}
		if bestRank < 0 || rank < bestRank {
			bestRank = rank
			bestSource = pr.SourceID
			bestValue = value
		}
	}
	return bestSource, bestValue
}

// applyScalar writes a merged value onto the record. Returns false when
// the value's type does not match the field, in which case the value is
// discarded rather than coerced.
func applyScalar(record *model.CompanyRecord, field model.FieldName, value any) bool {
	switch field {
	case model.FieldCompany:
		if s, ok := value.(string); ok && s != "" {
			record.Name = s
			return true
		}
	case model.FieldWebsite:
		if s, ok := value.(string); ok && s != "" {
			record.Website = s
			return true
		}
	case model.FieldSummary:
		if s, ok := value.(string); ok && s != "" {
			record.Summary = s
			return true
		}
	case model.FieldIndustry:
		if s, ok := value.(string); ok && s != "" {
			record.Industry = s
			return true
		}
	case model.FieldBranding:
		if b, ok := value.(*model.Branding); ok && b != nil {
			record.Branding = b
			return true
		}
	}
	return false
}

// mergeNews concatenates news from every allowed source in precedence
// order, deduplicates by normalized URL, sorts most recent first, and
// caps the result. Provenance records the source of the first kept item.
func (a *Aggregator) mergeNews(record *model.CompanyRecord, partials []model.PartialRecord) {
	type sourced struct {
		item   model.NewsItem
		source string
		rank   int
		order  int
	}

	var all []sourced
	for i, pr := range partials {
		if !pr.OK {
			continue
		}
		rank, allowed := a.precedence.Rank(model.FieldNews, pr.SourceID)
		if !allowed {
			continue
		}
		for _, item := range pr.NewsValue() {
			all = append(all, sourced{item: item, source: pr.SourceID, rank: rank, order: i})
		}
	}
	if len(all) == 0 {
		return
	}

	// Provenance order: precedence rank, then registration order.
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].rank != all[j].rank {
			return all[i].rank < all[j].rank
		}
		return all[i].order < all[j].order
	})

	seen := make(map[string]bool)
	var kept []sourced
	for _, s := range all {
		key := NormalizeNewsURL(s.item.URL)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, s)
	}

	// Most recent first; undated items keep their provenance order at the
	// end.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].item.PublishedAt.After(kept[j].item.PublishedAt)
	})

	if len(kept) > a.maxNews {
		kept = kept[:a.maxNews]
	}
	if len(kept) == 0 {
		return
	}

	record.News = make([]model.NewsItem, len(kept))
	for i, s := range kept {
		record.News[i] = s.item
	}
	record.Provenance[model.FieldNews] = kept[0].source
}

// inferIndustry calls the classifier and wraps its answer as a
// PartialRecord from the llm_industry source.
func (a *Aggregator) inferIndustry(ctx context.Context, record model.CompanyRecord) (*model.PartialRecord, model.AdapterOutcome) {
	start := time.Now()
	label, err := a.classifier.InferIndustry(ctx, record.Name, record.Summary)
	duration := time.Since(start)

	if err != nil {
		zap.L().Warn("aggregate: industry inference failed",
			zap.String("company", record.Name),
			zap.Error(err),
		)
		return nil, model.AdapterOutcome{
			SourceID:   adapter.SourceLLMIndustry,
			OK:         false,
			Err:        err.Error(),
			DurationMS: duration.Milliseconds(),
		}
	}
	if label == "" || label == "Unknown" {
		return nil, model.AdapterOutcome{
			SourceID:   adapter.SourceLLMIndustry,
			OK:         false,
			Err:        "no industry inferred",
			DurationMS: duration.Milliseconds(),
		}
	}

	pr := model.PartialRecord{
		SourceID:  adapter.SourceLLMIndustry,
		Fields:    map[model.FieldName]any{model.FieldIndustry: label},
		FetchedAt: time.Now().UTC(),
		OK:        true,
	}
	return &pr, model.AdapterOutcome{
		SourceID:   adapter.SourceLLMIndustry,
		OK:         true,
		DurationMS: duration.Milliseconds(),
		Fields:     []model.FieldName{model.FieldIndustry},
	}
}
