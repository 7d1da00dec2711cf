package enrich

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prospectiq/brief-cli/internal/model"
)

// validNameRe rejects company names that are gibberish at the request
// boundary. Provider queries tolerate anything matching this.
var validNameRe = regexp.MustCompile(`^[\pL\pN &.,'\-]+$`)

// InsightGenerator is the external generator boundary. The pipeline
// depends on it only through this contract.
type InsightGenerator interface {
	Generate(ctx context.Context, prompt model.GroundingPrompt) (model.InsightSections, error)
}

// Pipeline drives one enrichment request through the state machine:
// Started → Aggregating → Cleaning → Grounding → Generating → Assembling
// → Done. Only a RequestError reaches Failed; provider and generator
// failures degrade the report instead.
type Pipeline struct {
	aggregator *Aggregator
	generator  InsightGenerator
}

// NewPipeline creates a pipeline. The generator may be nil, in which case
// sections are marked unavailable.
func NewPipeline(aggregator *Aggregator, generator InsightGenerator) *Pipeline {
	return &Pipeline{
		aggregator: aggregator,
		generator:  generator,
	}
}

// ValidateQuery checks the top-level input. A violation is the only
// condition that makes the whole request meaningless.
func ValidateQuery(q model.Query) error {
	name := strings.TrimSpace(q.Name)
	if name == "" {
		return NewRequestError("company name is required")
	}
	if len(name) < 2 {
		return NewRequestError("company name too short")
	}
	if !validNameRe.MatchString(name) {
		return NewRequestError("company name contains invalid characters")
	}
	if q.Website != "" && !IsValidURL(q.Website) && !strings.Contains(q.Website, ".") {
		return NewRequestError("website is not a valid URL")
	}
	return nil
}

// Run executes one enrichment request end to end. The returned error is
// non-nil only for RequestError or context cancellation; every other
// failure is absorbed into a degraded report.
func (p *Pipeline) Run(ctx context.Context, q model.Query) (*model.Report, error) {
	requestID := uuid.NewString()
	started := time.Now()
	log := zap.L().With(
		zap.String("request_id", requestID),
		zap.String("company", q.Name),
	)

	log.Info("pipeline: started", zap.String("status", string(model.RunStatusStarted)))

	if err := ValidateQuery(q); err != nil {
		log.Warn("pipeline: failed",
			zap.String("status", string(model.RunStatusFailed)),
			zap.Error(err),
		)
		return nil, err
	}
	q.Name = strings.TrimSpace(q.Name)

	log.Info("pipeline: aggregating", zap.String("status", string(model.RunStatusAggregating)))
	record, outcomes, err := p.aggregator.Aggregate(ctx, q)
	if err != nil {
		// Only context cancellation surfaces here; no adapter result is
		// applied after it.
		return nil, err
	}

	log.Info("pipeline: cleaning", zap.String("status", string(model.RunStatusCleaning)))
	record = Clean(record)

	log.Info("pipeline: grounding", zap.String("status", string(model.RunStatusGrounding)))
	prompt := BuildPrompt(record)

	log.Info("pipeline: generating", zap.String("status", string(model.RunStatusGenerating)))
	var sections model.InsightSections
	var genErr error
	if p.generator == nil {
		genErr = &GenerationError{Err: ErrNoGenerator}
	} else {
		sections, genErr = p.generator.Generate(ctx, prompt)
		if genErr != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			genErr = &GenerationError{Err: genErr}
			log.Warn("pipeline: generation degraded", zap.Error(genErr))
		}
	}

	log.Info("pipeline: assembling", zap.String("status", string(model.RunStatusAssembling)))
	report := AssembleReport(requestID, record, sections, genErr, outcomes, started)

	log.Info("pipeline: done",
		zap.String("status", string(model.RunStatusDone)),
		zap.Int("fields", len(record.Provenance)),
		zap.Bool("degraded", report.Degraded),
		zap.Int64("duration_ms", report.DurationMS),
	)
	return report, nil
}
