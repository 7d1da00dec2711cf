package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/prospectiq/brief-cli/internal/adapter"
	"github.com/prospectiq/brief-cli/internal/config"
	"github.com/prospectiq/brief-cli/internal/enrich"
	"github.com/prospectiq/brief-cli/internal/insight"
	"github.com/prospectiq/brief-cli/pkg/brandfetch"
	"github.com/prospectiq/brief-cli/pkg/duckduckgo"
	"github.com/prospectiq/brief-cli/pkg/groq"
	"github.com/prospectiq/brief-cli/pkg/newsdata"
	"github.com/prospectiq/brief-cli/pkg/serper"
)

// enrichEnv holds the initialized registry, generator, and pipeline shared
// by the enrich and serve commands.
type enrichEnv struct {
	Registry   *adapter.Registry
	Aggregator *enrich.Aggregator
	Generator  enrich.InsightGenerator
	Pipeline   *enrich.Pipeline
}

// initEnrichment builds the adapter registry from configured credentials,
// selects the insight generator, and assembles the pipeline. Keyed
// providers without a credential are skipped, never stubbed.
func initEnrichment(c *config.Config, withInsights bool) (*enrichEnv, error) {
	registry := buildRegistry(c)

	precedence := enrich.DefaultPrecedence()
	if c.Enrich.PrecedenceFile != "" {
		p, err := enrich.LoadPrecedence(c.Enrich.PrecedenceFile)
		if err != nil {
			return nil, err
		}
		precedence = p
		zap.L().Info("precedence overrides loaded", zap.String("file", c.Enrich.PrecedenceFile))
	}

	var generator enrich.InsightGenerator
	var classifier enrich.IndustryClassifier
	if withInsights {
		generator, classifier = buildGenerator(c)
	}

	aggregator := enrich.NewAggregator(registry, precedence, c.Enrich.MaxNews)
	if classifier != nil {
		aggregator = aggregator.WithClassifier(classifier)
	}

	return &enrichEnv{
		Registry:   registry,
		Aggregator: aggregator,
		Generator:  generator,
		Pipeline:   enrich.NewPipeline(aggregator, generator),
	}, nil
}

// buildRegistry registers adapters in precedence tie-break order. The
// keyless adapters always run; keyed ones only when a credential is set.
func buildRegistry(c *config.Config) *adapter.Registry {
	retries := c.Enrich.AdapterRetries
	rate := c.Enrich.AdapterRate
	registry := adapter.NewRegistry()

	registry.Register(adapter.NewDuckDuckGoAdapter(
		duckduckgo.NewClient(duckduckgo.WithBaseURL(c.DuckDuckGo.BaseURL)),
		secs(c.DuckDuckGo.TimeoutSecs), rate, retries,
	))

	if c.Website.Enabled {
		registry.Register(adapter.NewWebsiteAdapter(
			secs(c.Website.TimeoutSecs), c.Website.UserAgent, c.Website.MaxContent, rate, retries,
		))
	}

	if c.NewsData.Key != "" {
		registry.Register(adapter.NewNewsDataAdapter(
			newsdata.NewClient(c.NewsData.Key, newsdata.WithBaseURL(c.NewsData.BaseURL)),
			secs(c.NewsData.TimeoutSecs), rate, retries,
		))
	} else {
		zap.L().Debug("BRIEF_NEWSDATA_KEY not set, news adapter disabled")
	}

	if c.Brandfetch.Key != "" {
		registry.Register(adapter.NewBrandfetchAdapter(
			brandfetch.NewClient(c.Brandfetch.Key, brandfetch.WithBaseURL(c.Brandfetch.BaseURL)),
			secs(c.Brandfetch.TimeoutSecs), rate, retries,
		))
	} else {
		zap.L().Debug("BRIEF_BRANDFETCH_KEY not set, branding adapter disabled")
	}

	if c.Serper.Key != "" {
		registry.Register(adapter.NewSerperAdapter(
			serper.NewClient(c.Serper.Key, serper.WithBaseURL(c.Serper.BaseURL)),
			secs(c.Serper.TimeoutSecs), rate, retries,
		))
	} else {
		zap.L().Debug("BRIEF_SERPER_KEY not set, search adapter disabled")
	}

	zap.L().Info("adapters registered", zap.Int("count", registry.Len()))
	return registry
}

// buildGenerator picks the insight provider. Both implementations also
// serve as the industry classifier. Returns nils when no credential is
// configured; the pipeline then marks sections unavailable.
func buildGenerator(c *config.Config) (enrich.InsightGenerator, enrich.IndustryClassifier) {
	if c.Insights.Provider == "anthropic" && c.Insights.Anthropic.Key != "" {
		g := insight.NewAnthropicGenerator(c.Insights.Anthropic.Key, c.Insights.Anthropic.Model, c.Insights.Anthropic.MaxTokens)
		zap.L().Info("insight generator enabled", zap.String("provider", "anthropic"))
		return g, g
	}

	if c.Insights.Groq.Key != "" {
		client := groq.NewClient(c.Insights.Groq.Key,
			groq.WithBaseURL(c.Insights.Groq.BaseURL),
			groq.WithModel(c.Insights.Groq.Model),
		)
		g := insight.NewGroqGenerator(client, c.Insights.Groq.Model, c.Insights.Groq.MaxTokens)
		zap.L().Info("insight generator enabled", zap.String("provider", "groq"))
		return g, g
	}

	zap.L().Warn("no insight provider configured, sections will be unavailable")
	return nil, nil
}

func secs(n int) time.Duration {
	return time.Duration(n) * time.Second
}
