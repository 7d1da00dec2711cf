package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)

	assert.Equal(t, "https://api.duckduckgo.com", cfg.DuckDuckGo.BaseURL)
	assert.Equal(t, 8, cfg.DuckDuckGo.TimeoutSecs)
	assert.Equal(t, 8, cfg.NewsData.TimeoutSecs)
	assert.Equal(t, 8, cfg.Brandfetch.TimeoutSecs)
	assert.Equal(t, 15, cfg.Serper.TimeoutSecs)
	assert.True(t, cfg.Website.Enabled)

	assert.Equal(t, "groq", cfg.Insights.Provider)
	assert.Equal(t, 1200, cfg.Insights.Groq.MaxTokens)
	assert.Equal(t, 20, cfg.Insights.Groq.TimeoutSecs)

	assert.Equal(t, 5, cfg.Enrich.MaxNews)
	assert.Equal(t, 2, cfg.Enrich.AdapterRetries)
	assert.InDelta(t, 2.0, cfg.Enrich.AdapterRate, 0.001)

	// Keyed providers have no default credential.
	assert.Empty(t, cfg.NewsData.Key)
	assert.Empty(t, cfg.Brandfetch.Key)
	assert.Empty(t, cfg.Serper.Key)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BRIEF_NEWSDATA_KEY", "env-news-key")
	t.Setenv("BRIEF_SERVER_PORT", "9191")
	t.Setenv("BRIEF_INSIGHTS_PROVIDER", "anthropic")
	t.Setenv("BRIEF_ENRICH_MAX_NEWS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-news-key", cfg.NewsData.Key)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "anthropic", cfg.Insights.Provider)
	assert.Equal(t, 3, cfg.Enrich.MaxNews)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "not-a-level", Format: "json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
}
