// Package config loads application configuration from file and environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	DuckDuckGo DuckDuckGoConfig `yaml:"duckduckgo" mapstructure:"duckduckgo"`
	NewsData   NewsDataConfig   `yaml:"newsdata" mapstructure:"newsdata"`
	Brandfetch BrandfetchConfig `yaml:"brandfetch" mapstructure:"brandfetch"`
	Serper     SerperConfig     `yaml:"serper" mapstructure:"serper"`
	Website    WebsiteConfig    `yaml:"website" mapstructure:"website"`
	Insights   InsightsConfig   `yaml:"insights" mapstructure:"insights"`
	Enrich     EnrichConfig     `yaml:"enrich" mapstructure:"enrich"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// DuckDuckGoConfig holds Instant Answer API settings. The API is keyless,
// so the adapter is always registered.
type DuckDuckGoConfig struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// NewsDataConfig holds NewsData.io settings.
type NewsDataConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// BrandfetchConfig holds Brandfetch settings.
type BrandfetchConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// SerperConfig holds Serper.dev settings.
type SerperConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// WebsiteConfig configures the company-site content adapter.
type WebsiteConfig struct {
	Enabled     bool   `yaml:"enabled" mapstructure:"enabled"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	MaxContent  int    `yaml:"max_content" mapstructure:"max_content"`
}

// InsightsConfig selects and configures the insight generator.
type InsightsConfig struct {
	Provider  string          `yaml:"provider" mapstructure:"provider"` // "groq" or "anthropic"
	Groq      GroqConfig      `yaml:"groq" mapstructure:"groq"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
}

// GroqConfig holds Groq API settings.
type GroqConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	Model       string `yaml:"model" mapstructure:"model"`
	MaxTokens   int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// EnrichConfig configures aggregation and cleaning behavior.
type EnrichConfig struct {
	MaxNews        int     `yaml:"max_news" mapstructure:"max_news"`
	AdapterRetries int     `yaml:"adapter_retries" mapstructure:"adapter_retries"`
	AdapterRate    float64 `yaml:"adapter_rate" mapstructure:"adapter_rate"` // requests/sec per adapter
	PrecedenceFile string  `yaml:"precedence_file" mapstructure:"precedence_file"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("duckduckgo.base_url", "https://api.duckduckgo.com")
	v.SetDefault("duckduckgo.timeout_secs", 8)
	v.SetDefault("newsdata.base_url", "https://newsdata.io/api/1")
	v.SetDefault("newsdata.timeout_secs", 8)
	v.SetDefault("brandfetch.base_url", "https://api.brandfetch.io/v2")
	v.SetDefault("brandfetch.timeout_secs", 8)
	v.SetDefault("serper.base_url", "https://google.serper.dev")
	v.SetDefault("serper.timeout_secs", 15)
	v.SetDefault("website.enabled", true)
	v.SetDefault("website.timeout_secs", 10)
	v.SetDefault("website.user_agent", "Mozilla/5.0 (compatible; brief-cli/1.0)")
	v.SetDefault("website.max_content", 500)
	v.SetDefault("insights.provider", "groq")
	v.SetDefault("insights.groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("insights.groq.model", "moonshotai/kimi-k2-instruct-0905")
	v.SetDefault("insights.groq.max_tokens", 1200)
	v.SetDefault("insights.groq.timeout_secs", 20)
	v.SetDefault("insights.anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("insights.anthropic.max_tokens", 1200)
	v.SetDefault("enrich.max_news", 5)
	v.SetDefault("enrich.adapter_retries", 2)
	v.SetDefault("enrich.adapter_rate", 2.0)
	v.SetDefault("enrich.precedence_file", "")

	// Credential keys default empty so env overrides register with viper.
	v.SetDefault("newsdata.key", "")
	v.SetDefault("brandfetch.key", "")
	v.SetDefault("serper.key", "")
	v.SetDefault("insights.groq.key", "")
	v.SetDefault("insights.anthropic.key", "")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
