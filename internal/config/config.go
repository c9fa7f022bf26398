// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Firecrawl FirecrawlConfig `yaml:"firecrawl" mapstructure:"firecrawl"`
	Jina      JinaConfig      `yaml:"jina" mapstructure:"jina"`
	Notion    NotionConfig    `yaml:"notion" mapstructure:"notion"`
	Survey    SurveyConfig    `yaml:"survey" mapstructure:"survey"`
	Extract   ExtractConfig   `yaml:"extract" mapstructure:"extract"`
	Merge     MergeConfig     `yaml:"merge" mapstructure:"merge"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	HaikuModel  string `yaml:"haiku_model" mapstructure:"haiku_model"`
	SonnetModel string `yaml:"sonnet_model" mapstructure:"sonnet_model"`
}

// FirecrawlConfig holds Firecrawl API settings, used for headless rendering
// of JavaScript-shell event pages.
type FirecrawlConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// JinaConfig holds Jina AI Reader settings (optional clean-text source for
// the LLM extraction step).
type JinaConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// NotionConfig holds Notion API credentials for question bank sync.
type NotionConfig struct {
	Token  string `yaml:"token" mapstructure:"token"`
	BankDB string `yaml:"bank_db" mapstructure:"bank_db"`
}

// SurveyConfig configures generation behavior. MinQuestions/MaxQuestions
// clamp the computed target count; the fixed "25-question" mode is expressed
// by setting both to 25.
type SurveyConfig struct {
	Phase        string `yaml:"phase" mapstructure:"phase"`
	MinQuestions int    `yaml:"min_questions" mapstructure:"min_questions"`
	MaxQuestions int    `yaml:"max_questions" mapstructure:"max_questions"`
	RulesFile    string `yaml:"rules_file" mapstructure:"rules_file"`
}

// ExtractConfig configures per-URL event data extraction.
type ExtractConfig struct {
	FetchTimeoutSecs  int     `yaml:"fetch_timeout_secs" mapstructure:"fetch_timeout_secs"`
	RenderTimeoutSecs int     `yaml:"render_timeout_secs" mapstructure:"render_timeout_secs"`
	MaxContentChars   int     `yaml:"max_content_chars" mapstructure:"max_content_chars"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	MaxConcurrent     int     `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// FetchTimeout returns the plain-HTTP fetch timeout.
func (c ExtractConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSecs) * time.Second
}

// RenderTimeout returns the headless render time box.
func (c ExtractConfig) RenderTimeout() time.Duration {
	return time.Duration(c.RenderTimeoutSecs) * time.Second
}

// MergeConfig configures multi-source merging.
type MergeConfig struct {
	SimilarityThreshold  float64 `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
	DescriptionMinLength int     `yaml:"description_min_length" mapstructure:"description_min_length"`
	CacheTTLMinutes      int     `yaml:"cache_ttl_minutes" mapstructure:"cache_ttl_minutes"`
}

// CacheTTL returns the merged-extraction cache TTL.
func (c MergeConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// ServerConfig configures the HTTP API server.
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
	v.SetEnvPrefix("SURVEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "survey.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("anthropic.haiku_model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.sonnet_model", "claude-sonnet-4-5-20250929")
	v.SetDefault("firecrawl.base_url", "https://api.firecrawl.dev/v2")
	v.SetDefault("jina.base_url", "https://r.jina.ai")
	v.SetDefault("survey.phase", "plan")
	v.SetDefault("survey.min_questions", 10)
	v.SetDefault("survey.max_questions", 25)
	v.SetDefault("extract.fetch_timeout_secs", 30)
	v.SetDefault("extract.render_timeout_secs", 15)
	v.SetDefault("extract.max_content_chars", 50000)
	v.SetDefault("extract.requests_per_second", 2.0)
	v.SetDefault("extract.max_concurrent", 5)
	v.SetDefault("merge.similarity_threshold", 0.8)
	v.SetDefault("merge.description_min_length", 300)
	v.SetDefault("merge.cache_ttl_minutes", 60)

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
