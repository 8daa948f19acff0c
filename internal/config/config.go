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
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Dedup      DedupConfig      `yaml:"dedup" mapstructure:"dedup"`
	ICP        ICPConfig        `yaml:"icp" mapstructure:"icp"`
	Routing    RoutingConfig    `yaml:"routing" mapstructure:"routing"`
	PeopleData PeopleDataConfig `yaml:"peopledata" mapstructure:"peopledata"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Salesforce SalesforceConfig `yaml:"salesforce" mapstructure:"salesforce"`
	Notion     NotionConfig     `yaml:"notion" mapstructure:"notion"`
	Outreach   OutreachConfig   `yaml:"outreach" mapstructure:"outreach"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the run-history/cache database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// DedupConfig configures duplicate detection.
type DedupConfig struct {
	// FuzzyThreshold is the 0-100 similarity at or above which two
	// normalized names with the same company root count as duplicates.
	FuzzyThreshold int `yaml:"fuzzy_threshold" mapstructure:"fuzzy_threshold"`
	// MergeStrategy is "keep_first" or "keep_highest_icp".
	MergeStrategy string `yaml:"merge_strategy" mapstructure:"merge_strategy"`
}

// ICPConfig holds the ICP score threshold table.
type ICPConfig struct {
	High   int `yaml:"high" mapstructure:"high"`
	Medium int `yaml:"medium" mapstructure:"medium"`
	Low    int `yaml:"low" mapstructure:"low"`
	Skip   int `yaml:"skip" mapstructure:"skip"`
}

// RoutingConfig configures roster loading for lead routing.
type RoutingConfig struct {
	// RosterSource selects "file", "notion", or "fixture".
	RosterSource string `yaml:"roster_source" mapstructure:"roster_source"`
	// RosterPath points at a YAML roster file when RosterSource is "file".
	RosterPath string `yaml:"roster_path" mapstructure:"roster_path"`
}

// PeopleDataConfig holds people-enrichment API settings.
type PeopleDataConfig struct {
	Key           string `yaml:"key" mapstructure:"key"`
	BaseURL       string `yaml:"base_url" mapstructure:"base_url"`
	RateLimitRPM  int    `yaml:"rate_limit_rpm" mapstructure:"rate_limit_rpm"`
	MaxRetries    int    `yaml:"max_retries" mapstructure:"max_retries"`
	CacheTTLHours int    `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
	Concurrency   int    `yaml:"concurrency" mapstructure:"concurrency"`
	// EmailICPThreshold is the minimum ICP score worth an email export
	// credit; EmailBudget caps credits per run (0 = unlimited).
	EmailICPThreshold int `yaml:"email_icp_threshold" mapstructure:"email_icp_threshold"`
	EmailBudget       int `yaml:"email_budget" mapstructure:"email_budget"`
}

// AnthropicConfig holds Anthropic API settings for persona generation.
type AnthropicConfig struct {
	Key         string  `yaml:"key" mapstructure:"key"`
	Model       string  `yaml:"model" mapstructure:"model"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	// PersonaLimit caps personas generated per run (0 = all contacts).
	PersonaLimit int `yaml:"persona_limit" mapstructure:"persona_limit"`
}

// SalesforceConfig holds Salesforce JWT auth settings for lead push.
type SalesforceConfig struct {
	ClientID  string  `yaml:"client_id" mapstructure:"client_id"`
	Username  string  `yaml:"username" mapstructure:"username"`
	KeyPath   string  `yaml:"key_path" mapstructure:"key_path"`
	LoginURL  string  `yaml:"login_url" mapstructure:"login_url"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// NotionConfig holds Notion API credentials for the roster database.
type NotionConfig struct {
	Token    string `yaml:"token" mapstructure:"token"`
	RosterDB string `yaml:"roster_db" mapstructure:"roster_db"`
}

// OutreachConfig configures message building.
type OutreachConfig struct {
	// LinkedInCharLimit caps connection-note length.
	LinkedInCharLimit int `yaml:"linkedin_char_limit" mapstructure:"linkedin_char_limit"`
	// MinEmailICP is the lowest ICP score eligible for email outreach.
	MinEmailICP int `yaml:"min_email_icp" mapstructure:"min_email_icp"`
}

// ServerConfig configures the webhook server.
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
	v.SetEnvPrefix("OUTREACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "outreach.db")
	v.SetDefault("dedup.fuzzy_threshold", 85)
	v.SetDefault("dedup.merge_strategy", "keep_first")
	v.SetDefault("icp.high", 5)
	v.SetDefault("icp.medium", 4)
	v.SetDefault("icp.low", 3)
	v.SetDefault("icp.skip", 2)
	v.SetDefault("routing.roster_source", "fixture")
	v.SetDefault("peopledata.base_url", "https://api.apollo.io/v1")
	v.SetDefault("peopledata.rate_limit_rpm", 10)
	v.SetDefault("peopledata.max_retries", 3)
	v.SetDefault("peopledata.cache_ttl_hours", 168)
	v.SetDefault("peopledata.concurrency", 2)
	v.SetDefault("peopledata.email_icp_threshold", 4)
	v.SetDefault("peopledata.email_budget", 50)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 600)
	v.SetDefault("anthropic.temperature", 0.3)
	v.SetDefault("salesforce.login_url", "https://login.salesforce.com")
	v.SetDefault("salesforce.rate_limit", 5)
	v.SetDefault("outreach.linkedin_char_limit", 300)
	v.SetDefault("outreach.min_email_icp", 3)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
