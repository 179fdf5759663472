// Package config loads matcher settings from a config file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/llm"
)

// EnvPrefix is prepended to every environment variable the matcher reads
const EnvPrefix = "MATCHER"

// ProviderAuto enables the HTTP backend always and Gemini when an API key is set
const ProviderAuto = "auto"

// Defaults
const (
	DefaultPool        = "mean"
	DefaultConcurrency = 4
	DefaultPort        = 8090
)

// Config holds every setting of the CLI and the server.
// Values come from, in increasing priority: defaults, the config file, the environment.
type Config struct {
	Model       string            `mapstructure:"model" json:"model,omitempty" validate:"required"`
	Pool        string            `mapstructure:"pool" json:"pool,omitempty" validate:"oneof=mean max"`
	Provider    string            `mapstructure:"provider" json:"provider,omitempty" validate:"oneof=auto gemini http"`
	Endpoint    string            `mapstructure:"endpoint" json:"endpoint,omitempty" validate:"omitempty,url"`
	Endpoints   map[string]string `mapstructure:"endpoints" json:"endpoints,omitempty" validate:"dive,url"`
	APIKey      string            `mapstructure:"api_key" json:"-"`
	CacheSize   int               `mapstructure:"cache_size" json:"cache_size,omitempty" validate:"min=1,max=16"`
	Concurrency int               `mapstructure:"concurrency" json:"concurrency,omitempty" validate:"min=1,max=64"`
	Timeout     time.Duration     `mapstructure:"timeout" json:"timeout,omitempty" validate:"gte=1s"`
	SkillsFile  string            `mapstructure:"skills_file" json:"skills_file,omitempty"`
	DatabaseURL string            `mapstructure:"database_url" json:"-"`
	Port        int               `mapstructure:"port" json:"port,omitempty" validate:"min=1,max=65535"`
	Debug       bool              `mapstructure:"debug" json:"debug,omitempty"`
	JSONLogs    bool              `mapstructure:"json_logs" json:"json_logs,omitempty"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Model:       embedding.DefaultModel,
		Pool:        DefaultPool,
		Provider:    ProviderAuto,
		Endpoint:    llm.DefaultEndpoint,
		Endpoints:   map[string]string{},
		CacheSize:   embedding.DefaultCacheSize,
		Concurrency: DefaultConcurrency,
		Timeout:     llm.DefaultTimeout,
		Port:        DefaultPort,
	}
}

// Load reads the config file at path (JSON or YAML, by extension) and overlays
// MATCHER_* environment variables. An empty path skips the file.
// GEMINI_API_KEY and DATABASE_URL are honored when the prefixed names are unset.
func Load(path string) (*Config, error) {
	// model names contain dots, so nested keys use another delimiter
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))

	d := Default()
	v.SetDefault("model", d.Model)
	v.SetDefault("pool", d.Pool)
	v.SetDefault("provider", d.Provider)
	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("endpoints", d.Endpoints)
	v.SetDefault("api_key", "")
	v.SetDefault("cache_size", d.CacheSize)
	v.SetDefault("concurrency", d.Concurrency)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("skills_file", "")
	v.SetDefault("database_url", "")
	v.SetDefault("port", d.Port)
	v.SetDefault("debug", false)
	v.SetDefault("json_logs", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api_key", EnvPrefix+"_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key env: %w", err)
	}
	if err := v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind database url env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Pool = strings.ToLower(cfg.Pool)
	cfg.Provider = strings.ToLower(cfg.Provider)

	return &cfg, nil
}

var validate = validator.New()

// Validate checks value ranges and cross-field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("'%s' failed %s", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Provider == string(llm.ProviderGemini) && c.APIKey == "" {
		return fmt.Errorf("config error: provider 'gemini' requires an API key (GEMINI_API_KEY)")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Pool == "" {
		result.Pool = defaults.Pool
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Endpoint == "" {
		result.Endpoint = defaults.Endpoint
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SkillsFile == "" {
		result.SkillsFile = defaults.SkillsFile
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Per-model endpoints: flags add to the file's map
	if len(defaults.Endpoints) > 0 {
		merged := make(map[string]string, len(defaults.Endpoints)+len(result.Endpoints))
		for k, ep := range defaults.Endpoints {
			merged[k] = ep
		}
		for k, ep := range result.Endpoints {
			merged[k] = ep
		}
		result.Endpoints = merged
	}

	// Numeric fields: use default if zero
	if result.CacheSize == 0 {
		result.CacheSize = defaults.CacheSize
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.Timeout == 0 {
		result.Timeout = defaults.Timeout
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bools cannot distinguish unset from false; either source turns them on
	result.Debug = result.Debug || defaults.Debug
	result.JSONLogs = result.JSONLogs || defaults.JSONLogs

	return result
}

// LLMConfig returns the backend connection settings
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.Endpoint != "" {
		cfg.Endpoint = c.Endpoint
	}
	for model, ep := range c.Endpoints {
		cfg.Endpoints[strings.ToLower(model)] = ep
	}
	if c.Timeout > 0 {
		cfg.Timeout = c.Timeout
	}
	cfg.APIKey = c.APIKey
	return cfg
}

// Backends lists the embedding backends to start
func (c *Config) Backends() []llm.Provider {
	switch c.Provider {
	case string(llm.ProviderGemini):
		return []llm.Provider{llm.ProviderGemini}
	case string(llm.ProviderHTTP):
		return []llm.Provider{llm.ProviderHTTP}
	}
	if c.APIKey != "" {
		return []llm.Provider{llm.ProviderHTTP, llm.ProviderGemini}
	}
	return []llm.Provider{llm.ProviderHTTP}
}
