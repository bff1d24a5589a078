package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/MimeLyc/srt-translator/internal/apperr"
	"github.com/MimeLyc/srt-translator/internal/llm"
	"github.com/MimeLyc/srt-translator/pkg/log"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Config holds all application configuration.
// Values come from defaults, then an optional TOML file, then environment
// variables, in that order of increasing precedence.
//
// Environment Variables:
// LLM Configuration:
// - LLM_PROVIDER: gemini or openai (default: gemini)
// - LLM_API_KEY: API key for the provider (required; API_KEY is accepted too)
// - LLM_API_URL: endpoint override (default for openai: https://openrouter.ai/api/v1)
// - LLM_MODEL: model name (default: gemini-2.5-flash / openai/gpt-4o-mini)
// - LLM_MAX_TOKENS: maximum output tokens, 0 for provider default
// - LLM_TEMPERATURE: sampling temperature (default: 0.2)
// - LLM_TIMEOUT: request timeout in seconds (default: 120)
// - LLM_SITE_URL: HTTP-Referer header for OpenRouter (optional)
// - LLM_APP_NAME: X-Title header for OpenRouter (optional)
//
// HTTP Configuration:
// - HTTP_ADDR: listen address (default: :8080)
// - UI_ENABLED: serve the static UI (default: false)
// - UI_STATIC_DIR: static UI directory (default: /app/web)
// - CORS_ORIGINS: comma separated allowed origins (default: *)
// - MAX_UPLOAD_BYTES: upload size limit (default: 10 MiB)
// - MAX_BODY_BYTES: JSON/text body limit (default: 12 MiB)
//
// Session Configuration:
// - SESSION_IDLE_TTL: minutes before an idle session is dropped, 0 disables (default: 60)
// - SESSION_SWEEP_CRON: sweep schedule (default: @every 5m)
//
// Log Configuration:
// - LOG_LEVEL: debug, info, warn, error (default: info)
// - LOG_FILE: additionally append logs to this file (optional)
type Config struct {
	LLM     LLMConfig     `toml:"llm" json:"llm"`
	HTTP    HTTPConfig    `toml:"http" json:"http"`
	Session SessionConfig `toml:"session" json:"session"`
	Log     LogConfig     `toml:"log" json:"log"`
}

// LLMConfig holds the configuration for the text generation service
type LLMConfig struct {
	Provider    string  `toml:"provider" json:"provider"`
	APIKey      string  `toml:"api_key" json:"-"`
	APIURL      string  `toml:"api_url" json:"api_url"`
	Model       string  `toml:"model" json:"model"`
	MaxTokens   int     `toml:"max_tokens" json:"max_tokens"`
	Temperature float64 `toml:"temperature" json:"temperature"`
	Timeout     int     `toml:"timeout" json:"timeout"`
	SiteURL     string  `toml:"site_url" json:"site_url"`
	AppName     string  `toml:"app_name" json:"app_name"`
}

// HTTPConfig holds the HTTP server configuration
type HTTPConfig struct {
	Addr           string   `toml:"addr" json:"addr"`
	UIEnabled      bool     `toml:"ui_enabled" json:"ui_enabled"`
	UIStaticDir    string   `toml:"ui_static_dir" json:"ui_static_dir"`
	CORSOrigins    []string `toml:"cors_origins" json:"cors_origins"`
	MaxUploadBytes int64    `toml:"max_upload_bytes" json:"max_upload_bytes"`
	MaxBodyBytes   int64    `toml:"max_body_bytes" json:"max_body_bytes"`
}

// SessionConfig holds the in-memory session configuration
type SessionConfig struct {
	IdleTTLMinutes int    `toml:"idle_ttl_minutes" json:"idle_ttl_minutes"`
	SweepCron      string `toml:"sweep_cron" json:"sweep_cron"`
}

// LogConfig holds the logger configuration
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file" json:"file"`
}

const (
	defaultOpenAIURL   = "https://openrouter.ai/api/v1"
	defaultOpenAIModel = "openai/gpt-4o-mini"
)

// Option is a function type for configuring Config
type Option func(*Config)

// NewFromEnv creates a Config from defaults and environment variables
func NewFromEnv(opts ...Option) (*Config, error) {
	return Load("", opts...)
}

// Load creates a Config from defaults, the TOML file at path (skipped when
// path is empty) and environment variables.
func Load(path string, opts ...Option) (*Config, error) {
	config := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperr.Wrap(err, apperr.ErrConfig, "failed to read config file").
				WithContext("path", path)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, apperr.Wrap(err, apperr.ErrConfig, fmt.Sprintf("invalid config file: %v", err)).
				WithContext("path", path)
		}
	}

	applyEnv(config)

	for _, opt := range opts {
		opt(config)
	}

	applyProviderDefaults(config)

	if err := config.validate(); err != nil {
		return nil, err
	}

	log.Info("Config: provider=%s model=%s http=%s ui=%t session_ttl=%dm",
		config.LLM.Provider, config.LLM.Model, config.HTTP.Addr, config.HTTP.UIEnabled, config.Session.IdleTTLMinutes)

	return config, nil
}

func defaults() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    string(llm.ProviderGemini),
			Temperature: 0.2,
			Timeout:     120,
		},
		HTTP: HTTPConfig{
			Addr:           ":8080",
			UIEnabled:      false,
			UIStaticDir:    "/app/web",
			CORSOrigins:    []string{"*"},
			MaxUploadBytes: 10 << 20,
			MaxBodyBytes:   12 << 20,
		},
		Session: SessionConfig{
			IdleTTLMinutes: 60,
			SweepCron:      "@every 5m",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func applyEnv(c *Config) {
	c.LLM.Provider = getEnvString("LLM_PROVIDER", c.LLM.Provider)
	c.LLM.APIKey = getEnvString("LLM_API_KEY", getEnvString("API_KEY", c.LLM.APIKey))
	c.LLM.APIURL = getEnvString("LLM_API_URL", c.LLM.APIURL)
	c.LLM.Model = getEnvString("LLM_MODEL", c.LLM.Model)
	c.LLM.MaxTokens = getEnvInt("LLM_MAX_TOKENS", c.LLM.MaxTokens)
	c.LLM.Temperature = getEnvFloat("LLM_TEMPERATURE", c.LLM.Temperature)
	c.LLM.Timeout = getEnvInt("LLM_TIMEOUT", c.LLM.Timeout)
	c.LLM.SiteURL = getEnvString("LLM_SITE_URL", c.LLM.SiteURL)
	c.LLM.AppName = getEnvString("LLM_APP_NAME", c.LLM.AppName)

	c.HTTP.Addr = getEnvString("HTTP_ADDR", c.HTTP.Addr)
	c.HTTP.UIEnabled = getEnvBool("UI_ENABLED", c.HTTP.UIEnabled)
	c.HTTP.UIStaticDir = getEnvString("UI_STATIC_DIR", c.HTTP.UIStaticDir)
	c.HTTP.CORSOrigins = getEnvList("CORS_ORIGINS", c.HTTP.CORSOrigins)
	c.HTTP.MaxUploadBytes = getEnvInt64("MAX_UPLOAD_BYTES", c.HTTP.MaxUploadBytes)
	c.HTTP.MaxBodyBytes = getEnvInt64("MAX_BODY_BYTES", c.HTTP.MaxBodyBytes)

	c.Session.IdleTTLMinutes = getEnvInt("SESSION_IDLE_TTL", c.Session.IdleTTLMinutes)
	c.Session.SweepCron = getEnvString("SESSION_SWEEP_CRON", c.Session.SweepCron)

	c.Log.Level = getEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnvString("LOG_FILE", c.Log.File)
}

func applyProviderDefaults(c *Config) {
	switch llm.Provider(strings.ToLower(strings.TrimSpace(c.LLM.Provider))) {
	case llm.ProviderOpenAI:
		if c.LLM.APIURL == "" {
			c.LLM.APIURL = defaultOpenAIURL
		}
		if c.LLM.Model == "" {
			c.LLM.Model = defaultOpenAIModel
		}
	default:
		if c.LLM.Model == "" {
			c.LLM.Model = llm.DefaultGeminiModel
		}
	}
}

// validate checks if all required configuration is properly set
func (c *Config) validate() error {
	if c.LLM.APIKey == "" {
		return apperr.New(apperr.ErrConfig, "LLM_API_KEY is required")
	}
	if _, err := llm.ParseProvider(c.LLM.Provider); err != nil {
		return apperr.Wrap(err, apperr.ErrConfig, err.Error())
	}
	if err := c.LLMClientConfig().Validate(); err != nil {
		return apperr.Wrap(err, apperr.ErrConfig, fmt.Sprintf("invalid llm configuration: %v", err))
	}
	if c.HTTP.MaxUploadBytes <= 0 || c.HTTP.MaxBodyBytes <= 0 {
		return apperr.New(apperr.ErrConfig, "MAX_UPLOAD_BYTES and MAX_BODY_BYTES must be positive")
	}
	if c.Session.IdleTTLMinutes < 0 {
		return apperr.New(apperr.ErrConfig, "SESSION_IDLE_TTL must not be negative")
	}
	if _, err := cron.ParseStandard(c.Session.SweepCron); err != nil {
		return apperr.Wrap(err, apperr.ErrConfig, fmt.Sprintf("invalid SESSION_SWEEP_CRON: %v", err))
	}
	return nil
}

// LLMClientConfig converts the LLM section for llm.NewGenerator
func (c *Config) LLMClientConfig() *llm.Config {
	provider, err := llm.ParseProvider(c.LLM.Provider)
	if err != nil {
		provider = llm.Provider(c.LLM.Provider)
	}
	return &llm.Config{
		Provider:    provider,
		APIKey:      c.LLM.APIKey,
		APIURL:      c.LLM.APIURL,
		Model:       c.LLM.Model,
		MaxTokens:   c.LLM.MaxTokens,
		Temperature: c.LLM.Temperature,
		Timeout:     c.LLM.Timeout,
		SiteURL:     c.LLM.SiteURL,
		AppName:     c.LLM.AppName,
	}
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat gets a float value from environment variables with default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, dropping empty items
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	ret := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			ret = append(ret, item)
		}
	}
	if len(ret) == 0 {
		return defaultValue
	}
	return ret
}
