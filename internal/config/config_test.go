package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MimeLyc/srt-translator/internal/apperr"
	"github.com/MimeLyc/srt-translator/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"LLM_PROVIDER", "LLM_API_KEY", "API_KEY", "LLM_API_URL", "LLM_MODEL",
	"LLM_MAX_TOKENS", "LLM_TEMPERATURE", "LLM_TIMEOUT", "LLM_SITE_URL", "LLM_APP_NAME",
	"HTTP_ADDR", "UI_ENABLED", "UI_STATIC_DIR", "CORS_ORIGINS", "MAX_UPLOAD_BYTES", "MAX_BODY_BYTES",
	"SESSION_IDLE_TTL", "SESSION_SWEEP_CRON", "LOG_LEVEL", "LOG_FILE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestNewFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_API_KEY", "test-key")

	cfg, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, llm.DefaultGeminiModel, cfg.LLM.Model)
	assert.Equal(t, 0.2, cfg.LLM.Temperature)
	assert.Equal(t, 120, cfg.LLM.Timeout)
	assert.Empty(t, cfg.LLM.APIURL)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.False(t, cfg.HTTP.UIEnabled)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, int64(10<<20), cfg.HTTP.MaxUploadBytes)
	assert.Equal(t, 60, cfg.Session.IdleTTLMinutes)
	assert.Equal(t, "@every 5m", cfg.Session.SweepCron)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestNewFromEnv_MissingKeyIsConfigError(t *testing.T) {
	clearEnv(t)

	_, err := NewFromEnv()
	require.Error(t, err)
	assert.True(t, apperr.IsType(err, apperr.ErrConfig))
	assert.Contains(t, apperr.Message(err), "LLM_API_KEY")
}

func TestNewFromEnv_APIKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "legacy-key")

	cfg, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "legacy-key", cfg.LLM.APIKey)

	t.Setenv("LLM_API_KEY", "primary-key")
	cfg, err = NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "primary-key", cfg.LLM.APIKey)
}

func TestNewFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_API_KEY", "k")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("LLM_MAX_TOKENS", "4000")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("UI_ENABLED", "true")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("MAX_UPLOAD_BYTES", "2048")
	t.Setenv("SESSION_IDLE_TTL", "0")
	t.Setenv("SESSION_SWEEP_CRON", "*/10 * * * *")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, defaultOpenAIURL, cfg.LLM.APIURL)
	assert.Equal(t, defaultOpenAIModel, cfg.LLM.Model)
	assert.Equal(t, 0.7, cfg.LLM.Temperature)
	assert.Equal(t, 4000, cfg.LLM.MaxTokens)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.True(t, cfg.HTTP.UIEnabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, int64(2048), cfg.HTTP.MaxUploadBytes)
	assert.Equal(t, 0, cfg.Session.IdleTTLMinutes)
	assert.Equal(t, "*/10 * * * *", cfg.Session.SweepCron)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestNewFromEnv_InvalidValuesKeepDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_API_KEY", "k")
	t.Setenv("LLM_TIMEOUT", "soon")
	t.Setenv("UI_ENABLED", "maybe")

	cfg, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.LLM.Timeout)
	assert.False(t, cfg.HTTP.UIEnabled)
}

func TestNewFromEnv_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown provider", "LLM_PROVIDER", "claude-direct"},
		{"temperature too high", "LLM_TEMPERATURE", "3"},
		{"negative ttl", "SESSION_IDLE_TTL", "-1"},
		{"bad cron", "SESSION_SWEEP_CRON", "every now and then"},
		{"zero upload limit", "MAX_UPLOAD_BYTES", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("LLM_API_KEY", "k")
			t.Setenv(tt.key, tt.val)

			_, err := NewFromEnv()
			require.Error(t, err)
			assert.True(t, apperr.IsType(err, apperr.ErrConfig))
		})
	}
}

func TestLoad_TOMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[llm]
provider = "gemini"
api_key = "file-key"
model = "gemini-2.0-flash"
temperature = 0.4

[http]
addr = ":7070"
cors_origins = ["http://ui.test"]

[session]
idle_ttl_minutes = 15
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("HTTP_ADDR", ":9090")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.LLM.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, 0.4, cfg.LLM.Temperature)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, []string{"http://ui.test"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 15, cfg.Session.IdleTTLMinutes)
	assert.Equal(t, "@every 5m", cfg.Session.SweepCron)
}

func TestLoad_FileErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_API_KEY", "k")

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.True(t, apperr.IsType(err, apperr.ErrConfig))

	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[llm\nmodel = "), 0644))
	_, err = Load(path)
	require.Error(t, err)
	assert.True(t, apperr.IsType(err, apperr.ErrConfig))
}

func TestOptionsApplyAfterEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_API_KEY", "k")
	t.Setenv("HTTP_ADDR", ":1111")

	cfg, err := NewFromEnv(func(c *Config) { c.HTTP.Addr = ":2222" })
	require.NoError(t, err)
	assert.Equal(t, ":2222", cfg.HTTP.Addr)
}

func TestLLMClientConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_API_KEY", "k")
	t.Setenv("LLM_APP_NAME", "srt-translator")

	cfg, err := NewFromEnv()
	require.NoError(t, err)

	client := cfg.LLMClientConfig()
	assert.Equal(t, llm.ProviderGemini, client.Provider)
	assert.Equal(t, "k", client.APIKey)
	assert.Equal(t, "srt-translator", client.AppName)
	assert.NoError(t, client.Validate())
}
