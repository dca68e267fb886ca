package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"REALTICKER_ENV", "REALTICKER_HOST", "REALTICKER_PORT", "REALTICKER_LOG_LEVEL",
		"REALTICKER_ANALYST_PROVIDER", "HUGGINGFACE_API_KEY", "HUGGINGFACE_API_URL",
		"GEMINI_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.Equal(t, ProviderHuggingFace, cfg.Analyst.Provider)
	assert.Equal(t, DefaultHuggingFaceURL, cfg.Clients.HuggingFace.APIURL)
	assert.Equal(t, 6, cfg.Market.HistoryMonths)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("REALTICKER_PORT", "9090")
	t.Setenv("REALTICKER_HOST", "127.0.0.1")
	t.Setenv("REALTICKER_ANALYST_PROVIDER", " Claude ")
	t.Setenv("HUGGINGFACE_API_KEY", "hf_abc")
	t.Setenv("HUGGINGFACE_API_URL", "http://localhost:9999/model")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, ProviderClaude, cfg.Analyst.Provider)
	assert.Equal(t, "hf_abc", cfg.Clients.HuggingFace.APIKey)
	assert.Equal(t, "http://localhost:9999/model", cfg.Clients.HuggingFace.APIURL)
	assert.Equal(t, "sk-ant", cfg.Clients.Claude.APIKey)
}

func TestConfig_InvalidPortEnvIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("REALTICKER_PORT", "not-a-port")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "realticker.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = 8500

[analyst]
provider = "gemini"
timeout = "5s"

[market]
history_months = 12
`), 0644))
	t.Setenv("REALTICKER_PORT", "8600")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8600, cfg.Server.Port)
	assert.Equal(t, ProviderGemini, cfg.Analyst.Provider)
	assert.Equal(t, 5*time.Second, cfg.Analyst.GetTimeout())
	assert.Equal(t, 12, cfg.Market.HistoryMonths)
	// untouched sections keep their defaults
	assert.Equal(t, 300, cfg.Clients.HuggingFace.MaxNewTokens)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"bad provider", "[analyst]\nprovider = \"openai\"\n"},
		{"port out of range", "[server]\nport = 70000\n"},
		{"history months", "[market]\nhistory_months = 0\n"},
		{"temperature", "[clients.huggingface]\ntemperature = 3.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := filepath.Join(t.TempDir(), "realticker.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.toml), 0644))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_ParseError(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "realticker.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\nport = "), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestAnalystConfig_GetTimeout(t *testing.T) {
	cases := map[string]time.Duration{
		"10s":  10 * time.Second,
		"":     30 * time.Second,
		"junk": 30 * time.Second,
		"-5s":  30 * time.Second,
	}
	for in, want := range cases {
		c := AnalystConfig{Timeout: in}
		assert.Equal(t, want, c.GetTimeout(), in)
	}
}

func TestHuggingFaceConfig_HasKey(t *testing.T) {
	assert.False(t, (&HuggingFaceConfig{}).HasKey())
	assert.False(t, (&HuggingFaceConfig{APIKey: "  "}).HasKey())
	assert.False(t, (&HuggingFaceConfig{APIKey: PlaceholderHuggingFaceKey}).HasKey())
	assert.True(t, (&HuggingFaceConfig{APIKey: "hf_real"}).HasKey())
}

func TestLoadConfig_ProviderSamplingIsPerClient(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "realticker.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[clients.huggingface]
max_new_tokens = 111
temperature = 0.1

[clients.gemini]
max_tokens = 222
temperature = 0.2
top_p = 0.5

[clients.claude]
max_tokens = 333
temperature = 0.3
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 111, cfg.Clients.HuggingFace.MaxNewTokens)
	assert.Equal(t, 222, cfg.Clients.Gemini.MaxTokens)
	assert.Equal(t, 0.2, cfg.Clients.Gemini.Temperature)
	assert.Equal(t, 0.5, cfg.Clients.Gemini.TopP)
	assert.Equal(t, 333, cfg.Clients.Claude.MaxTokens)
	assert.Equal(t, 0.3, cfg.Clients.Claude.Temperature)
}

func TestLoadConfig_ClaudeTemperatureRange(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "realticker.toml")
	require.NoError(t, os.WriteFile(path, []byte("[clients.claude]\ntemperature = 1.5\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
