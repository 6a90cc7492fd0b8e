package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("LINE_CHANNEL_SECRET", "secret")
	t.Setenv("LINE_CHANNEL_ACCESS_TOKEN", "token")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
	t.Setenv("AZURE_OPENAI_API_KEY", "aoai-key")
	t.Setenv("AZURE_SEARCH_ENDPOINT", "https://example.search.windows.net")
	t.Setenv("AZURE_SEARCH_KEY", "search-key")
	t.Setenv("AZURE_SEARCH_INDEX", "docs")
}

func TestLoad_FromEnvironment(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Line.ChannelSecret)
	assert.Equal(t, "docs", cfg.AzureSearch.Index)
	assert.True(t, cfg.AzureSearch.Enabled)
	assert.Equal(t, 5, cfg.Session.MaxExchanges)
	assert.Equal(t, 1800, cfg.Session.TTLSeconds)
	assert.Equal(t, 800, cfg.LLM.MaxTokens)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 1e-9)
	assert.Empty(t, cfg.Webhook.TrustedProxies)

	require.Len(t, cfg.LLM.Providers, 1)
	p := cfg.LLM.Providers[0]
	assert.Equal(t, "azure", p.Name)
	assert.Equal(t, "aoai-key", p.APIKey)
	assert.Equal(t, "https://example.openai.azure.com", p.BaseURL)
	assert.Equal(t, "2024-08-01-preview", p.APIVersion)
}

func TestLoad_MissingRequiredEntries(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		wantKey string
	}{
		{name: "line secret", unset: "LINE_CHANNEL_SECRET", wantKey: "Line.ChannelSecret"},
		{name: "line token", unset: "LINE_CHANNEL_ACCESS_TOKEN", wantKey: "Line.ChannelAccessToken"},
		{name: "search index", unset: "AZURE_SEARCH_INDEX", wantKey: "AzureSearch.Index"},
		{name: "completion endpoint", unset: "AZURE_OPENAI_ENDPOINT", wantKey: "LLM.Providers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")
			os.Unsetenv(tt.unset)

			_, err := Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfigMissing)
			assert.Contains(t, err.Error(), tt.wantKey)
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
session:
  backend: badger
  badger_in_memory: true
search:
  backends: [azure, qdrant]
webhook:
  trusted_proxies: "10.0.0.0/8, 172.16.0.1"
qdrant:
  url: http://qdrant:6333
voyage:
  api_key: voyage-key
grounding:
  keyword_fallbacks:
    - keywords: [product, สินค้า]
      message: product fallback
    - keywords: [help]
      message: help fallback
  category_prefixes:
    product: "[P]"
llm:
  providers:
    - name: openai
      enabled: true
      priority: 1
      api_key: ${OPENAI_TEST_KEY}
      model: gpt-4o-mini
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("OPENAI_TEST_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "badger", cfg.Session.Backend)
	assert.True(t, cfg.Session.BadgerInMem)
	assert.Equal(t, []string{"azure", "qdrant"}, cfg.Search.Backends)
	assert.True(t, cfg.Qdrant.Enabled)
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.1"}, cfg.Webhook.TrustedProxies)

	require.Len(t, cfg.Grounding.KeywordFallbacks, 2)
	assert.Equal(t, []string{"product", "สินค้า"}, cfg.Grounding.KeywordFallbacks[0].Keywords)
	assert.Equal(t, "help fallback", cfg.Grounding.KeywordFallbacks[1].Message)
	assert.Equal(t, "[P]", cfg.Grounding.CategoryPrefixes["product"])

	require.Len(t, cfg.LLM.Providers, 1)
	assert.Equal(t, "sk-test", cfg.LLM.Providers[0].APIKey)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a, b", " c ", ""}))
	assert.Nil(t, splitList(nil))
}
