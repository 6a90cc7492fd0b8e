package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrConfigMissing is returned when a required configuration entry is absent.
var ErrConfigMissing = errors.New("required configuration missing")

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Messaging platform
	Line LineConfig

	// Conversation state
	Session SessionConfig

	// Grounding
	Search      SearchConfig
	AzureSearch AzureSearchConfig
	Qdrant      QdrantConfig
	Voyage      VoyageConfig
	Grounding   GroundingConfig

	// Completion
	LLM    LLMConfig
	Prompt PromptConfig

	// Webhooks
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int    `validate:"gt=0"`
	Mode string `validate:"required"`
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type LineConfig struct {
	ChannelSecret      string `validate:"required"`
	ChannelAccessToken string `validate:"required"`
	APIURL             string
	WebhookURL         string // registered with LINE at startup when set
	NgrokAPIURL        string // ngrok local API used to discover WebhookURL
}

type SessionConfig struct {
	Backend      string `validate:"oneof=memory badger"`
	MaxExchanges int    `validate:"gt=0"`
	TTLSeconds   int    `validate:"gte=0"`
	MemorySize   int    `validate:"gt=0"`
	BadgerPath   string `validate:"required_if=Backend badger BadgerInMem false"`
	BadgerInMem  bool
	TopicPattern string
}

// SearchConfig selects which search collaborators are queried, in order.
type SearchConfig struct {
	Backends []string `validate:"dive,oneof=azure qdrant"`
	TopN     int      `validate:"gt=0"`
}

type AzureSearchConfig struct {
	Enabled        bool
	Endpoint       string `validate:"required_if=Enabled true"`
	Key            string `validate:"required_if=Enabled true"`
	Index          string `validate:"required_if=Enabled true"`
	SecondaryIndex string
	APIVersion     string
	TitleField     string
	ContentField   string
	CategoryField  string
}

type QdrantConfig struct {
	Enabled        bool
	URL            string `validate:"required_if=Enabled true"`
	CollectionName string `validate:"required_if=Enabled true"`
	APIKey         string
	VectorSize     int
}

type VoyageConfig struct {
	Enabled bool
	APIKey  string `validate:"required_if=Enabled true"`
	Model   string
}

// KeywordFallback maps query keywords to a fixed grounding message.
type KeywordFallback struct {
	Keywords []string
	Message  string
}

type GroundingConfig struct {
	FallbackMessage  string
	KeywordFallbacks []KeywordFallback
	CategoryPrefixes map[string]string
}

// LLMConfig holds configuration for the LLM provider abstraction layer.
type LLMConfig struct {
	Providers        []ProviderConfig `validate:"required,min=1,dive"`
	FallbackEnabled  bool
	MaxTotalTimeout  string
	MaxTokens        int `validate:"gt=0"`
	Temperature      float64
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
}

// ProviderConfig holds configuration for a single LLM provider.
type ProviderConfig struct {
	Name       string `validate:"required,oneof=azure openai deepseek"`
	Enabled    bool
	Priority   int
	APIKey     string `validate:"required_if=Enabled true"`
	BaseURL    string `validate:"required_if=Name azure"`
	Model      string `validate:"required"`
	APIVersion string
	Timeout    string
}

type PromptConfig struct {
	SystemInstruction  string
	GroundingPlacement string `validate:"oneof=system assistant"`
	QuickReplies       bool
}

type WebhookConfig struct {
	AllowedIPs      []string
	RateLimitPerMin int `validate:"gt=0"`
	// TrustedProxies may set X-Forwarded-For / X-Real-IP. Empty trusts none.
	TrustedProxies []string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, . and /etc/app/.
// A .env file in the working directory is loaded into the process env first.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/app/")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := fromViper(v)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// LINE
	cfg.Line.ChannelSecret = v.GetString("line.channel_secret")
	cfg.Line.ChannelAccessToken = v.GetString("line.channel_access_token")
	cfg.Line.APIURL = v.GetString("line.api_url")
	cfg.Line.WebhookURL = v.GetString("line.webhook_url")
	cfg.Line.NgrokAPIURL = v.GetString("line.ngrok_api_url")

	// Session
	cfg.Session.Backend = v.GetString("session.backend")
	cfg.Session.MaxExchanges = v.GetInt("session.max_exchanges")
	cfg.Session.TTLSeconds = v.GetInt("session.ttl_seconds")
	cfg.Session.MemorySize = v.GetInt("session.memory_size")
	cfg.Session.BadgerPath = v.GetString("session.badger_path")
	cfg.Session.BadgerInMem = v.GetBool("session.badger_in_memory")
	cfg.Session.TopicPattern = v.GetString("session.topic_pattern")

	// Search
	cfg.Search.Backends = splitList(v.GetStringSlice("search.backends"))
	cfg.Search.TopN = v.GetInt("search.top_n")

	cfg.AzureSearch.Endpoint = v.GetString("azure_search.endpoint")
	cfg.AzureSearch.Key = v.GetString("azure_search.key")
	cfg.AzureSearch.Index = v.GetString("azure_search.index")
	cfg.AzureSearch.SecondaryIndex = v.GetString("azure_search.secondary_index")
	cfg.AzureSearch.APIVersion = v.GetString("azure_search.api_version")
	cfg.AzureSearch.TitleField = v.GetString("azure_search.title_field")
	cfg.AzureSearch.ContentField = v.GetString("azure_search.content_field")
	cfg.AzureSearch.CategoryField = v.GetString("azure_search.category_field")
	cfg.AzureSearch.Enabled = contains(cfg.Search.Backends, "azure")

	cfg.Qdrant.URL = v.GetString("qdrant.url")
	cfg.Qdrant.CollectionName = v.GetString("qdrant.collection_name")
	cfg.Qdrant.APIKey = v.GetString("qdrant.api_key")
	cfg.Qdrant.VectorSize = v.GetInt("qdrant.vector_size")
	cfg.Qdrant.Enabled = contains(cfg.Search.Backends, "qdrant")

	cfg.Voyage.APIKey = v.GetString("voyage.api_key")
	cfg.Voyage.Model = v.GetString("voyage.model")
	cfg.Voyage.Enabled = cfg.Qdrant.Enabled

	// Grounding
	cfg.Grounding.FallbackMessage = v.GetString("grounding.fallback_message")
	cfg.Grounding.CategoryPrefixes = v.GetStringMapString("grounding.category_prefixes")
	cfg.Grounding.KeywordFallbacks = keywordFallbacks(v.Get("grounding.keyword_fallbacks"))

	// LLM
	cfg.LLM.FallbackEnabled = v.GetBool("llm.fallback_enabled")
	cfg.LLM.MaxTotalTimeout = v.GetString("llm.max_total_timeout")
	cfg.LLM.MaxTokens = v.GetInt("llm.max_tokens")
	cfg.LLM.Temperature = v.GetFloat64("llm.temperature")
	cfg.LLM.TopP = v.GetFloat64("llm.top_p")
	cfg.LLM.FrequencyPenalty = v.GetFloat64("llm.frequency_penalty")
	cfg.LLM.PresencePenalty = v.GetFloat64("llm.presence_penalty")
	cfg.LLM.Providers = providers(v)

	// Prompt
	cfg.Prompt.SystemInstruction = v.GetString("prompt.system_instruction")
	cfg.Prompt.GroundingPlacement = v.GetString("prompt.grounding_placement")
	cfg.Prompt.QuickReplies = v.GetBool("prompt.quick_replies")

	// Webhooks
	cfg.Webhook.RateLimitPerMin = v.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.AllowedIPs = splitList([]string{v.GetString("webhook.allowed_ips")})
	cfg.Webhook.TrustedProxies = splitList([]string{v.GetString("webhook.trusted_proxies")})

	return cfg
}

// providers reads llm.providers from the config file. When none are listed,
// a single Azure OpenAI provider is built from AZURE_OPENAI_* variables.
func providers(v *viper.Viper) []ProviderConfig {
	var out []ProviderConfig

	if providersList, ok := v.Get("llm.providers").([]interface{}); ok {
		for _, p := range providersList {
			providerMap, ok := p.(map[string]interface{})
			if !ok {
				continue
			}
			out = append(out, ProviderConfig{
				Name:       getStringFromMap(providerMap, "name"),
				Enabled:    getBoolFromMap(providerMap, "enabled"),
				Priority:   getIntFromMap(providerMap, "priority"),
				APIKey:     expandEnvVar(v, getStringFromMap(providerMap, "api_key")),
				BaseURL:    expandEnvVar(v, getStringFromMap(providerMap, "base_url")),
				Model:      getStringFromMap(providerMap, "model"),
				APIVersion: getStringFromMap(providerMap, "api_version"),
				Timeout:    getStringFromMap(providerMap, "timeout"),
			})
		}
	}

	if len(out) == 0 && v.GetString("azure_openai.endpoint") != "" {
		out = append(out, ProviderConfig{
			Name:       "azure",
			Enabled:    true,
			Priority:   1,
			APIKey:     v.GetString("azure_openai.api_key"),
			BaseURL:    v.GetString("azure_openai.endpoint"),
			Model:      v.GetString("azure_openai.deployment"),
			APIVersion: v.GetString("azure_openai.api_version"),
			Timeout:    v.GetString("azure_openai.timeout"),
		})
	}

	return out
}

func keywordFallbacks(raw interface{}) []KeywordFallback {
	list, ok := raw.([]interface{})
	if !ok {
		return nil
	}

	out := make([]KeywordFallback, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		var keywords []string
		if kws, ok := m["keywords"].([]interface{}); ok {
			for _, kw := range kws {
				if s, ok := kw.(string); ok && s != "" {
					keywords = append(keywords, s)
				}
			}
		}
		out = append(out, KeywordFallback{
			Keywords: keywords,
			Message:  getStringFromMap(m, "message"),
		})
	}
	return out
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8000)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.max_exchanges", 5)
	v.SetDefault("session.ttl_seconds", 1800)
	v.SetDefault("session.memory_size", 10000)
	v.SetDefault("session.badger_path", "./data/sessions")

	v.SetDefault("search.backends", []string{"azure"})
	v.SetDefault("search.top_n", 5)
	v.SetDefault("azure_search.api_version", "2024-07-01")
	v.SetDefault("azure_search.title_field", "title")
	v.SetDefault("azure_search.content_field", "chunk")
	v.SetDefault("azure_search.category_field", "category")
	v.SetDefault("qdrant.collection_name", "knowledge")
	v.SetDefault("qdrant.vector_size", 1024)

	v.SetDefault("azure_openai.api_version", "2024-08-01-preview")
	v.SetDefault("azure_openai.deployment", "gpt-4o-mini")
	v.SetDefault("llm.fallback_enabled", true)
	v.SetDefault("llm.max_total_timeout", "60s")
	v.SetDefault("llm.max_tokens", 800)
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.top_p", 0.95)
	v.SetDefault("llm.frequency_penalty", 0)
	v.SetDefault("llm.presence_penalty", 0)

	v.SetDefault("prompt.grounding_placement", "system")
	v.SetDefault("prompt.quick_replies", true)

	v.SetDefault("webhook.rate_limit_per_min", 600)
}

func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrConfigMissing, strings.Join(fields, ", "))
}

// expandEnvVar expands values in the format ${VAR_NAME}.
func expandEnvVar(v *viper.Viper, value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}

	envVar := value[2 : len(value)-1]
	if envValue := v.GetString(strings.ToLower(envVar)); envValue != "" {
		return envValue
	}
	return os.Getenv(envVar)
}

func splitList(values []string) []string {
	var out []string
	for _, raw := range values {
		for _, item := range strings.Split(raw, ",") {
			item = strings.TrimSpace(item)
			if item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
