package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Chatbot specifics
	Chat         ChatConfig
	Conversation ConversationConfig
	Freight      FreightConfig
	Telegram     TelegramConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	RateLimitPerMin int
	SecureCookie    bool
	TrustedProxies  []string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"` // Global timeout for the entire fallback chain
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

type ChatConfig struct {
	FreightKeywords    []string
	ExtractionModel    string // empty: provider default
	ChatModel          string // empty: provider default
	ExtractionJSONMode bool
	ErrorPolicy        string // legacy, fallback or propagate
}

type ConversationConfig struct {
	MaxSessions int
	SessionTTL  time.Duration
}

type FreightConfig struct {
	MaxQuantity int
	Rates       map[string]int64 // region -> cents per product
}

type TelegramConfig struct {
	BotToken    string
	WebhookURL  string
	SecretToken string
	NgrokAPIURL string // queried for a public URL when WebhookURL is empty
}

var errorPolicies = []string{"legacy", "fallback", "propagate"}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, . and /etc/app/
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/app/")

	return load(v)
}

// LoadFile loads configuration from an explicit file path.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.RateLimitPerMin = v.GetInt("http_server.rate_limit_per_min")
	cfg.HTTPServer.SecureCookie = v.GetBool("http_server.secure_cookie")
	cfg.HTTPServer.TrustedProxies = splitList(v.Get("http_server.trusted_proxies"))
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = v.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = v.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = v.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = v.GetString("llm.max_total_timeout")
	cfg.LLM.Providers = loadProviders(v)

	// A bare OPENAI_API_KEY is enough to run with a single OpenAI provider.
	if len(cfg.LLM.Providers) == 0 {
		if key := v.GetString("openai_api_key"); key != "" {
			cfg.LLM.Providers = []ProviderConfig{{
				Name:     "openai",
				Enabled:  true,
				Priority: 1,
				APIKey:   key,
				Model:    v.GetString("openai_model"),
				Timeout:  "60s",
			}}
		}
	}

	// Chat
	cfg.Chat.FreightKeywords = splitList(v.Get("chat.freight_keywords"))
	cfg.Chat.ExtractionModel = v.GetString("chat.extraction_model")
	cfg.Chat.ChatModel = v.GetString("chat.chat_model")
	cfg.Chat.ExtractionJSONMode = v.GetBool("chat.extraction_json_mode")
	cfg.Chat.ErrorPolicy = strings.ToLower(v.GetString("chat.error_policy"))

	// Conversation store
	cfg.Conversation.MaxSessions = v.GetInt("conversation.max_sessions")
	cfg.Conversation.SessionTTL = v.GetDuration("conversation.session_ttl")

	// Freight table
	cfg.Freight.MaxQuantity = v.GetInt("freight.max_quantity")
	rates, err := loadRates(v.GetStringMap("freight.rates"))
	if err != nil {
		return nil, err
	}
	cfg.Freight.Rates = rates

	// Telegram
	cfg.Telegram.BotToken = v.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = v.GetString("telegram.webhook_url")
	cfg.Telegram.SecretToken = v.GetString("telegram.secret_token")
	cfg.Telegram.NgrokAPIURL = v.GetString("telegram.ngrok_api_url")
	if tgToken := v.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("http_server.rate_limit_per_min", 60)
	v.SetDefault("http_server.secure_cookie", false)
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "development")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	// LLM defaults: one provider, one round trip per completion
	v.SetDefault("llm.fallback_enabled", false)
	v.SetDefault("llm.retry_attempts", 1)
	v.SetDefault("llm.retry_delay", "1s")
	v.SetDefault("llm.max_total_timeout", "60s")
	v.SetDefault("openai_model", "gpt-3.5-turbo")

	v.SetDefault("chat.freight_keywords", []string{"frete"})
	v.SetDefault("chat.extraction_json_mode", false)
	v.SetDefault("chat.error_policy", "legacy")

	v.SetDefault("conversation.max_sessions", 1000)
	v.SetDefault("conversation.session_ttl", "30m")

	v.SetDefault("freight.max_quantity", 1000)
}

// loadProviders reads llm.providers, expanding ${VAR} api keys.
func loadProviders(v *viper.Viper) []ProviderConfig {
	if !v.IsSet("llm.providers") {
		return nil
	}

	providersList, ok := v.Get("llm.providers").([]interface{})
	if !ok {
		return nil
	}

	var providers []ProviderConfig
	for _, p := range providersList {
		providerMap, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		providers = append(providers, ProviderConfig{
			Name:     getStringFromMap(providerMap, "name"),
			Enabled:  getBoolFromMap(providerMap, "enabled"),
			Priority: getIntFromMap(providerMap, "priority"),
			APIKey:   expandEnvVar(v, getStringFromMap(providerMap, "api_key")),
			BaseURL:  getStringFromMap(providerMap, "base_url"),
			Model:    getStringFromMap(providerMap, "model"),
			Timeout:  getStringFromMap(providerMap, "timeout"),
		})
	}
	return providers
}

func loadRates(raw map[string]interface{}) (map[string]int64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	rates := make(map[string]int64, len(raw))
	for region, val := range raw {
		cents, err := cast.ToInt64E(val)
		if err != nil {
			return nil, fmt.Errorf("freight.rates.%s: %w", region, err)
		}
		rates[strings.ToLower(region)] = cents
	}
	return rates, nil
}

// splitList accepts a YAML list or a comma separated string (from the environment).
func splitList(raw interface{}) []string {
	var items []string
	if s, ok := raw.(string); ok {
		items = strings.Split(s, ",")
	} else {
		items = cast.ToStringSlice(raw)
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(v *viper.Viper, value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := v.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := v.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		return ""
	}

	return value
}

// Validate checks the configuration for values the service cannot start with.
func (cfg *Config) Validate() error {
	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return err
	}

	validPolicy := false
	for _, p := range errorPolicies {
		if cfg.Chat.ErrorPolicy == p {
			validPolicy = true
		}
	}
	if !validPolicy {
		return fmt.Errorf("chat.error_policy must be one of %v, got %q", errorPolicies, cfg.Chat.ErrorPolicy)
	}

	if cfg.Conversation.MaxSessions <= 0 {
		return fmt.Errorf("conversation.max_sessions must be positive")
	}
	if cfg.Conversation.SessionTTL <= 0 {
		return fmt.Errorf("conversation.session_ttl must be positive")
	}
	if cfg.Freight.MaxQuantity <= 0 {
		return fmt.Errorf("freight.max_quantity must be positive")
	}
	return nil
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - set OPENAI_API_KEY or add an llm.providers section to config.yaml")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}

		if provider.Enabled {
			enabledCount++

			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}

			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true

			if provider.APIKey == "" {
				return fmt.Errorf("provider %s: api_key is required", provider.Name)
			}
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	if _, err := time.ParseDuration(cfg.RetryDelay); cfg.RetryDelay != "" && err != nil {
		return fmt.Errorf("llm.retry_delay: %w", err)
	}
	if _, err := time.ParseDuration(cfg.MaxTotalTimeout); cfg.MaxTotalTimeout != "" && err != nil {
		return fmt.Errorf("llm.max_total_timeout: %w", err)
	}

	return nil
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
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
