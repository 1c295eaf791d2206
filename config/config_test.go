package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	path := writeConfig(t, `
llm:
  providers:
    - name: openai
      enabled: true
      priority: 1
      api_key: sk-test
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPServer.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.HTTPServer.Port)
	}
	if cfg.HTTPServer.RateLimitPerMin != 60 {
		t.Errorf("expected rate limit 60, got %d", cfg.HTTPServer.RateLimitPerMin)
	}
	if cfg.Chat.ErrorPolicy != "legacy" {
		t.Errorf("expected legacy policy, got %q", cfg.Chat.ErrorPolicy)
	}
	if len(cfg.Chat.FreightKeywords) != 1 || cfg.Chat.FreightKeywords[0] != "frete" {
		t.Errorf("expected [frete], got %v", cfg.Chat.FreightKeywords)
	}
	if cfg.Conversation.MaxSessions != 1000 {
		t.Errorf("expected 1000 sessions, got %d", cfg.Conversation.MaxSessions)
	}
	if cfg.Conversation.SessionTTL != 30*time.Minute {
		t.Errorf("expected 30m ttl, got %s", cfg.Conversation.SessionTTL)
	}
	if cfg.Freight.MaxQuantity != 1000 {
		t.Errorf("expected max quantity 1000, got %d", cfg.Freight.MaxQuantity)
	}
	if cfg.Freight.Rates != nil {
		t.Errorf("expected no rate overrides, got %v", cfg.Freight.Rates)
	}
	if cfg.LLM.RetryAttempts != 1 || cfg.LLM.FallbackEnabled {
		t.Errorf("expected single attempt without fallback, got %+v", cfg.LLM)
	}
}

func TestLoadFile_FullFile(t *testing.T) {
	t.Setenv("ECOMART_TEST_KEY", "sk-from-env")

	path := writeConfig(t, `
http_server:
  port: 9090
  rate_limit_per_min: 10
llm:
  fallback_enabled: true
  retry_attempts: 2
  providers:
    - name: openai
      enabled: true
      priority: 1
      api_key: ${ECOMART_TEST_KEY}
      model: gpt-4o-mini
      timeout: 30s
    - name: local
      enabled: true
      priority: 2
      api_key: local-key
      base_url: http://localhost:11434/v1
chat:
  freight_keywords: [frete, entrega]
  extraction_json_mode: true
  error_policy: Fallback
conversation:
  max_sessions: 5
  session_ttl: 2m
freight:
  max_quantity: 50
  rates:
    sudeste: 600
    Norte: "900"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPServer.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTPServer.Port)
	}
	if len(cfg.LLM.Providers) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(cfg.LLM.Providers))
	}
	if got := cfg.LLM.Providers[0].APIKey; got != "sk-from-env" {
		t.Errorf("expected expanded api key, got %q", got)
	}
	if got := cfg.LLM.Providers[1].BaseURL; got != "http://localhost:11434/v1" {
		t.Errorf("unexpected base url %q", got)
	}
	if cfg.Chat.ErrorPolicy != "fallback" {
		t.Errorf("expected policy to be lower-cased, got %q", cfg.Chat.ErrorPolicy)
	}
	if len(cfg.Chat.FreightKeywords) != 2 {
		t.Errorf("expected 2 keywords, got %v", cfg.Chat.FreightKeywords)
	}
	if !cfg.Chat.ExtractionJSONMode {
		t.Error("expected json mode enabled")
	}
	if cfg.Conversation.SessionTTL != 2*time.Minute {
		t.Errorf("expected 2m ttl, got %s", cfg.Conversation.SessionTTL)
	}
	if cfg.Freight.Rates["sudeste"] != 600 || cfg.Freight.Rates["norte"] != 900 {
		t.Errorf("unexpected rates %v", cfg.Freight.Rates)
	}
}

func TestLoadFile_OpenAIKeyShortcut(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-shortcut")

	cfg, err := LoadFile(writeConfig(t, "environment:\n  name: test\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.LLM.Providers) != 1 {
		t.Fatalf("expected 1 provider, got %d", len(cfg.LLM.Providers))
	}
	p := cfg.LLM.Providers[0]
	if p.Name != "openai" || p.APIKey != "sk-shortcut" || p.Priority != 1 || !p.Enabled || p.Model != "gpt-3.5-turbo" {
		t.Errorf("unexpected provider %+v", p)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	tests := []struct {
		name string
		body string
	}{
		{
			name: "no providers",
			body: "environment:\n  name: test\n",
		},
		{
			name: "bad policy",
			body: `
llm:
  providers:
    - {name: openai, enabled: true, priority: 1, api_key: k}
chat:
  error_policy: ignore
`,
		},
		{
			name: "bad rate",
			body: `
llm:
  providers:
    - {name: openai, enabled: true, priority: 1, api_key: k}
freight:
  rates:
    sul: cheap
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFile(writeConfig(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidateLLMConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LLMConfig
		wantErr bool
	}{
		{
			name: "valid",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "openai", Enabled: true, Priority: 1, APIKey: "k"},
			}, RetryDelay: "1s", MaxTotalTimeout: "60s"},
		},
		{
			name:    "no providers",
			cfg:     LLMConfig{},
			wantErr: true,
		},
		{
			name: "missing name",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Enabled: true, Priority: 1, APIKey: "k"},
			}},
			wantErr: true,
		},
		{
			name: "duplicate priority",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "a", Enabled: true, Priority: 1, APIKey: "k"},
				{Name: "b", Enabled: true, Priority: 1, APIKey: "k"},
			}},
			wantErr: true,
		},
		{
			name: "missing api key",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "a", Enabled: true, Priority: 1},
			}},
			wantErr: true,
		},
		{
			name: "all disabled",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "a", Priority: 1, APIKey: "k"},
			}},
			wantErr: true,
		},
		{
			name: "bad retry delay",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "a", Enabled: true, Priority: 1, APIKey: "k"},
			}, RetryDelay: "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLLMConfig(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList("frete, entrega ,,envio")
	want := []string{"frete", "entrega", "envio"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
