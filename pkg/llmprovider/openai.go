package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultTimeout bounds a single completion round trip.
	DefaultTimeout = 60 * time.Second

	DefaultOpenAIModel = "gpt-3.5-turbo"
)

// OpenAIConfig configures an OpenAI-compatible provider.
type OpenAIConfig struct {
	Name    string
	APIKey  string
	BaseURL string // empty means api.openai.com
	Model   string
	Timeout time.Duration
}

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIAdapter talks to any OpenAI-compatible chat completion endpoint.
// The underlying client is created once and keeps the same credential for its lifetime.
type OpenAIAdapter struct {
	name  string
	model string
	api   chatCompleter
}

// NewOpenAIAdapter creates a new OpenAI adapter
func NewOpenAIAdapter(cfg OpenAIConfig) (*OpenAIAdapter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("provider %s: API key is required", cfg.Name)
	}
	if cfg.Name == "" {
		cfg.Name = "openai"
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &OpenAIAdapter{
		name:  cfg.Name,
		model: cfg.Model,
		api:   openai.NewClientWithConfig(clientCfg),
	}, nil
}

// GenerateContent implements Provider interface
func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	model := req.Model
	if model == "" {
		model = a.model
	}

	apiReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    toOpenAIMessages(req.Messages),
		Temperature: toOpenAITemperature(req.Temperature),
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONMode {
		apiReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := a.api.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		return nil, &ProviderError{Provider: a.name, Err: classifyError(err)}
	}

	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Provider: a.name, Err: ErrEmptyResponse}
	}

	choice := resp.Choices[0].Message
	modelName := resp.Model
	if modelName == "" {
		modelName = model
	}

	return &Response{
		Content: Message{
			Role:    choice.Role,
			Content: choice.Content,
		},
		ProviderName: a.name,
		ModelName:    modelName,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *OpenAIAdapter) Name() string {
	return a.name
}

// Model returns model name
func (a *OpenAIAdapter) Model() string {
	return a.model
}

func toOpenAIMessages(msgs []Message) []openai.ChatCompletionMessage {
	res := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return res
}

// go-openai drops a zero temperature from the payload (omitempty), which makes the
// API fall back to its default of 1.
func toOpenAITemperature(t float64) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}

func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusError(apiErr.HTTPStatusCode, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusError(reqErr.HTTPStatusCode, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrProviderTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrProviderTimeout, err)
	}

	return fmt.Errorf("%w: %w", ErrUpstream, err)
}

func statusError(code int, err error) error {
	kind := ErrUpstream
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = ErrProviderUnauthorized
	case http.StatusTooManyRequests:
		kind = ErrProviderRateLimited
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		kind = ErrProviderTimeout
	}
	return fmt.Errorf("%w: %w", kind, err)
}
