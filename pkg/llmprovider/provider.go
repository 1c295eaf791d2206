package llmprovider

import "context"

// Provider is one chat completion backend.
type Provider interface {
	// GenerateContent performs one completion round trip and returns the first choice.
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	Name() string
	// Model is used when Request.Model is empty.
	Model() string
}

// Request is a chat completion request independent of the vendor wire format.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int  // 0: provider default
	JSONMode    bool // ask for a bare JSON object
}

// Message is one chat turn. Role is "system", "user" or "assistant".
type Message struct {
	Role    string
	Content string
}

// Response is the first choice of a completion.
type Response struct {
	Content      Message
	ProviderName string
	ModelName    string
	Usage        *Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
