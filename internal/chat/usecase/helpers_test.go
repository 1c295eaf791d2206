package usecase

import (
	"context"
	"sync"

	"ecomart-chatbot/internal/chat"
	"ecomart-chatbot/internal/conversation"
	"ecomart-chatbot/internal/freight"
	"ecomart-chatbot/internal/router"
	"ecomart-chatbot/pkg/llmprovider"
	pkgLog "ecomart-chatbot/pkg/log"
)

// Mock logger for testing
type mockLogger struct {
	mu    sync.Mutex
	warns []string
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warns = append(m.warns, template)
}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

func (m *mockLogger) warnCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.warns)
}

// mockGateway records every request and answers with respond.
type mockGateway struct {
	mu       sync.Mutex
	requests []llmprovider.Request
	respond  func(req *llmprovider.Request) (*llmprovider.Response, error)
}

func (m *mockGateway) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	m.mu.Lock()
	cp := *req
	cp.Messages = append([]llmprovider.Message(nil), req.Messages...)
	m.requests = append(m.requests, cp)
	m.mu.Unlock()
	return m.respond(req)
}

func (m *mockGateway) calls() []llmprovider.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llmprovider.Request(nil), m.requests...)
}

func reply(content string) func(*llmprovider.Request) (*llmprovider.Response, error) {
	return func(*llmprovider.Request) (*llmprovider.Response, error) {
		return &llmprovider.Response{Content: llmprovider.Message{Role: "assistant", Content: content}}, nil
	}
}

func failWith(err error) func(*llmprovider.Request) (*llmprovider.Response, error) {
	return func(*llmprovider.Request) (*llmprovider.Response, error) {
		return nil, err
	}
}

// mockCalculator returns a fixed amount and records the queries it saw.
type mockCalculator struct {
	mu      sync.Mutex
	amount  freight.Amount
	err     error
	panics  bool
	queries []freight.Query
}

func (m *mockCalculator) Calculate(ctx context.Context, q freight.Query) (freight.Amount, error) {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	m.mu.Unlock()
	if m.panics {
		panic("rate table not loaded")
	}
	return m.amount, m.err
}

type testDeps struct {
	uc    *implUseCase
	llm   *mockGateway
	calc  *mockCalculator
	store *conversation.Store
	log   *mockLogger
}

func newTestUseCase(respond func(*llmprovider.Request) (*llmprovider.Response, error), policy chat.Policy) testDeps {
	l := &mockLogger{}
	llm := &mockGateway{respond: respond}
	calc := &mockCalculator{amount: 2550}
	store := conversation.NewStore(conversation.Config{}, pkgLog.NewNop())
	uc := New(l, llm, router.New(nil, l), calc, store, Config{Policy: policy})
	return testDeps{uc: uc, llm: llm, calc: calc, store: store, log: l}
}
