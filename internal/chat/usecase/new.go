package usecase

import (
	"context"

	"ecomart-chatbot/internal/chat"
	"ecomart-chatbot/internal/conversation"
	"ecomart-chatbot/internal/freight"
	"ecomart-chatbot/internal/router"
	"ecomart-chatbot/pkg/llmprovider"
	pkgLog "ecomart-chatbot/pkg/log"
)

// completionGateway is satisfied by *llmprovider.Manager and by any single llmprovider.Provider.
type completionGateway interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Config tunes the flows. Empty model names use the provider's default model.
type Config struct {
	ExtractionModel    string
	ChatModel          string
	ExtractionJSONMode bool
	Policy             chat.Policy
}

type implUseCase struct {
	l          pkgLog.Logger
	llm        completionGateway
	router     router.Router
	calculator freight.Calculator
	store      *conversation.Store
	cfg        Config
}

var _ chat.UseCase = (*implUseCase)(nil)

// New creates a new chat UseCase instance.
func New(
	l pkgLog.Logger,
	llm completionGateway,
	r router.Router,
	calculator freight.Calculator,
	store *conversation.Store,
	cfg Config,
) *implUseCase {
	if cfg.Policy == "" {
		cfg.Policy = chat.PolicyLegacy
	}
	return &implUseCase{
		l:          l,
		llm:        llm,
		router:     r,
		calculator: calculator,
		store:      store,
		cfg:        cfg,
	}
}
