package chat

import (
	"context"

	"ecomart-chatbot/internal/model"
)

// UseCase answers chat questions and manages the history of each conversation.
type UseCase interface {
	// Answer records the question, runs the freight or general flow and returns the reply.
	Answer(ctx context.Context, sc model.Scope, input AnswerInput) (AnswerOutput, error)

	// ListHistory returns the conversation as "{role}: {content}" lines, oldest first.
	ListHistory(ctx context.Context, sc model.Scope) (HistoryOutput, error)

	// ClearHistory empties the conversation. Clearing twice is a no-op.
	ClearHistory(ctx context.Context, sc model.Scope) error
}
