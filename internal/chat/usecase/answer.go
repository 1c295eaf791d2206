package usecase

import (
	"context"
	"fmt"
	"strings"

	"ecomart-chatbot/internal/chat"
	"ecomart-chatbot/internal/model"
	"ecomart-chatbot/internal/router"
)

// Answer runs one conversation turn. The session lock is held for the whole turn so
// concurrent questions on one conversation are answered one after the other.
func (uc *implUseCase) Answer(ctx context.Context, sc model.Scope, input chat.AnswerInput) (chat.AnswerOutput, error) {
	if sc.SessionID == "" {
		return chat.AnswerOutput{}, chat.ErrMissingSession
	}
	if strings.TrimSpace(input.Question) == "" {
		return chat.AnswerOutput{}, chat.ErrEmptyQuestion
	}

	sess, end := uc.store.BeginTurn(sc.SessionID)
	defer end()

	if err := sess.History.Append(model.NewUserMessage(input.Question)); err != nil {
		return chat.AnswerOutput{}, fmt.Errorf("%s: %w", LogPrefixAnswer, err)
	}

	intent := uc.router.Classify(ctx, input.Question)
	uc.l.Infof(ctx, "%s: session=%s channel=%s intent=%s", LogPrefixAnswer, sc.SessionID, sc.Channel, intent)

	var (
		reply string
		err   error
	)
	switch intent {
	case router.IntentFreight:
		reply, err = uc.answerFreight(ctx, sess.History, input.Question)
	default:
		reply, err = uc.answerGeneral(ctx, sess.History)
	}
	if err != nil {
		return chat.AnswerOutput{Intent: intent}, err
	}

	return chat.AnswerOutput{
		Answer: reply,
		Intent: intent,
	}, nil
}
