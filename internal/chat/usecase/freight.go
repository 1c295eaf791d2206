package usecase

import (
	"context"
	"fmt"

	"ecomart-chatbot/internal/chat"
	"ecomart-chatbot/internal/conversation"
	"ecomart-chatbot/internal/freight"
	"ecomart-chatbot/internal/model"
)

// answerFreight appends exactly one assistant message: the quote, or the fallback text.
// Under PolicyPropagate a failure appends nothing and is returned instead.
func (uc *implUseCase) answerFreight(ctx context.Context, h *conversation.History, text string) (string, error) {
	reply, err := uc.quoteFreight(ctx, text)
	if err != nil {
		uc.l.Warnf(ctx, "%s: kind=%s: %v", LogPrefixFreight, chat.KindOf(err), err)
		if !uc.cfg.Policy.FallsBackOnFreight() {
			return "", err
		}
		reply = FreightFallbackMessage
	}

	if err := h.Append(model.NewAssistantMessage(reply)); err != nil {
		return "", &chat.FlowError{Kind: chat.KindInternal, Op: OpRecord, Err: err}
	}
	return reply, nil
}

func (uc *implUseCase) quoteFreight(ctx context.Context, text string) (string, error) {
	q, err := uc.extractFreightQuery(ctx, text)
	if err != nil {
		return "", err
	}

	amount, err := uc.calculate(ctx, q)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(FreightReplyTemplate, q.RegionCode, q.ProductQuantity, amount), nil
}

// calculate turns calculator errors and panics into tagged flow errors.
func (uc *implUseCase) calculate(ctx context.Context, q freight.Query) (amount freight.Amount, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &chat.FlowError{Kind: chat.KindInternal, Op: OpCalculate, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	amount, err = uc.calculator.Calculate(ctx, q)
	if err != nil {
		return 0, &chat.FlowError{Kind: chat.KindComputation, Op: OpCalculate, Err: err}
	}
	return amount, nil
}
