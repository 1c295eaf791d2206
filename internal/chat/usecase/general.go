package usecase

import (
	"context"

	"ecomart-chatbot/internal/chat"
	"ecomart-chatbot/internal/conversation"
	"ecomart-chatbot/internal/model"
	"ecomart-chatbot/pkg/llmprovider"
)

// answerGeneral sends the whole history to the model and records its reply verbatim.
func (uc *implUseCase) answerGeneral(ctx context.Context, h *conversation.History) (string, error) {
	history := h.Messages()
	messages := make([]llmprovider.Message, 0, len(history))
	for _, m := range history {
		messages = append(messages, llmprovider.Message{Role: string(m.Role), Content: m.Content})
	}

	resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
		Model:       uc.cfg.ChatModel,
		Messages:    messages,
		Temperature: ChatTemperature,
	})
	if err != nil {
		flowErr := &chat.FlowError{Kind: chat.KindGateway, Op: OpComplete, Err: err}
		uc.l.Warnf(ctx, "%s: kind=%s: %v", LogPrefixGeneral, flowErr.Kind, err)
		if !uc.cfg.Policy.FallsBackOnGeneral() {
			return "", flowErr
		}
		return uc.record(h, model.NewAssistantMessage(GeneralFallbackMessage))
	}

	role := model.Role(resp.Content.Role)
	if role == "" {
		role = model.RoleAssistant
	}
	return uc.record(h, model.Message{Role: role, Content: resp.Content.Content})
}

func (uc *implUseCase) record(h *conversation.History, msg model.Message) (string, error) {
	if err := h.Append(msg); err != nil {
		return "", &chat.FlowError{Kind: chat.KindInternal, Op: OpRecord, Err: err}
	}
	return msg.Content, nil
}
