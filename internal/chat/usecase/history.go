package usecase

import (
	"context"
	"slices"

	"ecomart-chatbot/internal/chat"
	"ecomart-chatbot/internal/model"
)

// ListHistory never creates a session; an unknown session has an empty history.
func (uc *implUseCase) ListHistory(ctx context.Context, sc model.Scope) (chat.HistoryOutput, error) {
	if sc.SessionID == "" {
		return chat.HistoryOutput{}, chat.ErrMissingSession
	}

	sess, ok := uc.store.Peek(sc.SessionID)
	if !ok {
		return chat.HistoryOutput{Lines: []string{}}, nil
	}

	lines := slices.Collect(sess.History.Lines())
	if lines == nil {
		lines = []string{}
	}
	return chat.HistoryOutput{Lines: lines}, nil
}

// ClearHistory waits for a running turn of the session to finish before clearing.
func (uc *implUseCase) ClearHistory(ctx context.Context, sc model.Scope) error {
	if sc.SessionID == "" {
		return chat.ErrMissingSession
	}

	sess, ok := uc.store.Peek(sc.SessionID)
	if !ok {
		return nil
	}

	sess.Lock()
	defer sess.Unlock()
	sess.History.Clear()
	uc.l.Infof(ctx, "%s: cleared session=%s channel=%s", LogPrefixHistory, sc.SessionID, sc.Channel)
	return nil
}
