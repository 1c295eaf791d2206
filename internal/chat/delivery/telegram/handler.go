package telegram

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"ecomart-chatbot/internal/chat"
	"ecomart-chatbot/internal/model"
	pkgResponse "ecomart-chatbot/pkg/response"
	pkgTelegram "ecomart-chatbot/pkg/telegram"
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It answers 200 right away and queues the message for its chat. Messages of one chat
// are handled in arrival order; different chats run concurrently.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if !h.validSecret(c.GetHeader(pkgTelegram.SecretTokenHeader)) {
		h.l.Warnf(ctx, "%s: %v", LogPrefixWebhook, errInvalidSecret)
		pkgResponse.Unauthorized(c)
		return
	}

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "%s: failed to parse update: %v", LogPrefixWebhook, err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (edited messages, channel posts, etc.)
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	h.enqueue(update.Message)
	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// enqueue appends msg to its chat's queue, starting a drain goroutine if none is running.
func (h *handler) enqueue(msg *pkgTelegram.Message) {
	chatID := msg.Chat.ID

	h.mu.Lock()
	pending, running := h.queues[chatID]
	h.queues[chatID] = append(pending, msg)
	h.mu.Unlock()

	if !running {
		go h.drain(chatID)
	}
}

// drain handles queued messages for chatID until the queue is empty.
func (h *handler) drain(chatID int64) {
	for {
		h.mu.Lock()
		pending := h.queues[chatID]
		if len(pending) == 0 {
			delete(h.queues, chatID)
			h.mu.Unlock()
			return
		}
		msg := pending[0]
		h.queues[chatID] = pending[1:]
		h.mu.Unlock()

		h.handleQueued(msg)
	}
}

func (h *handler) handleQueued(msg *pkgTelegram.Message) {
	defer h.done()
	ctx := context.Background()
	if err := h.processMessage(ctx, msg); err != nil {
		h.l.Errorf(ctx, "%s: chat=%d: %v", LogPrefixProcess, msg.Chat.ID, err)
		_ = h.bot.SendMessage(msg.Chat.ID, MessageFailure)
	}
}

func (h *handler) validSecret(got string) bool {
	if h.secret == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	chatID := msg.Chat.ID
	if strings.TrimSpace(msg.Text) == "" {
		return h.bot.SendMessage(chatID, MessageUnsupported)
	}

	sc := model.Scope{
		SessionID: fmt.Sprintf("%s%d", scopePrefix, chatID),
		Channel:   model.ChannelTelegram,
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case CommandStart:
			return h.bot.SendMessageWithMode(chatID, MessageWelcome, pkgTelegram.ModeMarkdown)
		case CommandHelp:
			return h.bot.SendMessageWithMode(chatID, MessageHelp, pkgTelegram.ModeMarkdown)
		case CommandHistory:
			return h.sendHistory(ctx, chatID, sc)
		case CommandClear:
			if err := h.uc.ClearHistory(ctx, sc); err != nil {
				return fmt.Errorf("uc.ClearHistory: %w", err)
			}
			return h.bot.SendMessage(chatID, MessageCleared)
		}
	}

	output, err := h.uc.Answer(ctx, sc, chat.AnswerInput{Question: msg.Text})
	if err != nil {
		return fmt.Errorf("uc.Answer kind=%s: %w", chat.KindOf(err), err)
	}
	return h.bot.SendMessage(chatID, output.Answer)
}

func (h *handler) sendHistory(ctx context.Context, chatID int64, sc model.Scope) error {
	output, err := h.uc.ListHistory(ctx, sc)
	if err != nil {
		return fmt.Errorf("uc.ListHistory: %w", err)
	}
	if len(output.Lines) == 0 {
		return h.bot.SendMessage(chatID, MessageEmptyHistory)
	}
	return h.bot.SendMessage(chatID, strings.Join(output.Lines, "\n"))
}
