package telegram

import (
	"sync"

	"github.com/gin-gonic/gin"

	"ecomart-chatbot/internal/chat"
	pkgLog "ecomart-chatbot/pkg/log"
	pkgTelegram "ecomart-chatbot/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Sender delivers text to a Telegram chat. *pkg/telegram.Bot implements it.
type Sender interface {
	SendMessage(chatID int64, text string) error
	SendMessageWithMode(chatID int64, text string, parseMode string) error
}

type handler struct {
	l      pkgLog.Logger
	uc     chat.UseCase
	bot    Sender
	secret string

	// queues holds pending messages per chat; a chat has a drain goroutine while its key exists.
	mu     sync.Mutex
	queues map[int64][]*pkgTelegram.Message

	// done is called after each background message; tests use it to wait.
	done func()
}

// New creates a new Telegram delivery handler. An empty secret disables the header check.
func New(l pkgLog.Logger, uc chat.UseCase, bot Sender, secret string) Handler {
	return &handler{
		l:      l,
		uc:     uc,
		bot:    bot,
		secret: secret,
		queues: make(map[int64][]*pkgTelegram.Message),
		done:   func() {},
	}
}
