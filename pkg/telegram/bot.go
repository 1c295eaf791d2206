package telegram

import (
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const defaultTimeout = 30 * time.Second

// Bot is the Telegram Bot API client.
type Bot struct {
	api *tgbotapi.BotAPI
}

// NewBot creates a Bot for token. It calls getMe, so an invalid token fails here.
func NewBot(token string) (*Bot, error) {
	return NewBotWithEndpoint(token, DefaultAPIEndpoint)
}

// NewBotWithEndpoint is NewBot against another API server. endpoint is a format
// string taking the token and the method, like DefaultAPIEndpoint.
func NewBotWithEndpoint(token, endpoint string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, &http.Client{Timeout: defaultTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Bot{api: api}, nil
}

// Username returns the bot's username as reported by getMe.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// SetWebhook registers the webhook URL with Telegram. A non-empty secret is echoed
// back by Telegram in the X-Telegram-Bot-Api-Secret-Token header.
func (b *Bot) SetWebhook(webhookURL, secret string) error {
	params := tgbotapi.Params{"url": webhookURL}
	params.AddNonEmpty("secret_token", secret)

	resp, err := b.api.MakeRequest("setWebhook", params)
	if err != nil {
		return fmt.Errorf("telegram setWebhook failed: %w", err)
	}
	if !resp.Ok {
		return fmt.Errorf("telegram setWebhook failed: %s", resp.Description)
	}
	return nil
}

// SendMessage sends a plain text message to a Telegram chat.
func (b *Bot) SendMessage(chatID int64, text string) error {
	return b.SendMessageWithMode(chatID, text, "")
}

// SendMessageWithMode sends a message with optional parse mode (e.g. "Markdown").
// Text longer than MaxMessageLength is sent as several messages.
func (b *Bot) SendMessageWithMode(chatID int64, text string, parseMode string) error {
	for _, chunk := range splitText(text, MaxMessageLength) {
		msg := tgbotapi.NewMessage(chatID, chunk)
		msg.ParseMode = parseMode
		if _, err := b.api.Send(msg); err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}
	}
	return nil
}

func splitText(text string, chunkSize int) []string {
	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/chunkSize+1)
	for start := 0; start < len(runes); start += chunkSize {
		end := min(start+chunkSize, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
