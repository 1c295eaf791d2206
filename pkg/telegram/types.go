package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Update is an incoming webhook update.
type Update = tgbotapi.Update

// Message is a Telegram message.
type Message = tgbotapi.Message

// Chat is the chat a message belongs to.
type Chat = tgbotapi.Chat

const (
	// DefaultAPIEndpoint is formatted with the bot token and the method name.
	DefaultAPIEndpoint = tgbotapi.APIEndpoint

	// MaxMessageLength is Telegram's limit for one text message, in characters.
	MaxMessageLength = 4096

	// SecretTokenHeader carries the secret given to setWebhook on every webhook call.
	SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

	ModeMarkdown = tgbotapi.ModeMarkdown
)
