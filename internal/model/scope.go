package model

// Channel is the chat surface a conversation arrived from.
type Channel string

const (
	ChannelWeb      Channel = "web"
	ChannelTelegram Channel = "telegram"
)

// Scope identifies the conversation a request belongs to.
type Scope struct {
	SessionID string
	Channel   Channel
}

// Environment names.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)
