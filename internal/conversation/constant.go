package conversation

import "time"

const (
	LogPrefixStore = "internal.conversation.Store"

	DefaultMaxSessions = 1000
	DefaultSessionTTL  = 30 * time.Minute
)
