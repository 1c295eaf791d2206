package middleware

const (
	SessionCookieName = "chat_session"
	SessionHeader     = "X-Session-ID"
	RequestIDHeader   = "X-Request-ID"

	DefaultRateLimitPerMin = 60
)

const (
	sessionIDKey        = "session_id"
	maxSessionIDLength  = 128
	sessionCookieMaxAge = 30 * 24 * 60 * 60
)
