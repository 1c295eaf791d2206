package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Session resolves the conversation id of the request: the X-Session-ID header wins,
// then the chat_session cookie. Without either a new id is issued as a cookie.
func (m Middleware) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if id == "" {
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				id = strings.TrimSpace(cookie)
			}
		}

		if id == "" || len(id) > maxSessionIDLength {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookieName, id, sessionCookieMaxAge, "/", "", m.cfg.SecureCookie, true)
			m.l.Debugf(c.Request.Context(), "middleware.Session: issued session %s", id)
		}

		c.Set(sessionIDKey, id)
		c.Next()
	}
}

// GetSessionID returns the id stored by Session, or an empty string.
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
