package http

import (
	"github.com/gin-gonic/gin"

	"ecomart-chatbot/internal/middleware"
)

const chatPath = "/api/v1/chat"

// RegisterRoutes maps the chat endpoints under rg, which is expected to be /api/v1/chat.
// Every route resolves the session first; asking a question is also rate limited.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.Use(mw.Session())
	{
		rg.GET("", h.History)
		rg.POST("", mw.RateLimit(), h.Answer)
		rg.GET("/clear", h.ClearAndRedirect)
		rg.DELETE("/history", h.Clear)
	}
}
