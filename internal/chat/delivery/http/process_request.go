package http

import (
	"github.com/gin-gonic/gin"

	"ecomart-chatbot/internal/middleware"
	"ecomart-chatbot/internal/model"
)

// processAnswerReq binds the question body and resolves the conversation scope.
func (h *handler) processAnswerReq(c *gin.Context) (answerReq, model.Scope, error) {
	var req answerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, model.Scope{}, errInvalidBody
	}
	return req, h.scope(c), req.validate()
}

func (h *handler) scope(c *gin.Context) model.Scope {
	return model.Scope{
		SessionID: middleware.GetSessionID(c),
		Channel:   model.ChannelWeb,
	}
}
