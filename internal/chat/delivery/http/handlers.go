package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecomart-chatbot/pkg/response"
)

// History godoc
// @Summary     Conversation history
// @Description Returns the current conversation as "{role}: {content}" lines, oldest first.
// @Tags        Chat
// @Produce     json
// @Success     200 {object} historyResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/chat [GET]
func (h *handler) History(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.ListHistory(ctx, h.scope(c))
	if err != nil {
		h.l.Errorf(ctx, "uc.ListHistory: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newHistoryResp(output))
}

// Answer godoc
// @Summary     Ask a question
// @Description Records the question, answers it with the freight quote or the general chat flow, and records the answer.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body body answerReq true "Question"
// @Success     200 {object} answerResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     502 {object} response.Resp "Language model unavailable"
// @Router      /api/v1/chat [POST]
func (h *handler) Answer(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processAnswerReq(c)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	output, err := h.uc.Answer(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Answer: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newAnswerResp(output))
}

// ClearAndRedirect godoc
// @Summary     Clear the conversation and go back to it
// @Tags        Chat
// @Success     302
// @Router      /api/v1/chat/clear [GET]
func (h *handler) ClearAndRedirect(c *gin.Context) {
	if !h.clear(c) {
		return
	}
	c.Redirect(http.StatusFound, chatPath)
}

// Clear godoc
// @Summary     Clear the conversation
// @Tags        Chat
// @Produce     json
// @Success     200 {object} response.Resp "OK"
// @Router      /api/v1/chat/history [DELETE]
func (h *handler) Clear(c *gin.Context) {
	if !h.clear(c) {
		return
	}
	response.OK(c, nil)
}

func (h *handler) clear(c *gin.Context) bool {
	ctx := c.Request.Context()

	if err := h.uc.ClearHistory(ctx, h.scope(c)); err != nil {
		h.l.Errorf(ctx, "uc.ClearHistory: %v", err)
		response.Error(c, h.mapError(err), nil)
		return false
	}
	return true
}
