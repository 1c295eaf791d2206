package http

import (
	"strings"

	"ecomart-chatbot/internal/chat"
)

// --- Request DTOs ---

type answerReq struct {
	Question string `json:"pergunta"`
}

func (r answerReq) validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return chat.ErrEmptyQuestion
	}
	return nil
}

func (r answerReq) toInput() chat.AnswerInput {
	return chat.AnswerInput{Question: r.Question}
}

// --- Response DTOs ---

type answerResp struct {
	Answer string `json:"answer"`
	Intent string `json:"intent"`
}

func (h *handler) newAnswerResp(out chat.AnswerOutput) answerResp {
	return answerResp{
		Answer: out.Answer,
		Intent: string(out.Intent),
	}
}

type historyResp struct {
	History []string `json:"history"`
}

func (h *handler) newHistoryResp(out chat.HistoryOutput) historyResp {
	lines := out.Lines
	if lines == nil {
		lines = []string{}
	}
	return historyResp{History: lines}
}
