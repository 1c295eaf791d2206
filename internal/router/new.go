package router

import (
	"context"
	"strings"

	"ecomart-chatbot/pkg/log"
)

// Router decides which flow handles a message.
type Router interface {
	Classify(ctx context.Context, message string) Intent
}

// KeywordRouter routes to the freight flow when the message contains any freight keyword.
type KeywordRouter struct {
	keywords []string
	l        log.Logger
}

var _ Router = (*KeywordRouter)(nil)

// New creates a KeywordRouter. Blank keywords are ignored; with none left it falls back to DefaultFreightKeyword.
func New(keywords []string, l log.Logger) *KeywordRouter {
	normalized := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			normalized = append(normalized, k)
		}
	}
	if len(normalized) == 0 {
		normalized = []string{DefaultFreightKeyword}
	}

	return &KeywordRouter{
		keywords: normalized,
		l:        l,
	}
}
