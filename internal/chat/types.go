package chat

import (
	"fmt"
	"strings"

	"ecomart-chatbot/internal/router"
)

// AnswerInput is the user's question.
type AnswerInput struct {
	Question string
}

// AnswerOutput is the reply and the flow that produced it.
type AnswerOutput struct {
	Answer string
	Intent router.Intent
}

// HistoryOutput is a display snapshot of a conversation.
type HistoryOutput struct {
	Lines []string
}

// Policy decides what a flow does with its own failures.
type Policy string

const (
	// PolicyLegacy converts freight failures into the fallback text and propagates general failures.
	PolicyLegacy Policy = "legacy"
	// PolicyFallback converts failures of both flows into a fallback text.
	PolicyFallback Policy = "fallback"
	// PolicyPropagate returns failures of both flows to the caller.
	PolicyPropagate Policy = "propagate"
)

// ParsePolicy reads a policy name. An empty name means PolicyLegacy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyLegacy, nil
	case PolicyLegacy, PolicyFallback, PolicyPropagate:
		return p, nil
	default:
		return "", fmt.Errorf("unknown error policy %q", s)
	}
}

// FallsBackOnFreight reports whether freight failures become the fallback reply.
func (p Policy) FallsBackOnFreight() bool {
	return p != PolicyPropagate
}

// FallsBackOnGeneral reports whether general chat failures become the fallback reply.
func (p Policy) FallsBackOnGeneral() bool {
	return p == PolicyFallback
}
