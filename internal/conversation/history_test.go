package conversation

import (
	"errors"
	"slices"
	"testing"

	"ecomart-chatbot/internal/model"
)

func TestHistory_AppendPreservesOrder(t *testing.T) {
	h := NewHistory()
	msgs := []model.Message{
		model.NewUserMessage("oi"),
		model.NewAssistantMessage("olá!"),
		model.NewUserMessage("oi"),
		model.NewAssistantMessage("olá!"),
	}
	for _, m := range msgs {
		if err := h.Append(m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got := h.Messages()
	if !slices.Equal(got, msgs) {
		t.Errorf("expected %v, got %v", msgs, got)
	}
}

func TestHistory_AppendRejectsEmptyRole(t *testing.T) {
	h := NewHistory()
	err := h.Append(model.Message{Content: "sem papel"})
	if !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("expected ErrInvalidMessage, got %v", err)
	}
	if h.Len() != 0 {
		t.Errorf("expected empty history, got %d messages", h.Len())
	}
}

func TestHistory_Lines(t *testing.T) {
	h := NewHistory()
	h.Append(model.NewUserMessage("Qual o prazo?"))
	h.Append(model.NewAssistantMessage("Cinco dias úteis."))

	want := []string{"user: Qual o prazo?", "assistant: Cinco dias úteis."}

	seq := h.Lines()
	if got := slices.Collect(seq); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	// The same sequence can be ranged over again.
	if got := slices.Collect(seq); !slices.Equal(got, want) {
		t.Errorf("second iteration: expected %v, got %v", want, got)
	}

	// Early break stops the iteration.
	count := 0
	for range seq {
		count++
		break
	}
	if count != 1 {
		t.Errorf("expected 1 iteration, got %d", count)
	}
}

func TestHistory_ClearIsIdempotent(t *testing.T) {
	h := NewHistory()
	h.Append(model.NewUserMessage("oi"))

	h.Clear()
	if h.Len() != 0 {
		t.Errorf("expected empty history after first clear, got %d", h.Len())
	}
	h.Clear()
	if h.Len() != 0 {
		t.Errorf("expected empty history after second clear, got %d", h.Len())
	}
	if got := slices.Collect(h.Lines()); len(got) != 0 {
		t.Errorf("expected no lines, got %v", got)
	}
}

func TestHistory_MessagesIsACopy(t *testing.T) {
	h := NewHistory()
	h.Append(model.NewUserMessage("original"))

	msgs := h.Messages()
	msgs[0].Content = "changed"

	if h.Messages()[0].Content != "original" {
		t.Error("mutating the returned slice must not change the history")
	}
}
