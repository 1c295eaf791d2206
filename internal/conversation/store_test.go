package conversation

import (
	"sync"
	"testing"
	"time"

	"ecomart-chatbot/internal/model"
	pkgLog "ecomart-chatbot/pkg/log"
)

func TestStore_AcquireCreatesOnFirstUse(t *testing.T) {
	s := NewStore(Config{}, pkgLog.NewNop())

	if _, ok := s.Peek("a"); ok {
		t.Fatal("expected no session before first use")
	}

	first := s.Acquire("a")
	second := s.Acquire("a")
	if first != second {
		t.Error("expected the same session for the same id")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 session, got %d", s.Len())
	}
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	s := NewStore(Config{}, pkgLog.NewNop())

	s.Acquire("a").History.Append(model.NewUserMessage("from a"))
	s.Acquire("b").History.Append(model.NewUserMessage("from b"))

	a, _ := s.Peek("a")
	b, _ := s.Peek("b")
	if a.History.Len() != 1 || b.History.Len() != 1 {
		t.Fatalf("expected one message per session, got a=%d b=%d", a.History.Len(), b.History.Len())
	}
	if a.History.Messages()[0].Content != "from a" {
		t.Errorf("session a leaked: %v", a.History.Messages())
	}
}

func TestStore_EvictsLeastRecentlyUsed(t *testing.T) {
	s := NewStore(Config{MaxSessions: 2, SessionTTL: time.Hour}, pkgLog.NewNop())

	s.Acquire("a")
	s.Acquire("b")
	s.Acquire("a") // a is now the most recent
	s.Acquire("c")

	if _, ok := s.Peek("b"); ok {
		t.Error("expected b to be evicted")
	}
	if _, ok := s.Peek("a"); !ok {
		t.Error("expected a to survive")
	}
}

func TestStore_ExpiresIdleSessions(t *testing.T) {
	s := NewStore(Config{MaxSessions: 10, SessionTTL: 20 * time.Millisecond}, pkgLog.NewNop())

	s.Acquire("a")
	time.Sleep(50 * time.Millisecond)

	if _, ok := s.Peek("a"); ok {
		t.Error("expected idle session to expire")
	}
	if s.Acquire("a").History.Len() != 0 {
		t.Error("expected a fresh history after expiry")
	}
}

func TestStore_Remove(t *testing.T) {
	s := NewStore(Config{}, pkgLog.NewNop())
	s.Acquire("a")

	if !s.Remove("a") {
		t.Error("expected Remove to report an existing session")
	}
	if s.Remove("a") {
		t.Error("expected second Remove to report a missing session")
	}
}

func TestStore_ConcurrentAcquire(t *testing.T) {
	s := NewStore(Config{}, pkgLog.NewNop())

	var wg sync.WaitGroup
	sessions := make([]*Session, 50)
	for i := range sessions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess := s.Acquire("shared")
			sess.Lock()
			sess.History.Append(model.NewUserMessage("q"))
			sess.History.Append(model.NewAssistantMessage("a"))
			sess.Unlock()
			sessions[i] = sess
		}(i)
	}
	wg.Wait()

	for _, sess := range sessions[1:] {
		if sess != sessions[0] {
			t.Fatal("expected every goroutine to get the same session")
		}
	}

	msgs := sessions[0].History.Messages()
	if len(msgs) != 100 {
		t.Fatalf("expected 100 messages, got %d", len(msgs))
	}
	for i := 0; i < len(msgs); i += 2 {
		if msgs[i].Role != model.RoleUser || msgs[i+1].Role != model.RoleAssistant {
			t.Fatalf("turn %d interleaved: %v, %v", i/2, msgs[i], msgs[i+1])
		}
	}
}

func TestStore_EvictedSessionKeepsItsLockDuringTurn(t *testing.T) {
	s := NewStore(Config{MaxSessions: 1, SessionTTL: time.Hour}, pkgLog.NewNop())

	sess, end := s.BeginTurn("a")
	s.Acquire("b") // evicts a from the LRU mid-turn

	if got, ok := s.Peek("a"); !ok || got != sess {
		t.Fatal("expected the in-turn session to stay reachable")
	}
	if got := s.Acquire("a"); got != sess {
		t.Fatal("expected Acquire to return the in-turn session, not a fresh one")
	}

	started := make(chan struct{})
	finished := make(chan *Session)
	go func() {
		close(started)
		next, nextEnd := s.BeginTurn("a")
		nextEnd()
		finished <- next
	}()
	<-started

	select {
	case <-finished:
		t.Fatal("expected the second turn to wait for the first")
	case <-time.After(20 * time.Millisecond):
	}

	sess.History.Append(model.NewUserMessage("first turn"))
	end()

	next := <-finished
	if next != sess {
		t.Fatal("expected both turns to share one session")
	}
	if next.History.Len() != 1 {
		t.Errorf("expected the first turn's message, got %d", next.History.Len())
	}
}

func TestStore_EndedTurnUnpinsEvictedSession(t *testing.T) {
	s := NewStore(Config{MaxSessions: 1, SessionTTL: time.Hour}, pkgLog.NewNop())

	_, end := s.BeginTurn("a")
	s.Acquire("b")
	end()

	if _, ok := s.Peek("a"); ok {
		t.Error("expected a to be gone once its turn ended")
	}
	if s.Acquire("a").History.Len() != 0 {
		t.Error("expected a fresh session after eviction")
	}
}
