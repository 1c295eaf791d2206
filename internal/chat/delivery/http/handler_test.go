package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"ecomart-chatbot/internal/chat"
	"ecomart-chatbot/internal/middleware"
	"ecomart-chatbot/internal/model"
	"ecomart-chatbot/internal/router"
	"ecomart-chatbot/pkg/llmprovider"
	"ecomart-chatbot/pkg/log"
	"ecomart-chatbot/pkg/response"
)

type mockUseCase struct {
	answerOut chat.AnswerOutput
	answerErr error
	lines     []string
	cleared   []model.Scope
	scopes    []model.Scope
	inputs    []chat.AnswerInput
}

func (m *mockUseCase) Answer(ctx context.Context, sc model.Scope, input chat.AnswerInput) (chat.AnswerOutput, error) {
	m.scopes = append(m.scopes, sc)
	m.inputs = append(m.inputs, input)
	return m.answerOut, m.answerErr
}

func (m *mockUseCase) ListHistory(ctx context.Context, sc model.Scope) (chat.HistoryOutput, error) {
	m.scopes = append(m.scopes, sc)
	return chat.HistoryOutput{Lines: m.lines}, nil
}

func (m *mockUseCase) ClearHistory(ctx context.Context, sc model.Scope) error {
	m.cleared = append(m.cleared, sc)
	return nil
}

func newTestRouter(uc chat.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := middleware.New(log.NewNop(), middleware.Config{RateLimitPerMin: 600})
	RegisterRoutes(r.Group(chatPath), New(log.NewNop(), uc), mw)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, "session-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) response.Resp {
	t.Helper()
	resp := response.Resp{Data: data}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v (body %s)", err, w.Body.String())
	}
	return resp
}

func TestAnswer(t *testing.T) {
	uc := &mockUseCase{answerOut: chat.AnswerOutput{
		Answer: "O valor do frete para o estado SP com 5 produto(s) é R$ 25.50",
		Intent: router.IntentFreight,
	}}
	r := newTestRouter(uc)

	w := do(r, http.MethodPost, chatPath, `{"pergunta": "Quanto custa o frete para SP com 5 produtos?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var data answerResp
	decode(t, w, &data)
	if data.Answer != uc.answerOut.Answer || data.Intent != "FREIGHT" {
		t.Errorf("unexpected payload: %+v", data)
	}

	if len(uc.inputs) != 1 || uc.inputs[0].Question != "Quanto custa o frete para SP com 5 produtos?" {
		t.Errorf("unexpected input: %+v", uc.inputs)
	}
	if uc.scopes[0] != (model.Scope{SessionID: "session-1", Channel: model.ChannelWeb}) {
		t.Errorf("unexpected scope: %+v", uc.scopes[0])
	}
}

func TestAnswer_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		ucErr    error
		wantCode int
		wantCall bool
	}{
		{name: "empty question", body: `{"pergunta": "   "}`, wantCode: http.StatusBadRequest},
		{name: "missing field", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "invalid json", body: `pergunta=oi`, wantCode: http.StatusBadRequest},
		{
			name:     "gateway failure",
			body:     `{"pergunta": "oi"}`,
			ucErr:    &chat.FlowError{Kind: chat.KindGateway, Op: "complete chat", Err: llmprovider.ErrProviderTimeout},
			wantCode: http.StatusBadGateway,
			wantCall: true,
		},
		{
			name:     "internal failure",
			body:     `{"pergunta": "oi"}`,
			ucErr:    &chat.FlowError{Kind: chat.KindInternal, Op: "record reply", Err: context.Canceled},
			wantCode: http.StatusInternalServerError,
			wantCall: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{answerErr: tt.ucErr}
			w := do(newTestRouter(uc), http.MethodPost, chatPath, tt.body)

			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
			if called := len(uc.inputs) > 0; called != tt.wantCall {
				t.Errorf("use case called = %v, want %v", called, tt.wantCall)
			}
			if resp := decode(t, w, nil); resp.ErrorCode != tt.wantCode {
				t.Errorf("expected error_code %d, got %d", tt.wantCode, resp.ErrorCode)
			}
		})
	}
}

func TestHistory(t *testing.T) {
	uc := &mockUseCase{lines: []string{"user: oi", "assistant: olá"}}
	w := do(newTestRouter(uc), http.MethodGet, chatPath, "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var data historyResp
	decode(t, w, &data)
	if len(data.History) != 2 || data.History[1] != "assistant: olá" {
		t.Errorf("unexpected history: %+v", data.History)
	}
}

func TestHistory_EmptyIsArray(t *testing.T) {
	w := do(newTestRouter(&mockUseCase{}), http.MethodGet, chatPath, "")
	if !strings.Contains(w.Body.String(), `"history":[]`) {
		t.Errorf("expected empty array, got %s", w.Body.String())
	}
}

func TestClearAndRedirect(t *testing.T) {
	uc := &mockUseCase{}
	w := do(newTestRouter(uc), http.MethodGet, chatPath+"/clear", "")

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != chatPath {
		t.Errorf("expected redirect to %s, got %s", chatPath, loc)
	}
	if len(uc.cleared) != 1 || uc.cleared[0].SessionID != "session-1" {
		t.Errorf("expected session-1 cleared, got %+v", uc.cleared)
	}
}

func TestClear(t *testing.T) {
	uc := &mockUseCase{}
	w := do(newTestRouter(uc), http.MethodDelete, chatPath+"/history", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(uc.cleared) != 1 {
		t.Errorf("expected one clear, got %d", len(uc.cleared))
	}
}

func TestAnswer_IssuesSessionCookie(t *testing.T) {
	uc := &mockUseCase{answerOut: chat.AnswerOutput{Answer: "olá", Intent: router.IntentGeneral}}
	r := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodPost, chatPath, strings.NewReader(`{"pergunta": "oi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != middleware.SessionCookieName {
		t.Fatalf("expected session cookie, got %+v", cookies)
	}
	if uc.scopes[0].SessionID != cookies[0].Value {
		t.Errorf("expected use case to get cookie session %s, got %s", cookies[0].Value, uc.scopes[0].SessionID)
	}
}
