package conversation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elon7069/asha-didi-backend/internal/triage"
	"github.com/Elon7069/asha-didi-backend/pkg/logging"
)

type stubResponder struct {
	calls    int
	lastMsg  string
	lastLang Language
	history  []ChatMessage
	response ChatResponse
}

func (s *stubResponder) Respond(_ context.Context, userMessage string, history []ChatMessage, lang Language) ChatResponse {
	s.calls++
	s.lastMsg = userMessage
	s.lastLang = lang
	s.history = history
	return s.response
}

func newTestHandler(t *testing.T, responder Responder) *Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewHistoryStore(client, time.Hour, 20)
	return NewHandler(responder, store, logging.Default())
}

func postMessage(t *testing.T, h *Handler, body MessageRequest) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/chat/message", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Message(rec, req)
	return rec
}

func TestMessageHandlerHappyPath(t *testing.T) {
	responder := &stubResponder{response: ChatResponse{
		Message:  "Eat green vegetables every day.",
		Intent:   triage.IntentNutrition,
		Category: triage.CategoryNutrition,
	}}
	h := newTestHandler(t, responder)

	rec := postMessage(t, h, MessageRequest{
		SessionID: "session-1",
		Message:   "what should I eat",
		Language:  "en",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "session-1", resp.SessionID)
	assert.Equal(t, "Eat green vegetables every day.", resp.Message)
	assert.Equal(t, triage.IntentNutrition, resp.Intent)
	assert.Equal(t, 1, responder.calls)
	assert.Equal(t, LanguageEnglish, responder.lastLang)
}

func TestMessageHandlerGeneratesSessionID(t *testing.T) {
	responder := &stubResponder{response: ChatResponse{Message: "hello"}}
	h := newTestHandler(t, responder)

	rec := postMessage(t, h, MessageRequest{Message: "namaste", Language: "hi"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, LanguageHindi, responder.lastLang)
}

func TestMessageHandlerRejectsEmptyMessage(t *testing.T) {
	h := newTestHandler(t, &stubResponder{})

	rec := postMessage(t, h, MessageRequest{SessionID: "s", Message: "   "})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMessageHandlerRejectsBadJSON(t *testing.T) {
	h := newTestHandler(t, &stubResponder{})

	req := httptest.NewRequest(http.MethodPost, "/chat/message", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Message(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMessageHandlerPersistsTurns(t *testing.T) {
	responder := &stubResponder{response: ChatResponse{Message: "reply one"}}
	h := newTestHandler(t, responder)

	postMessage(t, h, MessageRequest{SessionID: "session-1", Message: "turn one"})
	postMessage(t, h, MessageRequest{SessionID: "session-1", Message: "turn two"})

	// The second turn should see the first turn's user+assistant pair.
	require.Len(t, responder.history, 2)
	assert.Equal(t, "turn one", responder.history[0].Content)
	assert.Equal(t, "reply one", responder.history[1].Content)
}

func TestHistoryHandler(t *testing.T) {
	responder := &stubResponder{response: ChatResponse{Message: "reply"}}
	h := newTestHandler(t, responder)
	postMessage(t, h, MessageRequest{SessionID: "session-1", Message: "hello"})

	req := httptest.NewRequest(http.MethodGet, "/chat/history?session_id=session-1", nil)
	rec := httptest.NewRecorder()
	h.History(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var history []ChatMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 2)
	assert.Equal(t, ChatRoleUser, history[0].Role)
	assert.Equal(t, ChatRoleAssistant, history[1].Role)
}

func TestHistoryHandlerRequiresSessionID(t *testing.T) {
	h := newTestHandler(t, &stubResponder{})

	req := httptest.NewRequest(http.MethodGet, "/chat/history", nil)
	rec := httptest.NewRecorder()
	h.History(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
