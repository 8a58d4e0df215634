package conversation

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Elon7069/asha-didi-backend/pkg/logging"
)

// Responder is the part of ChatService handlers depend on.
type Responder interface {
	Respond(ctx context.Context, userMessage string, history []ChatMessage, lang Language) ChatResponse
}

// Handler wires HTTP requests to the chat orchestrator.
type Handler struct {
	responder Responder
	history   *HistoryStore
	logger    *logging.Logger
}

// NewHandler creates a chat handler. A nil history store disables
// persistence; each request is then answered statelessly.
func NewHandler(responder Responder, history *HistoryStore, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		responder: responder,
		history:   history,
		logger:    logger,
	}
}

// MessageRequest is the body of POST /chat/message.
type MessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Language  string `json:"language"`
}

// MessageResponse echoes the session id so clients can continue the thread.
type MessageResponse struct {
	SessionID string `json:"session_id"`
	ChatResponse
}

// Message handles POST /chat/message.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode message request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	lang := NormalizeLanguage(req.Language)

	history := h.loadHistory(r.Context(), sessionID)
	resp := h.responder.Respond(r.Context(), req.Message, history, lang)
	h.saveHistory(r.Context(), sessionID,
		ChatMessage{Role: ChatRoleUser, Content: req.Message},
		ChatMessage{Role: ChatRoleAssistant, Content: resp.Message},
	)

	h.writeJSON(w, http.StatusOK, MessageResponse{
		SessionID:    sessionID,
		ChatResponse: resp,
	})
}

// History handles GET /chat/history?session_id=...
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}
	if h.history == nil {
		h.writeJSON(w, http.StatusOK, []ChatMessage{})
		return
	}

	history, err := h.history.Load(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("failed to load chat history", "error", err, "session_id", sessionID)
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, history)
}

// History failures must not break the chat turn itself, so both helpers
// log and continue.
func (h *Handler) loadHistory(ctx context.Context, sessionID string) []ChatMessage {
	if h.history == nil {
		return nil
	}
	history, err := h.history.Load(ctx, sessionID)
	if err != nil {
		h.logger.Warn("failed to load history, continuing without", "error", err, "session_id", sessionID)
		return nil
	}
	return history
}

func (h *Handler) saveHistory(ctx context.Context, sessionID string, messages ...ChatMessage) {
	if h.history == nil {
		return
	}
	if err := h.history.Append(ctx, sessionID, messages...); err != nil {
		h.logger.Warn("failed to save history", "error", err, "session_id", sessionID)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
