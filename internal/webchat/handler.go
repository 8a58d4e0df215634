// Package webchat serves the browser chat widget over a WebSocket. Each
// turn is answered synchronously: triage and the LLM call happen inline,
// with a typing indicator sent while the model thinks.
package webchat

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/Elon7069/asha-didi-backend/internal/conversation"
	"github.com/Elon7069/asha-didi-backend/pkg/logging"
)

// Handler manages web chat connections and messages.
type Handler struct {
	responder conversation.Responder
	history   *conversation.HistoryStore
	logger    *logging.Logger
}

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type     string `json:"type"` // "message", "ping"
	Text     string `json:"text"`
	Language string `json:"language"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type        string           `json:"type"` // "message", "typing", "pong", "history", "session", "error"
	Text        string           `json:"text,omitempty"`
	Role        string           `json:"role,omitempty"`
	SessionID   string           `json:"session_id,omitempty"`
	IsEmergency bool             `json:"is_emergency,omitempty"`
	Intent      string           `json:"intent,omitempty"`
	Timestamp   string           `json:"timestamp,omitempty"`
	Messages    []HistoryMessage `json:"messages,omitempty"`
}

// HistoryMessage is a simplified message for history responses.
type HistoryMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// NewHandler creates a web chat handler. A nil history store disables
// session persistence.
func NewHandler(responder conversation.Responder, history *conversation.HistoryStore, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		responder: responder,
		history:   history,
		logger:    logger,
	}
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// ServeHTTP upgrades to WebSocket and handles real-time messaging.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = generateSessionID()
	}
	lang := conversation.NormalizeLanguage(r.URL.Query().Get("lang"))

	_ = websocket.JSON.Send(conn, OutboundMessage{
		Type:      "session",
		SessionID: sessionID,
	})
	h.sendHistory(r.Context(), conn, sessionID)

	h.logger.Info("webchat: connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}
		if msg.Type != "message" || strings.TrimSpace(msg.Text) == "" {
			continue
		}

		turnLang := lang
		if msg.Language != "" {
			turnLang = conversation.NormalizeLanguage(msg.Language)
		}
		h.processMessage(r.Context(), conn, sessionID, msg.Text, turnLang)
	}
}

func (h *Handler) sendHistory(ctx context.Context, conn *websocket.Conn, sessionID string) {
	if h.history == nil {
		return
	}
	msgs, err := h.history.Load(ctx, sessionID)
	if err != nil || len(msgs) == 0 {
		return
	}
	history := make([]HistoryMessage, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, HistoryMessage{Role: m.Role, Text: m.Content})
	}
	_ = websocket.JSON.Send(conn, OutboundMessage{Type: "history", Messages: history})
}

func (h *Handler) processMessage(ctx context.Context, conn *websocket.Conn, sessionID, text string, lang conversation.Language) {
	_ = websocket.JSON.Send(conn, OutboundMessage{Type: "typing"})

	var history []conversation.ChatMessage
	if h.history != nil {
		loaded, err := h.history.Load(ctx, sessionID)
		if err != nil {
			h.logger.Warn("webchat: failed to load history", "error", err, "session_id", sessionID)
		} else {
			history = loaded
		}
	}

	resp := h.responder.Respond(ctx, text, history, lang)

	if h.history != nil {
		if err := h.history.Append(ctx, sessionID,
			conversation.ChatMessage{Role: conversation.ChatRoleUser, Content: text},
			conversation.ChatMessage{Role: conversation.ChatRoleAssistant, Content: resp.Message},
		); err != nil {
			h.logger.Warn("webchat: failed to save history", "error", err, "session_id", sessionID)
		}
	}

	_ = websocket.JSON.Send(conn, OutboundMessage{
		Type:        "message",
		Role:        conversation.ChatRoleAssistant,
		Text:        resp.Message,
		IsEmergency: resp.IsEmergency,
		Intent:      string(resp.Intent),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}
