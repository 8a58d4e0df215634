package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultHistoryTTL         = 24 * time.Hour
	defaultHistoryMaxMessages = 20
)

// HistoryStore persists per-session chat history in Redis. Sessions expire
// after the TTL and histories are truncated to the newest maxMessages so a
// long conversation never blows the LLM context window.
type HistoryStore struct {
	redis       *redis.Client
	tracer      trace.Tracer
	ttl         time.Duration
	maxMessages int
}

func NewHistoryStore(rdb *redis.Client, ttl time.Duration, maxMessages int) *HistoryStore {
	if rdb == nil {
		panic("conversation: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = defaultHistoryTTL
	}
	if maxMessages <= 0 {
		maxMessages = defaultHistoryMaxMessages
	}
	return &HistoryStore{
		redis:       rdb,
		tracer:      otel.Tracer("ashadidi.internal.conversation.history"),
		ttl:         ttl,
		maxMessages: maxMessages,
	}
}

// Save persists the history for a session, keeping only the newest
// maxMessages entries.
func (s *HistoryStore) Save(ctx context.Context, sessionID string, history []ChatMessage) error {
	ctx, span := s.tracer.Start(ctx, "conversation.save_history")
	defer span.End()

	if len(history) > s.maxMessages {
		history = history[len(history)-s.maxMessages:]
	}

	data, err := json.Marshal(history)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: failed to marshal history: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(sessionID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: failed to persist history: %w", err)
	}
	return nil
}

// Load returns the stored history for a session. An unknown or expired
// session yields an empty history, not an error, so a fresh session needs
// no bootstrap step.
func (s *HistoryStore) Load(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	ctx, span := s.tracer.Start(ctx, "conversation.load_history")
	defer span.End()

	data, err := s.redis.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return []ChatMessage{}, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("conversation: failed to load history: %w", err)
	}

	var history []ChatMessage
	if err := json.Unmarshal(data, &history); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("conversation: failed to decode history: %w", err)
	}
	return history, nil
}

// Append loads, extends, and re-saves a session's history in one call.
func (s *HistoryStore) Append(ctx context.Context, sessionID string, messages ...ChatMessage) error {
	history, err := s.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.Save(ctx, sessionID, append(history, messages...))
}

func sessionKey(id string) string {
	return fmt.Sprintf("chat:session:%s", id)
}
