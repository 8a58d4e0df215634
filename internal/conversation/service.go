package conversation

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Elon7069/asha-didi-backend/internal/observability/metrics"
	"github.com/Elon7069/asha-didi-backend/internal/triage"
	"github.com/Elon7069/asha-didi-backend/pkg/logging"
)

var chatTracer = otel.Tracer("ashadidi.internal.conversation")

const (
	defaultLLMTimeout = 30 * time.Second
	defaultMaxTokens  = 512
	chatTemperature   = 0.7
)

// ChatResponse is the orchestrator's answer for a single turn. The message
// field is never empty.
type ChatResponse struct {
	Message     string          `json:"message"`
	IsEmergency bool            `json:"isEmergency"`
	Intent      triage.Intent   `json:"intent"`
	Category    triage.Category `json:"category"`
}

// ChatService orchestrates a chat turn: emergency triage first, then
// intent classification, then a guarded LLM completion.
type ChatService struct {
	llm       LLMClient
	logger    *logging.Logger
	metrics   *metrics.ChatMetrics
	model     string
	timeout   time.Duration
	maxTokens int32
}

type ChatServiceOption func(*ChatService)

func WithModel(model string) ChatServiceOption {
	return func(s *ChatService) { s.model = model }
}

func WithLLMTimeout(d time.Duration) ChatServiceOption {
	return func(s *ChatService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithMaxTokens(n int32) ChatServiceOption {
	return func(s *ChatService) {
		if n > 0 {
			s.maxTokens = n
		}
	}
}

func WithChatMetrics(m *metrics.ChatMetrics) ChatServiceOption {
	return func(s *ChatService) { s.metrics = m }
}

// NewChatService creates the orchestrator. A nil llm is tolerated; every
// non-emergency turn then resolves to the localized fallback message.
func NewChatService(llm LLMClient, logger *logging.Logger, opts ...ChatServiceOption) *ChatService {
	if logger == nil {
		logger = logging.Default()
	}
	s := &ChatService{
		llm:       llm,
		logger:    logger,
		timeout:   defaultLLMTimeout,
		maxTokens: defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Respond produces the reply for one user turn. It never returns an error:
// upstream failures collapse into the localized fallback apology, and the
// emergency path never touches the LLM at all.
func (s *ChatService) Respond(ctx context.Context, userMessage string, history []ChatMessage, lang Language) ChatResponse {
	ctx, span := chatTracer.Start(ctx, "conversation.respond")
	defer span.End()

	if triage.DetectEmergency(userMessage) {
		span.SetAttributes(attribute.Bool("ashadidi.emergency", true))
		s.metrics.ObserveTurn(string(triage.IntentEmergency), true)
		s.logger.Warn("emergency detected, returning canned response", "language", string(lang))
		return ChatResponse{
			Message:     EmergencyMessage(lang),
			IsEmergency: true,
			Intent:      triage.IntentEmergency,
			Category:    triage.CategoryEmergency,
		}
	}

	intent := triage.DetectIntent(userMessage)
	category := triage.MapIntentToCategory(intent)
	span.SetAttributes(
		attribute.String("ashadidi.intent", string(intent)),
		attribute.String("ashadidi.category", string(category)),
		attribute.String("ashadidi.language", string(lang)),
	)
	s.metrics.ObserveTurn(string(intent), false)

	text, err := s.complete(ctx, userMessage, history, intent, lang)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveLLMFailure()
		s.logger.Error("llm completion failed, returning fallback",
			"error", err.Error(),
			"intent", string(intent),
		)
		return ChatResponse{
			Message:     FallbackMessage(lang),
			IsEmergency: false,
			Intent:      intent,
			Category:    category,
		}
	}

	return ChatResponse{
		Message:     text,
		IsEmergency: false,
		Intent:      intent,
		Category:    category,
	}
}

func (s *ChatService) complete(ctx context.Context, userMessage string, history []ChatMessage, intent triage.Intent, lang Language) (string, error) {
	if s.llm == nil {
		return "", errors.New("no llm client configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	messages := make([]ChatMessage, 0, len(history)+1)
	for _, msg := range history {
		if msg.Role == ChatRoleSystem {
			continue
		}
		messages = append(messages, msg)
	}
	messages = append(messages, ChatMessage{Role: ChatRoleUser, Content: userMessage})

	start := time.Now()
	resp, err := s.llm.Complete(ctx, LLMRequest{
		Model:       s.model,
		System:      []string{BuildSystemPrompt(intent, lang)},
		Messages:    messages,
		MaxTokens:   s.maxTokens,
		Temperature: chatTemperature,
	})
	s.metrics.ObserveLLMLatency(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}
	if resp.Text == "" {
		return "", errors.New("llm returned empty completion")
	}
	return resp.Text, nil
}
