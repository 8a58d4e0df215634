package visits

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"

	"github.com/Elon7069/asha-didi-backend/internal/conversation"
	"github.com/Elon7069/asha-didi-backend/internal/llmjson"
	"github.com/Elon7069/asha-didi-backend/internal/observability/metrics"
	"github.com/Elon7069/asha-didi-backend/pkg/logging"
)

var visitTracer = otel.Tracer("ashadidi.internal.visits")

const (
	// Low temperature keeps extraction literal instead of creative.
	extractionTemperature = 0.1
	extractionMaxTokens   = 1024
)

const extractionSystemPrompt = `You convert an ASHA worker's spoken visit notes into structured data. Reply with ONLY a JSON object, no prose, no markdown, matching exactly this shape:
{
  "patient_name": string or null,
  "visit_type": "routine_checkup" | "emergency" | "follow_up" | null,
  "vitals": {
    "blood_pressure": {"systolic": number, "diastolic": number} or null,
    "weight_kg": number or null,
    "temperature_celsius": number or null
  },
  "symptoms": [string],
  "symptom_severity": "mild" | "moderate" | "severe" | null,
  "services_provided": [string],
  "medicines_distributed": [string],
  "counseling_topics": [string],
  "observations": string or null,
  "concerns_noted": string or null,
  "follow_up_required": boolean,
  "next_visit_date": string or null,
  "referral_needed": boolean,
  "referral_reason": string or null
}
Use null for anything the notes do not mention. Do not invent values. The notes may mix Hindi and English.`

// Extractor turns free-text visit transcriptions into Records.
type Extractor struct {
	llm     conversation.LLMClient
	logger  *logging.Logger
	metrics *metrics.ChatMetrics
	model   string
}

func NewExtractor(llm conversation.LLMClient, logger *logging.Logger, m *metrics.ChatMetrics, model string) *Extractor {
	if logger == nil {
		logger = logging.Default()
	}
	return &Extractor{
		llm:     llm,
		logger:  logger,
		metrics: m,
		model:   model,
	}
}

// Extract asks the model for a structured record and parses it
// defensively. It never fails: any upstream or parse problem yields
// EmptyRecord so a worker's logging flow keeps moving without the AI.
func (e *Extractor) Extract(ctx context.Context, transcription string) Record {
	ctx, span := visitTracer.Start(ctx, "visits.extract")
	defer span.End()

	if e.llm == nil {
		e.metrics.ObserveExtraction("no_llm")
		return EmptyRecord()
	}

	resp, err := e.llm.Complete(ctx, conversation.LLMRequest{
		Model:  e.model,
		System: []string{extractionSystemPrompt},
		Messages: []conversation.ChatMessage{{
			Role:    conversation.ChatRoleUser,
			Content: fmt.Sprintf("Visit notes:\n%s", transcription),
		}},
		MaxTokens:   extractionMaxTokens,
		Temperature: extractionTemperature,
	})
	if err != nil {
		span.RecordError(err)
		e.metrics.ObserveExtraction("llm_error")
		e.logger.Error("visit extraction llm call failed", "error", err.Error())
		return EmptyRecord()
	}

	carved := llmjson.ExtractObject(resp.Text)
	if carved == "" {
		e.metrics.ObserveExtraction("no_json")
		e.logger.Warn("visit extraction returned no JSON object")
		return EmptyRecord()
	}

	record := EmptyRecord()
	if err := json.Unmarshal([]byte(carved), &record); err != nil {
		span.RecordError(err)
		e.metrics.ObserveExtraction("parse_error")
		e.logger.Warn("visit extraction JSON did not parse", "error", err.Error())
		return EmptyRecord()
	}

	record.Normalize()
	e.metrics.ObserveExtraction("ok")
	return record
}
