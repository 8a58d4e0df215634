// Package risk turns a symptom list into a red-flag assessment for the
// ASHA worker's triage screen.
package risk

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Elon7069/asha-didi-backend/internal/conversation"
	"github.com/Elon7069/asha-didi-backend/internal/llmjson"
	"github.com/Elon7069/asha-didi-backend/internal/observability/metrics"
	"github.com/Elon7069/asha-didi-backend/pkg/logging"
)

var riskTracer = otel.Tracer("ashadidi.internal.risk")

const (
	assessmentTemperature = 0.2
	assessmentMaxTokens   = 512
)

// Assessment is the model's risk verdict for one symptom set.
type Assessment struct {
	IsRedFlag      bool     `json:"isRedFlag"`
	RiskScore      float64  `json:"riskScore"`
	Recommendation string   `json:"recommendation"`
	Reasons        []string `json:"reasons"`
}

// DefaultAssessment is the conservative fallback: no asserted risk score,
// but an explicit push toward a human instead of a silent all-clear.
func DefaultAssessment() Assessment {
	return Assessment{
		IsRedFlag:      false,
		RiskScore:      0,
		Recommendation: "We could not assess these symptoms right now. Please talk to your ASHA worker or visit the nearest health centre to be safe.",
		Reasons:        []string{},
	}
}

const assessmentSystemPrompt = `You are a maternal health triage assistant for rural India. Given a patient's symptoms, decide whether they match any of these red-flag danger signs:
- heavy vaginal bleeding
- severe abdominal pain
- high fever above 38 degrees Celsius
- severe headache with vision changes
- seizures or convulsions
- decreased or absent fetal movement after 20 weeks of pregnancy
- preterm rupture of membranes (water breaking early)
- signs of pre-eclampsia (swelling of face/hands, high blood pressure)

Reply with ONLY a JSON object, no prose:
{"isRedFlag": boolean, "riskScore": number from 0 to 100, "recommendation": string, "reasons": [string]}
The recommendation must be short, practical, and non-diagnostic. When in doubt, lean toward referring to a health worker.`

// Assessor performs single-shot stateless symptom assessments.
type Assessor struct {
	llm     conversation.LLMClient
	logger  *logging.Logger
	metrics *metrics.ChatMetrics
	model   string
}

func NewAssessor(llm conversation.LLMClient, logger *logging.Logger, m *metrics.ChatMetrics, model string) *Assessor {
	if logger == nil {
		logger = logging.Default()
	}
	return &Assessor{
		llm:     llm,
		logger:  logger,
		metrics: m,
		model:   model,
	}
}

// Analyze asks the model for a risk verdict. It never fails: any upstream
// or parse problem resolves to DefaultAssessment.
func (a *Assessor) Analyze(ctx context.Context, symptoms []string, isPregnant bool, pregnancyWeek int) Assessment {
	ctx, span := riskTracer.Start(ctx, "risk.analyze")
	defer span.End()
	span.SetAttributes(
		attribute.Int("ashadidi.symptom_count", len(symptoms)),
		attribute.Bool("ashadidi.pregnant", isPregnant),
	)

	if a.llm == nil {
		a.metrics.ObserveRiskAssessment("no_llm", false)
		return DefaultAssessment()
	}

	resp, err := a.llm.Complete(ctx, conversation.LLMRequest{
		Model:  a.model,
		System: []string{assessmentSystemPrompt},
		Messages: []conversation.ChatMessage{{
			Role:    conversation.ChatRoleUser,
			Content: buildAssessmentQuery(symptoms, isPregnant, pregnancyWeek),
		}},
		MaxTokens:   assessmentMaxTokens,
		Temperature: assessmentTemperature,
	})
	if err != nil {
		span.RecordError(err)
		a.metrics.ObserveRiskAssessment("llm_error", false)
		a.logger.Error("risk assessment llm call failed", "error", err.Error())
		return DefaultAssessment()
	}

	carved := llmjson.ExtractObject(resp.Text)
	if carved == "" {
		a.metrics.ObserveRiskAssessment("no_json", false)
		a.logger.Warn("risk assessment returned no JSON object")
		return DefaultAssessment()
	}

	var assessment Assessment
	if err := json.Unmarshal([]byte(carved), &assessment); err != nil {
		span.RecordError(err)
		a.metrics.ObserveRiskAssessment("parse_error", false)
		a.logger.Warn("risk assessment JSON did not parse", "error", err.Error())
		return DefaultAssessment()
	}

	if assessment.Reasons == nil {
		assessment.Reasons = []string{}
	}
	if strings.TrimSpace(assessment.Recommendation) == "" {
		assessment.Recommendation = DefaultAssessment().Recommendation
	}
	assessment.RiskScore = clampScore(assessment.RiskScore)

	a.metrics.ObserveRiskAssessment("ok", assessment.IsRedFlag)
	return assessment
}

func buildAssessmentQuery(symptoms []string, isPregnant bool, pregnancyWeek int) string {
	var b strings.Builder
	b.WriteString("Symptoms reported:\n")
	if len(symptoms) == 0 {
		b.WriteString("- none listed\n")
	}
	for _, s := range symptoms {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	if isPregnant {
		if pregnancyWeek > 0 {
			fmt.Fprintf(&b, "The patient is pregnant, week %d.\n", pregnancyWeek)
		} else {
			b.WriteString("The patient is pregnant, week unknown.\n")
		}
	} else {
		b.WriteString("The patient is not pregnant.\n")
	}
	return b.String()
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
