package risk

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Elon7069/asha-didi-backend/pkg/logging"
)

// Analyzing is the part of Assessor handlers depend on.
type Analyzing interface {
	Analyze(ctx context.Context, symptoms []string, isPregnant bool, pregnancyWeek int) Assessment
}

// Handler wires HTTP requests to the symptom risk assessor.
type Handler struct {
	assessor Analyzing
	logger   *logging.Logger
}

func NewHandler(assessor Analyzing, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		assessor: assessor,
		logger:   logger,
	}
}

// AssessRequest is the body of POST /risk/assess.
type AssessRequest struct {
	Symptoms      []string `json:"symptoms"`
	IsPregnant    bool     `json:"is_pregnant"`
	PregnancyWeek int      `json:"pregnancy_week"`
}

// Assess handles POST /risk/assess.
func (h *Handler) Assess(w http.ResponseWriter, r *http.Request) {
	var req AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode assess request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Symptoms) == 0 {
		http.Error(w, "symptoms are required", http.StatusBadRequest)
		return
	}

	assessment := h.assessor.Analyze(r.Context(), req.Symptoms, req.IsPregnant, req.PregnancyWeek)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(assessment); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
